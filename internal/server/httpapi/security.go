package httpapi

import (
	"log/slog"
	"time"
)

// Reasons reported on authentication failures.
const (
	ReasonMissingToken = "MISSING_TOKEN"
	ReasonInvalidToken = "INVALID_TOKEN"
	ReasonTokenExpired = "TOKEN_EXPIRED"
	ReasonForbidden    = "FORBIDDEN"
)

// SecurityEvent is one authentication or authorization decision.
type SecurityEvent struct {
	Outcome       string // "success" or "failure"
	RequestID     string
	UserID        string
	Role          string
	FailureReason string
	Token         string
	Latency       time.Duration
}

// LogValue renders the event with the token redacted.
func (e SecurityEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("outcome", e.Outcome),
		slog.String("request_id", e.RequestID),
		slog.String("user_id", e.UserID),
		slog.String("role", e.Role),
		slog.String("failure_reason", e.FailureReason),
		slog.String("token", redactToken(e.Token)),
		slog.Duration("latency", e.Latency),
	)
}

func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}
