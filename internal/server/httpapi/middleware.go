package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/logging"
	"github.com/wealthx/paydesk/internal/server/auth"
	"github.com/wealthx/paydesk/internal/server/models"
)

const (
	requestIDKey = "request_id"
	claimsKey    = "claims"
)

// TokenVerifier checks an access token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// AccessLog writes one line per request after it completes.
func AccessLog(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "http request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// bearerToken returns the word following the first space of the
// Authorization header. The scheme word itself is not checked and anything
// after the token is ignored.
func bearerToken(r *http.Request) string {
	_, rest, found := strings.Cut(r.Header.Get(common.AuthorizationHeaderName), " ")
	if !found {
		return ""
	}
	token, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
	return token
}

// Authenticate rejects requests without a valid access token with 401.
// On success the claims are attached to both the request context and the
// gin context.
func Authenticate(tokens TokenVerifier, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		event := SecurityEvent{RequestID: c.GetString(requestIDKey)}

		token := bearerToken(c.Request)
		event.Token = token
		if token == "" {
			rejectUnauthenticated(c, log, event, ReasonMissingToken, start)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			reason := ReasonInvalidToken
			if errors.Is(err, common.ErrTokenExpired) {
				reason = ReasonTokenExpired
			}
			rejectUnauthenticated(c, log, event, reason, start)
			return
		}

		event.Outcome = "success"
		event.UserID = claims.UserID()
		event.Role = string(claims.Role)
		event.Latency = time.Since(start)
		log.Debug(c.Request.Context(), "authentication succeeded", "auth_event", event)

		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context, log logging.Logger, event SecurityEvent, reason string, start time.Time) {
	event.Outcome = "failure"
	event.FailureReason = reason
	event.Latency = time.Since(start)
	log.Warn(c.Request.Context(), "authentication failed", "auth_event", event)

	msg := "token is invalid"
	switch reason {
	case ReasonMissingToken:
		msg = "a token is required for authentication"
	case ReasonTokenExpired:
		msg = "token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg, "reason": reason})
}

// RequireRole lets through only callers whose token carries role. It must
// run after Authenticate.
func RequireRole(role models.Role, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c.Request.Context())
		if err := auth.RequireRole(claims, role); err != nil {
			event := SecurityEvent{
				Outcome:       "failure",
				RequestID:     c.GetString(requestIDKey),
				FailureReason: ReasonForbidden,
			}
			if claims != nil {
				event.UserID = claims.UserID()
				event.Role = string(claims.Role)
			}
			log.Warn(c.Request.Context(), "authorization denied", "auth_event", event, "required_role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}
		c.Next()
	}
}

// limitBody caps the request body; multipart parsing fails beyond n bytes.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func claimsOf(c *gin.Context) *auth.Claims {
	claims, _ := auth.ClaimsFrom(c.Request.Context())
	return claims
}
