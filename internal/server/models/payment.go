package models

import "time"

// PaymentStatus is the review state of a payment request.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentAccepted PaymentStatus = "accepted"
	PaymentRejected PaymentStatus = "rejected"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentAccepted || s == PaymentRejected
}

// Payment is a user-submitted proof of a manual bank transfer awaiting
// admin review. LoggedInEmail identifies the submitting account, which may
// differ from the contact Email typed into the form.
type Payment struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	UTR           string        `json:"utr"`
	Plan          Plan          `json:"plan"`
	Status        PaymentStatus `json:"status"`
	SubmittedAt   time.Time     `json:"submittedAt"`
	ScreenshotURL string        `json:"screenshotUrl"`
	LoggedInEmail string        `json:"loggedInEmail"`
	CreatedAt     time.Time     `json:"createdAt"`
}
