package models

import "time"

// QRCodes is the singleton pair of payment QR images shown to users.
type QRCodes struct {
	QR1       string    `json:"qr1"`
	QR2       string    `json:"qr2"`
	UpdatedAt time.Time `json:"updatedAt"`
}
