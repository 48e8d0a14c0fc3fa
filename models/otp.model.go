package models

import (
	"time"
)

// OTP is an ephemeral email verification code. A new request for the
// same email supersedes (deletes) any older rows, so at most one code
// is live per address.
type OTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;not null;size:100" json:"email"`
	Code      string    `gorm:"not null;size:6" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
