package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login info. Email is the identity; only campus addresses get this far.
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	Name   string `gorm:"size:100;not null" json:"name"`
	Year   string `gorm:"size:20" json:"year"`
	Mobile string `gorm:"size:15" json:"mobile"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
