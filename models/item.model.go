package models

import (
	"time"
)

// ItemStatus drives marketplace visibility: the public feed only shows
// AVAILABLE items, and the purchase flow owns every transition.
type ItemStatus string

const (
	ItemAvailable ItemStatus = "AVAILABLE"
	ItemPending   ItemStatus = "PENDING"
	ItemSold      ItemStatus = "SOLD"
)

type Item struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SellerID    uint       `gorm:"index;not null" json:"seller_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Category    string     `gorm:"size:50;index" json:"category"` // books, electronics, cycles, ...
	Condition   string     `gorm:"size:20" json:"condition"`      // new, like-new, used
	ImageURL    string     `json:"image_url"`
	Status      ItemStatus `gorm:"size:20;default:'AVAILABLE'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Seller User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}
