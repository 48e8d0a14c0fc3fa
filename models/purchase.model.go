package models

import (
	"time"
)

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseCompleted PurchaseStatus = "COMPLETED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

// Purchase records buyer interest in an item. SellerID is denormalized
// from the item at creation time so the record survives item deletion
// edits and keeps working as an audit trail.
type Purchase struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	ItemID   uint           `gorm:"index;not null" json:"item_id"`
	BuyerID  uint           `gorm:"index;not null" json:"buyer_id"`
	SellerID uint           `gorm:"index;not null" json:"seller_id"`
	Status   PurchaseStatus `gorm:"size:20;default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Item   Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Seller User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}
