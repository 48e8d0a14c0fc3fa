package models

import (
	"time"
)

// WishlistItem links a user to a saved item. The composite unique index
// makes double-saving a constraint violation instead of a duplicate row.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_user_item" json:"user_id"`
	ItemID    uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_user_item" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Item Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
}
