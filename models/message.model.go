package models

import (
	"time"
)

// Message is free-form text between two users about one item.
type Message struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SenderID   uint `gorm:"index;not null" json:"sender_id"`
	ReceiverID uint `gorm:"index;not null" json:"receiver_id"`
	ItemID     uint `gorm:"index;not null" json:"item_id"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Item     Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
