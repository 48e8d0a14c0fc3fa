package handlers

import (
	"strings"

	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MessageHandler struct {
	DB *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db}
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id"`
	ItemID     uint   `json:"item_id"`
	Content    string `json:"content"`
}

// SendMessage - POST /api/messages
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message content is required"})
	}
	if req.ReceiverID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot message yourself"})
	}

	var receiver models.User
	if err := h.DB.First(&receiver, req.ReceiverID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiver not found"})
	}
	var item models.Item
	if err := h.DB.First(&item, req.ItemID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	message := models.Message{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		ItemID:     req.ItemID,
		Content:    req.Content,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error sending message"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": message})
}

// GetMyMessages - GET /api/messages
// Flat inbox, newest first; the client groups by item/counterparty.
func (h *MessageHandler) GetMyMessages(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var messages []models.Message
	err := h.DB.
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Receiver", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Item", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, title")
		}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error retrieving messages"})
	}

	return c.JSON(fiber.Map{"data": messages})
}
