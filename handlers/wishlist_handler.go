package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{DB: db}
}

// sweepOrphanedWishlist drops the caller's wishlist rows whose item
// vanished before cascades were in place. Scoped to one user so the
// sweep stays cheap on the read path. Best effort: a failure is logged
// and the read continues.
func sweepOrphanedWishlist(db *gorm.DB, userID uint) {
	res := db.Where("user_id = ? AND item_id NOT IN (?)", userID, db.Model(&models.Item{}).Select("id")).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		log.Printf("Failed to sweep orphaned wishlist rows for user %d: %v", userID, res.Error)
	}
}

// GetWishlist - GET /api/wishlist
// Returns the saved items themselves, which is what the client renders.
func (h *WishlistHandler) GetWishlist(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	sweepOrphanedWishlist(h.DB, userID)

	var entries []models.WishlistItem
	if err := h.DB.Preload("Item").Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch wishlist"})
	}

	items := make([]models.Item, 0, len(entries))
	for _, e := range entries {
		if e.Item.ID != 0 {
			items = append(items, e.Item)
		}
	}

	return c.JSON(fiber.Map{"data": items})
}

// AddToWishlist - POST /api/wishlist/:itemId
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}
	itemID, _ := strconv.Atoi(c.Params("itemId"))

	var item models.Item
	if err := h.DB.First(&item, itemID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	entry := models.WishlistItem{UserID: userID, ItemID: item.ID}
	if err := h.DB.Create(&entry).Error; err != nil {
		// The composite unique index turns a double-save into an error.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Item already in wishlist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add to wishlist"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to wishlist"})
}

// RemoveFromWishlist - DELETE /api/wishlist/:itemId
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}
	itemID, _ := strconv.Atoi(c.Params("itemId"))

	res := h.DB.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove from wishlist"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not in wishlist"})
	}

	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
