package handlers

import (
	"strconv"

	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ItemHandler struct {
	DB *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{DB: db}
}

// ItemRequest is the create/update payload. Status is deliberately
// absent: only the purchase flow moves it.
type ItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	ImageURL    string  `json:"image_url"`
}

func (r *ItemRequest) validate() error {
	if err := utils.ValidateItemTitle(r.Title); err != nil {
		return err
	}
	return utils.ValidatePrice(r.Price)
}

// itemFeedQuery builds the item feed filter. Only AVAILABLE items are
// visible unless the caller asks for a specific seller's listings, which
// include PENDING and SOLD ones.
func itemFeedQuery(db *gorm.DB, category, search, sellerID string) *gorm.DB {
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if search != "" {
		db = db.Where("title ILIKE ?", "%"+search+"%")
	}
	if sellerID != "" {
		db = db.Where("seller_id = ?", sellerID)
	} else {
		db = db.Where("status = ?", models.ItemAvailable)
	}
	return db.Order("created_at desc")
}

// GetItems - GET /api/items
func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	var items []models.Item
	query := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	})
	query = itemFeedQuery(query, c.Query("category"), c.Query("search"), c.Query("sellerId"))

	if err := query.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch items"})
	}

	return c.JSON(fiber.Map{"data": items})
}

// GetItem - GET /api/items/:id
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var item models.Item

	if err := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, mobile") // contact info for the detail page
	}).First(&item, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	return c.JSON(fiber.Map{"data": item})
}

// CreateItem - POST /api/items
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item := models.Item{
		SellerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURL:    req.ImageURL,
		Status:      models.ItemAvailable,
	}

	if err := h.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create item"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item created", "data": item})
}

// UpdateItem - PUT /api/items/:id
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var item models.Item
	if err := h.DB.First(&item, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	// Check ownership
	if item.SellerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item.Title = req.Title
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.Condition = req.Condition
	item.ImageURL = req.ImageURL

	if err := h.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update item"})
	}

	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// DeleteItem - DELETE /api/items/:id
// The item's wishlist rows, messages and purchase records go in the
// same transaction so no join row can survive its parent.
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var item models.Item
	if err := h.DB.First(&item, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	// Check ownership
	if item.SellerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete item"})
	}

	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}
