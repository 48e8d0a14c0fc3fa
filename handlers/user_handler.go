package handlers

import (
	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Year   string `json:"year"`
	Mobile string `json:"mobile"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// GetProfile - GET /api/users/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"year":       user.Year,
		"mobile":     user.Mobile,
		"created_at": user.CreatedAt,
	}})
}

// UpdateProfile - PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := utils.ValidateName(req.Name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateMobile(req.Mobile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Name = req.Name
	user.Year = req.Year
	user.Mobile = req.Mobile

	if err := h.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error updating profile"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"year":   user.Year,
		"mobile": user.Mobile,
	}})
}

// ChangePassword - POST /api/users/change-password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Incorrect current password"})
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error changing password"})
	}

	if err := h.DB.Model(&user).Update("password", hashedPassword).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error changing password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// deleteUserCascade removes everything tied to the account in one
// transaction, the user row last: messages, wishlist rows, purchases,
// then each listed item with its own wishlist/message/purchase
// references.
func deleteUserCascade(db *gorm.DB, user *models.User) error {
	userID := user.ID
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("buyer_id = ? OR seller_id = ?", userID, userID).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}

		// The user's items drag their own references along.
		var itemIDs []uint
		if err := tx.Model(&models.Item{}).Where("seller_id = ?", userID).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.WishlistItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.Purchase{}).Error; err != nil {
				return err
			}
			if err := tx.Where("seller_id = ?", userID).Delete(&models.Item{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(user).Error
	})
}

// DeleteProfile - DELETE /api/users/profile
func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if err := deleteUserCascade(h.DB, &user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error deleting account"})
	}

	return c.JSON(fiber.Map{"message": "Account and all associated data deleted successfully"})
}
