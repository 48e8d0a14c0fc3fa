package handlers

import (
	"errors"
	"log"

	"github.com/nilesh-dagdi/CampusMart/internal/metrics"
	"github.com/nilesh-dagdi/CampusMart/internal/purchase"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	Svc *purchase.Service
}

func NewPurchaseHandler(svc *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{Svc: svc}
}

type InitiatePurchaseRequest struct {
	ItemID uint `json:"item_id"`
}

type PurchaseIDRequest struct {
	PurchaseID uint `json:"purchase_id"`
}

// InitiatePurchase - POST /api/purchases/initiate
func (h *PurchaseHandler) InitiatePurchase(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req InitiatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	p, err := h.Svc.Initiate(c.Context(), req.ItemID, userID)
	switch {
	case errors.Is(err, purchase.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, purchase.ErrItemUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Item is no longer available"})
	case errors.Is(err, purchase.ErrSelfPurchase):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot buy your own item"})
	case err != nil:
		log.Printf("Initiate purchase error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error initiating purchase"})
	}

	metrics.PurchasesInitiated.Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": p})
}

// ConfirmPurchase - POST /api/purchases/confirm
func (h *PurchaseHandler) ConfirmPurchase(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req PurchaseIDRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	p, err := h.Svc.Confirm(c.Context(), req.PurchaseID, userID)
	switch {
	case errors.Is(err, purchase.ErrPurchaseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase not found"})
	case errors.Is(err, purchase.ErrNotBuyer):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	case errors.Is(err, purchase.ErrNotPending):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Purchase already completed or cancelled"})
	case err != nil:
		log.Printf("Confirm purchase error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error confirming purchase"})
	}

	metrics.PurchasesCompleted.Inc()
	return c.JSON(fiber.Map{"data": p})
}

// CancelPurchase - POST /api/purchases/cancel
// Releases one pending purchase/item pair, instead of the old global
// reset being the only way out.
func (h *PurchaseHandler) CancelPurchase(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req PurchaseIDRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	p, err := h.Svc.Cancel(c.Context(), req.PurchaseID, userID)
	switch {
	case errors.Is(err, purchase.ErrPurchaseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase not found"})
	case errors.Is(err, purchase.ErrNotBuyer):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	case errors.Is(err, purchase.ErrNotPending):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Purchase already completed or cancelled"})
	case err != nil:
		log.Printf("Cancel purchase error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error cancelling purchase"})
	}

	metrics.PurchasesCancelled.Inc()
	return c.JSON(fiber.Map{"data": p})
}

// GetMyPurchases - GET /api/purchases/my-purchases
func (h *PurchaseHandler) GetMyPurchases(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	purchases, err := h.Svc.MyPurchases(c.Context(), userID)
	if err != nil {
		log.Printf("Get purchases error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error retrieving purchases"})
	}

	return c.JSON(fiber.Map{"data": purchases})
}
