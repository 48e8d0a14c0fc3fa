// Package purchase owns the item/purchase status lifecycle:
// item AVAILABLE -> PENDING -> SOLD, purchase PENDING -> COMPLETED or
// CANCELLED. Every transition is a conditional update executed
// atomically by the Store, so two buyers racing on the same item cannot
// both succeed.
package purchase

import (
	"context"
	"errors"

	"github.com/nilesh-dagdi/CampusMart/models"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrItemUnavailable  = errors.New("item is no longer available")
	ErrSelfPurchase     = errors.New("cannot buy your own item")
	ErrNotBuyer         = errors.New("purchase belongs to another buyer")
	ErrNotPending       = errors.New("purchase already completed or cancelled")
)

// Store persists items and purchases. The three transition methods are
// atomic: the purchase-status flip and the item-status flip either both
// happen or neither does, and a compare-and-swap miss surfaces as
// ErrItemUnavailable / ErrNotPending instead of a silent overwrite.
type Store interface {
	Item(ctx context.Context, id uint) (models.Item, error)
	Purchase(ctx context.Context, id uint) (models.Purchase, error)
	PurchasesByBuyer(ctx context.Context, buyerID uint) ([]models.Purchase, error)

	// CreatePending inserts the purchase and moves its item from
	// AVAILABLE to PENDING in one transaction.
	CreatePending(ctx context.Context, p *models.Purchase) error
	// Complete moves the purchase from PENDING to COMPLETED and the item
	// to SOLD.
	Complete(ctx context.Context, purchaseID, itemID uint) error
	// Cancel moves the purchase from PENDING to CANCELLED and releases
	// the item back to AVAILABLE.
	Cancel(ctx context.Context, purchaseID, itemID uint) error
	// ResetPending is the maintenance escape hatch: every item back to
	// AVAILABLE, every PENDING purchase deleted.
	ResetPending(ctx context.Context) (itemsReset, purchasesDeleted int64, err error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Initiate records buyer interest in an available item and reserves it.
// The status precondition is checked twice: here for a friendly error,
// and again inside the store's conditional update for correctness under
// concurrent initiates.
func (s *Service) Initiate(ctx context.Context, itemID, buyerID uint) (models.Purchase, error) {
	item, err := s.store.Item(ctx, itemID)
	if err != nil {
		return models.Purchase{}, err
	}
	if item.Status != models.ItemAvailable {
		return models.Purchase{}, ErrItemUnavailable
	}
	if item.SellerID == buyerID {
		return models.Purchase{}, ErrSelfPurchase
	}

	p := models.Purchase{
		ItemID:   itemID,
		BuyerID:  buyerID,
		SellerID: item.SellerID, // denormalized so the record outlives the item
		Status:   models.PurchasePending,
	}
	if err := s.store.CreatePending(ctx, &p); err != nil {
		return models.Purchase{}, err
	}

	// Reload so the response carries the item and seller contact info.
	return s.store.Purchase(ctx, p.ID)
}

// Confirm completes a pending purchase on behalf of its buyer and marks
// the item sold. A purchase that is already COMPLETED or CANCELLED is
// rejected without touching the item again.
func (s *Service) Confirm(ctx context.Context, purchaseID, buyerID uint) (models.Purchase, error) {
	p, err := s.store.Purchase(ctx, purchaseID)
	if err != nil {
		return models.Purchase{}, err
	}
	if p.BuyerID != buyerID {
		return models.Purchase{}, ErrNotBuyer
	}
	if p.Status != models.PurchasePending {
		return models.Purchase{}, ErrNotPending
	}

	if err := s.store.Complete(ctx, p.ID, p.ItemID); err != nil {
		return models.Purchase{}, err
	}
	return s.store.Purchase(ctx, p.ID)
}

// Cancel releases a pending purchase, scoped to the single
// purchase/item pair instead of a global reset.
func (s *Service) Cancel(ctx context.Context, purchaseID, buyerID uint) (models.Purchase, error) {
	p, err := s.store.Purchase(ctx, purchaseID)
	if err != nil {
		return models.Purchase{}, err
	}
	if p.BuyerID != buyerID {
		return models.Purchase{}, ErrNotBuyer
	}
	if p.Status != models.PurchasePending {
		return models.Purchase{}, ErrNotPending
	}

	if err := s.store.Cancel(ctx, p.ID, p.ItemID); err != nil {
		return models.Purchase{}, err
	}
	return s.store.Purchase(ctx, p.ID)
}

func (s *Service) MyPurchases(ctx context.Context, buyerID uint) ([]models.Purchase, error) {
	return s.store.PurchasesByBuyer(ctx, buyerID)
}

// Reset runs the maintenance reset. Purchases that completed stay as
// the audit trail; only PENDING ones are purged.
func (s *Service) Reset(ctx context.Context) (itemsReset, purchasesDeleted int64, err error) {
	return s.store.ResetPending(ctx)
}
