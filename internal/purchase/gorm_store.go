package purchase

import (
	"context"
	"errors"

	"github.com/nilesh-dagdi/CampusMart/models"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store. Transitions run inside a
// transaction and flip statuses with conditional updates, treating zero
// rows affected as a lost race.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Item(ctx context.Context, id uint) (models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Item{}, ErrItemNotFound
	}
	return item, err
}

func (s *GormStore) Purchase(ctx context.Context, id uint) (models.Purchase, error) {
	var p models.Purchase
	err := s.db.WithContext(ctx).
		Preload("Item").
		Preload("Seller", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, mobile")
		}).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Purchase{}, ErrPurchaseNotFound
	}
	return p, err
}

func (s *GormStore) PurchasesByBuyer(ctx context.Context, buyerID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.WithContext(ctx).
		Preload("Item").
		Preload("Seller", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, mobile")
		}).
		Where("buyer_id = ?", buyerID).
		Order("created_at desc").
		Find(&purchases).Error
	return purchases, err
}

func (s *GormStore) CreatePending(ctx context.Context, p *models.Purchase) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Item{}).
			Where("id = ? AND status = ?", p.ItemID, models.ItemAvailable).
			Update("status", models.ItemPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Someone else got there first, or the item vanished.
			return ErrItemUnavailable
		}

		p.Status = models.PurchasePending
		return tx.Create(p).Error
	})
}

func (s *GormStore) Complete(ctx context.Context, purchaseID, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchaseID, models.PurchasePending).
			Update("status", models.PurchaseCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		return tx.Model(&models.Item{}).
			Where("id = ?", itemID).
			Update("status", models.ItemSold).Error
	})
}

func (s *GormStore) Cancel(ctx context.Context, purchaseID, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchaseID, models.PurchasePending).
			Update("status", models.PurchaseCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		return tx.Model(&models.Item{}).
			Where("id = ?", itemID).
			Update("status", models.ItemAvailable).Error
	})
}

func (s *GormStore) ResetPending(ctx context.Context) (int64, int64, error) {
	var itemsReset, purchasesDeleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Item{}).
			Where("status <> ?", models.ItemAvailable).
			Update("status", models.ItemAvailable)
		if res.Error != nil {
			return res.Error
		}
		itemsReset = res.RowsAffected

		res = tx.Where("status = ?", models.PurchasePending).
			Delete(&models.Purchase{})
		if res.Error != nil {
			return res.Error
		}
		purchasesDeleted = res.RowsAffected
		return nil
	})
	return itemsReset, purchasesDeleted, err
}
