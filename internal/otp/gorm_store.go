package otp

import (
	"context"
	"errors"

	"github.com/nilesh-dagdi/CampusMart/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Latest(ctx context.Context, email string) (models.OTP, error) {
	var rec models.OTP
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OTP{}, ErrNotFound
	}
	return rec, err
}

func (s *GormStore) Replace(ctx context.Context, rec *models.OTP) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", rec.Email).Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
}

func (s *GormStore) Delete(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.OTP{}).Error
}
