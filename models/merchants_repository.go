package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MerchantsRepository struct {
	db *gorm.DB
}

func NewMerchantsRepository(db *gorm.DB) *MerchantsRepository {
	return &MerchantsRepository{
		db: db,
	}
}

func (r *MerchantsRepository) GetAllMerchants(ctx context.Context) ([]Merchant, error) {
	merchants := []Merchant{}
	if err := r.db.WithContext(ctx).Order("id").Find(&merchants).Error; err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	return merchants, nil
}

func (r *MerchantsRepository) GetMerchantByID(ctx context.Context, id uint) (*Merchant, error) {
	var merchant Merchant
	if err := r.db.WithContext(ctx).First(&merchant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// SearchMerchant returns the alphabetically first merchant whose name
// contains fragment, ignoring case. An empty fragment matches every merchant.
func (r *MerchantsRepository) SearchMerchant(ctx context.Context, fragment string) (*Merchant, error) {
	var merchant Merchant
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", likePattern(fragment)).
		Order("name").
		First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// GetItemMerchant returns the merchant owning the given item.
// A missing item yields ErrItemNotFound.
func (r *MerchantsRepository) GetItemMerchant(ctx context.Context, itemID uint) (*Merchant, error) {
	db := r.db.WithContext(ctx)

	var item Item
	if err := db.Select("id", "merchant_id").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var merchant Merchant
	if err := db.First(&merchant, item.MerchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

func (r *MerchantsRepository) CreateMerchant(ctx context.Context, name string) (*Merchant, error) {
	merchant := Merchant{Name: name}
	if err := merchant.Validate(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&merchant).Error; err != nil {
		return nil, fmt.Errorf("create merchant: %w", err)
	}
	return &merchant, nil
}

// DeleteMerchant removes a merchant and all of its items atomically.
func (r *MerchantsRepository) DeleteMerchant(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("merchant_id = ?", id).Delete(&Item{}).Error; err != nil {
			return fmt.Errorf("delete merchant items: %w", err)
		}

		result := tx.Delete(&Merchant{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete merchant: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrMerchantNotFound
		}
		return nil
	})
}
