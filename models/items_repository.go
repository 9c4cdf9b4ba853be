package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemsRepository struct {
	db *gorm.DB
}

// ItemFilter narrows FindItem. Zero-valued fields are ignored.
type ItemFilter struct {
	Name     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// IsEmpty reports whether no filter was supplied.
func (f ItemFilter) IsEmpty() bool {
	return f.Name == "" && f.MinPrice == nil && f.MaxPrice == nil
}

func NewItemsRepository(db *gorm.DB) *ItemsRepository {
	return &ItemsRepository{
		db: db,
	}
}

func (r *ItemsRepository) GetAllItems(ctx context.Context) ([]Item, error) {
	items := []Item{}
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItemsByMerchant returns the items of an existing merchant.
func (r *ItemsRepository) GetItemsByMerchant(ctx context.Context, merchantID uint) ([]Item, error) {
	db := r.db.WithContext(ctx)
	if err := merchantExists(db, merchantID); err != nil {
		return nil, err
	}

	items := []Item{}
	if err := db.Where("merchant_id = ?", merchantID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list merchant items: %w", err)
	}
	return items, nil
}

func (r *ItemsRepository) GetMerchantItem(ctx context.Context, merchantID, itemID uint) (*Item, error) {
	db := r.db.WithContext(ctx)
	if err := merchantExists(db, merchantID); err != nil {
		return nil, err
	}

	var item Item
	if err := db.Where("merchant_id = ?", merchantID).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// SearchItems returns every item whose name contains fragment, ignoring case.
func (r *ItemsRepository) SearchItems(ctx context.Context, fragment string) ([]Item, error) {
	items := []Item{}
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", likePattern(fragment)).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// FindItem returns the first item, by id, matching every supplied filter.
func (r *ItemsRepository) FindItem(ctx context.Context, filter ItemFilter) (*Item, error) {
	query := r.db.WithContext(ctx).Model(&Item{})

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", likePattern(filter.Name))
	}
	if filter.MinPrice != nil {
		query = query.Where("unit_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("unit_price <= ?", *filter.MaxPrice)
	}

	var item Item
	if err := query.Order("id").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemsRepository) GetItemByID(ctx context.Context, id uint) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err // Other DB error
	}
	return &item, nil
}

// CreateItem persists a new item. Every allow-listed field is required and
// the merchant must exist.
func (r *ItemsRepository) CreateItem(ctx context.Context, fields ItemFields) (*Item, error) {
	item, err := fields.Build()
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := merchantExists(tx, item.MerchantID); err != nil {
			return err
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem changes only the supplied fields of an existing item.
func (r *ItemsRepository) UpdateItem(ctx context.Context, id uint, fields ItemFields) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		previousMerchant := item.MerchantID
		if err := fields.Patch(&item); err != nil {
			return err
		}
		if item.MerchantID != previousMerchant {
			if err := merchantExists(tx, item.MerchantID); err != nil {
				return err
			}
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemsRepository) DeleteItem(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Item{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func merchantExists(db *gorm.DB, merchantID uint) error {
	var count int64
	if err := db.Model(&Merchant{}).Where("id = ?", merchantID).Count(&count).Error; err != nil {
		return fmt.Errorf("lookup merchant: %w", err)
	}
	if count == 0 {
		return ErrMerchantNotFound
	}
	return nil
}

// likeEscaper escapes the LIKE wildcards so a fragment matches literally.
// Postgres uses backslash as the default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}
