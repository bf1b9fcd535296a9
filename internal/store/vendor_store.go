package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vendor-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorStore provides CRUD access to vendors plus derivation of each
// vendor's category set from the vendor_categories junction table.
type VendorStore struct {
	db *gorm.DB
}

func NewVendorStore(db *gorm.DB) *VendorStore {
	return &VendorStore{db: db}
}

// VendorFilter narrows List results. City matches as a case-insensitive
// substring; CategoryID restricts to vendors associated with that category.
// Both are optional and combine with AND.
type VendorFilter struct {
	City       string
	CategoryID *uuid.UUID
}

// CreateVendorInput carries the fields for a new vendor. At least one
// category id is required.
type CreateVendorInput struct {
	Name        string
	City        string
	CategoryIDs []uuid.UUID
}

// UpdateVendorInput carries a partial vendor update. Nil fields are left
// untouched. A nil CategoryIDs keeps the current associations; a non-nil
// pointer replaces them wholesale, so pointing at an empty slice clears
// every association.
type UpdateVendorInput struct {
	Name        *string
	City        *string
	CategoryIDs *[]uuid.UUID
}

// List returns vendors ordered by name ascending, each with its categories
// populated. When a category filter is present the junction table is
// consulted first; an empty id set short-circuits to an empty result without
// touching the vendors table.
func (s *VendorStore) List(ctx context.Context, filter VendorFilter) ([]model.Vendor, error) {
	db := s.db.WithContext(ctx)

	query := db.Model(&model.Vendor{})
	if filter.CategoryID != nil {
		var vendorIDs []uuid.UUID
		err := db.Model(&model.VendorCategory{}).
			Where("category_id = ?", *filter.CategoryID).
			Pluck("vendor_id", &vendorIDs).Error
		if err != nil {
			return nil, translate("list vendors", err)
		}
		if len(vendorIDs) == 0 {
			return []model.Vendor{}, nil
		}
		query = query.Where("id IN ?", vendorIDs)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filter.City)+"%")
	}

	var vendors []model.Vendor
	if err := query.Order("name asc").Find(&vendors).Error; err != nil {
		return nil, translate("list vendors", err)
	}
	if err := s.loadCategories(ctx, vendors); err != nil {
		return nil, translate("list vendors", err)
	}
	return vendors, nil
}

// GetByID returns a single vendor with its categories populated.
func (s *VendorStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := s.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, translate("get vendor", err)
	}
	vendors := []model.Vendor{vendor}
	if err := s.loadCategories(ctx, vendors); err != nil {
		return nil, translate("get vendor", err)
	}
	return &vendors[0], nil
}

// Create inserts the vendor row and its junction rows as one transaction and
// returns the freshly hydrated vendor.
func (s *VendorStore) Create(ctx context.Context, input CreateVendorInput) (*model.Vendor, error) {
	if err := validateName("name", input.Name); err != nil {
		return nil, err
	}
	if err := validateName("city", input.City); err != nil {
		return nil, err
	}
	if len(input.CategoryIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", ErrInvalidInput)
	}

	vendor := model.Vendor{Name: input.Name, City: input.City}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vendor).Error; err != nil {
			return err
		}
		rows := junctionRows(vendor.ID, input.CategoryIDs)
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, translate("create vendor", err)
	}
	return s.GetByID(ctx, vendor.ID)
}

// Update applies a partial update to the vendor row and, when CategoryIDs is
// supplied, replaces the association set: every existing junction row for the
// vendor is deleted before the new set is inserted.
func (s *VendorStore) Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*model.Vendor, error) {
	if input.Name != nil {
		if err := validateName("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.City != nil {
		if err := validateName("city", *input.City); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vendor model.Vendor
		if err := tx.First(&vendor, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.City != nil {
			updates["city"] = *input.City
		}
		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			if err := tx.Model(&vendor).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.CategoryIDs != nil {
			if err := tx.Where("vendor_id = ?", id).Delete(&model.VendorCategory{}).Error; err != nil {
				return err
			}
			if rows := junctionRows(id, *input.CategoryIDs); len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("update vendor", err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the vendor's junction rows and then the vendor row itself.
// Categories referenced by the vendor are never deleted. Like category
// deletes, deleting an unknown id yields ErrNotFound.
func (s *VendorStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", id).Delete(&model.VendorCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Vendor{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete vendor", err)
}

// Count returns the total number of vendors.
func (s *VendorStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Vendor{}).Count(&count).Error; err != nil {
		return 0, translate("count vendors", err)
	}
	return count, nil
}

// CategoryVendorCount reports how many vendors are associated with a category.
type CategoryVendorCount struct {
	CategoryID   uuid.UUID
	CategoryName string
	VendorCount  int64
}

// CountsByCategory returns the vendor count for every category, including
// categories with no vendors.
func (s *VendorStore) CountsByCategory(ctx context.Context) ([]CategoryVendorCount, error) {
	var counts []CategoryVendorCount
	err := s.db.WithContext(ctx).
		Table("categories").
		Select("categories.id AS category_id, categories.name AS category_name, COUNT(vendor_categories.vendor_id) AS vendor_count").
		Joins("LEFT JOIN vendor_categories ON vendor_categories.category_id = categories.id").
		Group("categories.id, categories.name").
		Scan(&counts).Error
	if err != nil {
		return nil, translate("count vendors by category", err)
	}
	return counts, nil
}

// loadCategories populates Categories for every vendor in the slice with a
// single junction+category join, grouped in memory by vendor id. Vendors
// without associations end up with an empty slice, never nil.
func (s *VendorStore) loadCategories(ctx context.Context, vendors []model.Vendor) error {
	for i := range vendors {
		vendors[i].Categories = []model.Category{}
	}
	if len(vendors) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(vendors))
	for i, v := range vendors {
		ids[i] = v.ID
	}

	var rows []struct {
		VendorID  uuid.UUID
		ID        uuid.UUID
		Name      string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	err := s.db.WithContext(ctx).
		Table("vendor_categories").
		Select("vendor_categories.vendor_id, categories.id, categories.name, categories.created_at, categories.updated_at").
		Joins("JOIN categories ON categories.id = vendor_categories.category_id").
		Where("vendor_categories.vendor_id IN ?", ids).
		Order("categories.name asc").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	grouped := make(map[uuid.UUID][]model.Category, len(vendors))
	for _, row := range rows {
		grouped[row.VendorID] = append(grouped[row.VendorID], model.Category{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	for i := range vendors {
		if categories, ok := grouped[vendors[i].ID]; ok {
			vendors[i].Categories = categories
		}
	}
	return nil
}

// junctionRows builds the junction rows for a vendor, deduplicating category
// ids so repeated input cannot violate the composite primary key.
func junctionRows(vendorID uuid.UUID, categoryIDs []uuid.UUID) []model.VendorCategory {
	seen := make(map[uuid.UUID]bool, len(categoryIDs))
	rows := make([]model.VendorCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		if seen[categoryID] {
			continue
		}
		seen[categoryID] = true
		rows = append(rows, model.VendorCategory{VendorID: vendorID, CategoryID: categoryID})
	}
	return rows
}
