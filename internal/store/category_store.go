package store

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vendor-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxNameLength = 100

// CategoryStore provides CRUD access to categories. It holds an explicit
// database handle so it can be constructed against any *gorm.DB, including a
// test database.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by name ascending. The dataset is
// assumed small and bounded, so there is no pagination.
func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, translate("list categories", err)
	}
	return categories, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate("get category", err)
	}
	return &category, nil
}

// Create inserts a new category. A name colliding with an existing category
// yields ErrConflict via the unique index on name.
func (s *CategoryStore) Create(ctx context.Context, name string) (*model.Category, error) {
	if err := validateName("name", name); err != nil {
		return nil, err
	}
	category := model.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, translate("create category", err)
	}
	return &category, nil
}

// Update renames an existing category.
func (s *CategoryStore) Update(ctx context.Context, id uuid.UUID, name string) (*model.Category, error) {
	if err := validateName("name", name); err != nil {
		return nil, err
	}
	var category model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}
		category.Name = name
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, translate("update category", err)
	}
	return &category, nil
}

// Delete removes a category and every junction row referencing it, so no
// vendor is left pointing at a deleted category. Deleting an id that does not
// exist is an error, not a no-op: zero affected rows yields ErrNotFound.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.VendorCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete category", err)
}

// validateName rejects empty or over-long names. The request layer validates
// too; the store re-checks so it stays safe when called directly.
func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, maxNameLength)
	}
	return nil
}
