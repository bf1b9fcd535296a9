package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor represents a business entity managed by the admin service
type Vendor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);index;not null"`
	City      string    `json:"city" gorm:"type:varchar(100);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Categories is derived from the vendor_categories junction table on every
	// read; it is never persisted through this field
	Categories []Category `json:"categories" gorm:"-"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VendorCategory is the many-to-many junction between vendors and categories.
// It has no identity beyond the pair it connects.
type VendorCategory struct {
	VendorID   uuid.UUID `json:"vendor_id" gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;primaryKey"`

	Vendor   Vendor   `json:"-" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (VendorCategory) TableName() string {
	return "vendor_categories"
}
