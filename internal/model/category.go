package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a named tag assignable to vendors (e.g. "Luxury Hotel")
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the ID so the schema doesn't depend on a database-side
// uuid extension being installed
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
