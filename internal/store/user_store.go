package store

import (
	"context"

	"vendor-service/internal/model"

	"gorm.io/gorm"
)

// UserStore provides access to admin user accounts
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

// Create inserts a new user with an already-hashed password. A duplicate
// email yields ErrConflict via the unique index.
func (s *UserStore) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if err := validateName("email", email); err != nil {
		return nil, err
	}
	user := model.User{Email: email, Password: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate("create user", err)
	}
	return &user, nil
}
