package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Error kinds surfaced by the store layer. Callers match them with errors.Is;
// raw database errors never cross this boundary, they are logged here instead.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("already exists")
	ErrStore        = errors.New("store failure")
)

// translate maps gorm errors onto the store error kinds. Anything that is not
// a recognized kind is logged with full detail and replaced by ErrStore so
// driver internals don't leak to clients.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		zap.L().Error("store operation failed",
			zap.String("operation", op),
			zap.Error(err))
		return fmt.Errorf("%s: %w", op, ErrStore)
	}
}
