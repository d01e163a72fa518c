// Package store wraps all database access behind typed errors so handlers
// never inspect driver-specific error codes.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("record already exists")
)

// translate maps GORM's translated errors onto the store sentinels.
// Requires gorm.Config.TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific codes.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
