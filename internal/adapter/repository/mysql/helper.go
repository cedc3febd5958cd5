package mysql

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ngo-finance-backend/internal/domain/errs"
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

// notFound maps gorm.ErrRecordNotFound onto errs.ErrNotFound.
func notFound(err error, what string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, errs.ErrNotFound)
	}
	return err
}

// casResult turns a guarded UPDATE into errs.ErrConcurrentModification when
// no row matched the expected version.
func casResult(res *gorm.DB, what string, id uint64) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", what, id, errs.ErrConcurrentModification)
	}
	return nil
}
