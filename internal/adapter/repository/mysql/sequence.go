package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ngo-finance-backend/internal/domain/sequence"
)

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

// Next upserts the (prefix, year) counter, incrementing it atomically, and
// reads it back on the same connection. Call it inside the tx that uses the
// number so a rollback also releases it.
func (r *SequenceRepository) Next(ctx context.Context, p sequence.Prefix, year int) (int, error) {
	db := r.db.WithContext(ctx)
	seed := sequence.Counter{Prefix: p, Year: year, LastValue: 1}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prefix"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]any{"last_value": gorm.Expr("last_value + 1")}),
	}).Create(&seed).Error
	if err != nil {
		return 0, err
	}

	var c sequence.Counter
	if err := db.Clauses(forUpdate).Where("prefix = ? AND year = ?", p, year).First(&c).Error; err != nil {
		return 0, err
	}
	return c.LastValue, nil
}
