package sequence

import (
	"context"
	"fmt"
	"time"
)

// Prefix identifies a numbered document family.
type Prefix string

const (
	PrefixExpense       Prefix = "EXP"
	PrefixPurchaseOrder Prefix = "PO"
	PrefixTransaction   Prefix = "TXN"
	PrefixVendor        Prefix = "VEN"
)

// Counter stores the last issued value for a prefix within a calendar year.
type Counter struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Prefix    Prefix    `gorm:"column:prefix;size:8;not null;uniqueIndex:ux_sequence_counters_prefix_year"`
	Year      int       `gorm:"column:year;not null;uniqueIndex:ux_sequence_counters_prefix_year"`
	LastValue int       `gorm:"column:last_value;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Counter) TableName() string { return "sequence_counters" }

// Format renders a document number, e.g. EXP-2025-0001.
func Format(p Prefix, year, n int) string {
	return fmt.Sprintf("%s-%04d-%04d", p, year, n)
}

type Repository interface {
	// Next reserves and returns last+1 for (prefix, year). Must run inside a tx.
	Next(ctx context.Context, p Prefix, year int) (int, error)
}

// Number reserves the next value for p in the year of at and formats it.
func Number(ctx context.Context, r Repository, p Prefix, at time.Time) (string, error) {
	year := at.Year()
	n, err := r.Next(ctx, p, year)
	if err != nil {
		return "", fmt.Errorf("reserve %s number: %w", p, err)
	}
	return Format(p, year, n), nil
}
