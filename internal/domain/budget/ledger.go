package budget

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NewItem builds an unspent line with remaining == allocated.
func NewItem(category, description string, allocated decimal.Decimal) Item {
	it := Item{Category: category, Description: description, AllocatedAmount: allocated}
	it.recompute()
	return it
}

func (it *Item) recompute() {
	it.RemainingAmount = it.AllocatedAmount.Sub(it.SpentAmount)
}

// Spend records a committed spend against the line.
func (it *Item) Spend(amount decimal.Decimal) {
	it.SpentAmount = it.SpentAmount.Add(amount)
	it.recompute()
}

// Allocate moves the allocation by delta (negative to release funds).
func (it *Item) Allocate(delta decimal.Decimal) {
	it.AllocatedAmount = it.AllocatedAmount.Add(delta)
	it.recompute()
}

func (it *Item) UtilizationPercentage() decimal.Decimal {
	return Utilization(it.SpentAmount, it.AllocatedAmount)
}

func (it *Item) AlertLevel() AlertLevel {
	return LevelFor(it.UtilizationPercentage())
}

// SumAllocated totals the allocation of items.
func SumAllocated(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.AllocatedAmount)
	}
	return total
}

func SumSpent(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.SpentAmount)
	}
	return total
}

// Utilization is spent/allocated*100, and 0 when nothing is allocated. The
// result is unrounded; thresholds compare against it and callers round for
// display only.
func Utilization(spent, allocated decimal.Decimal) decimal.Decimal {
	if allocated.IsZero() {
		return decimal.Zero
	}
	return spent.Mul(hundred).Div(allocated)
}

type AlertLevel string

const (
	LevelNormal   AlertLevel = "normal"
	LevelCaution  AlertLevel = "caution"
	LevelWarning  AlertLevel = "warning"
	LevelCritical AlertLevel = "critical"
)

// Thresholds are the utilization percentages that raise alerts, ascending.
var Thresholds = []int64{50, 90, 100}

func LevelFor(pct decimal.Decimal) AlertLevel {
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return LevelCritical
	case pct.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return LevelWarning
	case pct.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return LevelCaution
	default:
		return LevelNormal
	}
}

// Summary is a read model over a budget and its lines.
type Summary struct {
	BudgetID       uint64          `json:"budget_id"`
	ProjectID      uint64          `json:"project_id"`
	FiscalYear     int             `json:"fiscal_year"`
	Status         Status          `json:"status"`
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	Utilization    decimal.Decimal `json:"utilization_percentage"`
	AlertLevel     AlertLevel      `json:"alert_level"`
	Items          []ItemSummary   `json:"items"`
}

type ItemSummary struct {
	ItemID      uint64          `json:"item_id"`
	Category    string          `json:"category"`
	Allocated   decimal.Decimal `json:"allocated_amount"`
	Spent       decimal.Decimal `json:"spent_amount"`
	Remaining   decimal.Decimal `json:"remaining_amount"`
	Utilization decimal.Decimal `json:"utilization_percentage"`
	AlertLevel  AlertLevel      `json:"alert_level"`
}

func Summarize(b *Budget) Summary {
	allocated := SumAllocated(b.Items)
	spent := SumSpent(b.Items)
	pct := Utilization(spent, allocated)
	s := Summary{
		BudgetID:       b.ID,
		ProjectID:      b.ProjectID,
		FiscalYear:     b.FiscalYear,
		Status:         b.Status,
		TotalAllocated: allocated,
		TotalSpent:     spent,
		TotalRemaining: allocated.Sub(spent),
		Utilization:    pct.Round(2),
		AlertLevel:     LevelFor(pct),
		Items:          make([]ItemSummary, 0, len(b.Items)),
	}
	for i := range b.Items {
		it := &b.Items[i]
		s.Items = append(s.Items, ItemSummary{
			ItemID:      it.ID,
			Category:    it.Category,
			Allocated:   it.AllocatedAmount,
			Spent:       it.SpentAmount,
			Remaining:   it.RemainingAmount,
			Utilization: it.UtilizationPercentage().Round(2),
			AlertLevel:  it.AlertLevel(),
		})
	}
	return s
}
