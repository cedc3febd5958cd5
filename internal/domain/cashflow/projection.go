package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrailingMonths is the history window the projection averages over.
const TrailingMonths = 6

type ProjectedMonth struct {
	Month            string          `json:"month"`
	ProjectedInflow  decimal.Decimal `json:"projected_inflow"`
	ProjectedOutflow decimal.Decimal `json:"projected_outflow"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
}

type Projection struct {
	BankAccountID  uint64           `json:"bank_account_id"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	AverageInflow  decimal.Decimal  `json:"average_monthly_inflow"`
	AverageOutflow decimal.Decimal  `json:"average_monthly_outflow"`
	Months         []ProjectedMonth `json:"months"`
}

// WindowStart is the first day of the trailing window ending before the
// month of now.
func WindowStart(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -TrailingMonths, 0)
}

// Project averages the flows of the trailing window and extends the
// current balance linearly for months ahead. flows outside
// [WindowStart(now), first of current month) are ignored.
func Project(acct *BankAccount, flows []CashFlow, now time.Time, months int) Projection {
	start := WindowStart(now)
	end := start.AddDate(0, TrailingMonths, 0)

	in, out := decimal.Zero, decimal.Zero
	for _, f := range flows {
		if f.TransactionDate.Before(start) || !f.TransactionDate.Before(end) {
			continue
		}
		if f.Type == TypeInflow {
			in = in.Add(f.Amount)
		} else {
			out = out.Add(f.Amount)
		}
	}
	window := decimal.NewFromInt(TrailingMonths)
	avgIn := in.Div(window).Round(2)
	avgOut := out.Div(window).Round(2)

	p := Projection{
		BankAccountID:  acct.ID,
		CurrentBalance: acct.CurrentBalance,
		AverageInflow:  avgIn,
		AverageOutflow: avgOut,
		Months:         make([]ProjectedMonth, 0, months),
	}
	balance := acct.CurrentBalance
	for i := 1; i <= months; i++ {
		balance = balance.Add(avgIn).Sub(avgOut)
		p.Months = append(p.Months, ProjectedMonth{
			Month:            end.AddDate(0, i-1, 0).Format("2006-01"),
			ProjectedInflow:  avgIn,
			ProjectedOutflow: avgOut,
			ProjectedBalance: balance,
		})
	}
	return p
}
