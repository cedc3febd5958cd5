package mysql

import (
	"gorm.io/gorm"

	"ngo-finance-backend/internal/domain/budget"
	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/expense"
	"ngo-finance-backend/internal/domain/project"
	"ngo-finance-backend/internal/domain/purchaseorder"
	"ngo-finance-backend/internal/domain/sequence"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&project.Project{}, &project.Member{}, &project.Donor{}, &project.Funding{},
		&budget.Budget{}, &budget.Item{}, &budget.Reallocation{},
		&cashflow.BankAccount{}, &cashflow.CashFlow{},
		&purchaseorder.Vendor{}, &purchaseorder.PurchaseOrder{}, &purchaseorder.Item{},
		&expense.Expense{}, &expense.Approval{},
		&sequence.Counter{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
