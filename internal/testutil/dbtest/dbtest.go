// Package dbtest opens migrated in-memory databases and seeds the rows the
// ledger flows depend on.
package dbtest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ngo-finance-backend/internal/adapter/repository/mysql"
	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/project"
	"ngo-finance-backend/internal/domain/purchaseorder"
)

// Open returns a fresh schema. The pool is pinned to one connection so every
// query sees the same in-memory database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := mysql.AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Project creates a project owned by createdBy with the given members and
// one donor commitment per funding amount.
func Project(t *testing.T, db *gorm.DB, createdBy uint64, members []uint64, funding ...string) *project.Project {
	t.Helper()
	ctx := context.Background()
	repo := mysql.NewProjectRepository(db)

	p := &project.Project{Name: "Water for Schools", TotalBudget: decimal.Zero, CreatedBy: createdBy}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	for _, m := range members {
		if err := repo.AddMember(ctx, &project.Member{ProjectID: p.ID, UserID: m, Role: "officer"}); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}
	for _, f := range funding {
		d := &project.Donor{Name: "Donor " + f}
		if err := repo.CreateDonor(ctx, d); err != nil {
			t.Fatalf("create donor: %v", err)
		}
		if err := repo.AddFunding(ctx, &project.Funding{ProjectID: p.ID, DonorID: d.ID, CommittedAmount: Dec(f)}); err != nil {
			t.Fatalf("add funding: %v", err)
		}
	}
	return p
}

// Account inserts an active account holding balance without a ledger entry.
func Account(t *testing.T, db *gorm.DB, number, balance string) *cashflow.BankAccount {
	t.Helper()
	a := &cashflow.BankAccount{
		AccountName:    "Operations",
		AccountNumber:  number,
		BankName:       "Test Bank",
		Currency:       "USD",
		CurrentBalance: Dec(balance),
		IsActive:       true,
	}
	if err := mysql.NewCashFlowRepository(db).CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return a
}

func Vendor(t *testing.T, db *gorm.DB, number string) *purchaseorder.Vendor {
	t.Helper()
	v := &purchaseorder.Vendor{VendorNumber: number, Name: "Acme Supplies", IsActive: true}
	if err := mysql.NewPurchaseOrderRepository(db).CreateVendor(context.Background(), v); err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return v
}
