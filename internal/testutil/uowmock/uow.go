package uowmock

import (
	"context"
	"errors"

	"ngo-finance-backend/internal/domain/expense"
	"ngo-finance-backend/internal/domain/purchaseorder"
	"ngo-finance-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn              func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinExpenseTxFn       func(ctx context.Context, expenseID uint64, fn func(r uow.Repos, e *expense.Expense) error) error
	WithinPurchaseOrderTxFn func(ctx context.Context, poID uint64, fn func(r uow.Repos, po *purchaseorder.PurchaseOrder) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinExpenseTx(fn func(context.Context, uint64, func(uow.Repos, *expense.Expense) error) error) *UoW {
	m.WithinExpenseTxFn = fn
	return m
}
func (m *UoW) WithWithinPurchaseOrderTx(fn func(context.Context, uint64, func(uow.Repos, *purchaseorder.PurchaseOrder) error) error) *UoW {
	m.WithinPurchaseOrderTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinExpenseTx(ctx context.Context, expenseID uint64, fn func(r uow.Repos, e *expense.Expense) error) error {
	if m.WithinExpenseTxFn != nil {
		return m.WithinExpenseTxFn(ctx, expenseID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinPurchaseOrderTx(ctx context.Context, poID uint64, fn func(r uow.Repos, po *purchaseorder.PurchaseOrder) error) error {
	if m.WithinPurchaseOrderTxFn != nil {
		return m.WithinPurchaseOrderTxFn(ctx, poID, fn)
	}
	return errUnimplemented
}
