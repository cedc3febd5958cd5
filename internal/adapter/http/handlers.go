package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Handlers groups everything Register mounts.
type Handlers struct {
	Health         *Handler
	Expenses       *ExpenseHandler
	Budgets        *BudgetHandler
	Cash           *CashHandler
	PurchaseOrders *PurchaseOrderHandler
}

// Register mounts every route. mutating wraps the POST/PUT/DELETE routes.
func Register(e *echo.Echo, h Handlers, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	post := func(path string, fn echo.HandlerFunc) { e.POST(path, fn, mutating...) }

	post("/expenses", h.Expenses.Create)
	e.GET("/expenses/:id", h.Expenses.Get)
	e.GET("/expenses/:id/approvals", h.Expenses.Approvals)
	e.PUT("/expenses/:id", h.Expenses.Update, mutating...)
	e.DELETE("/expenses/:id", h.Expenses.Delete, mutating...)
	post("/expenses/:id/submit", h.Expenses.Submit)
	post("/expenses/:id/review", h.Expenses.Review)
	post("/expenses/:id/approve", h.Expenses.Approve)
	post("/expenses/:id/reject", h.Expenses.Reject)
	post("/expenses/:id/pay", h.Expenses.MarkPaid)

	post("/budgets", h.Budgets.Create)
	e.GET("/budgets/:id", h.Budgets.Get)
	e.GET("/budgets/:id/summary", h.Budgets.Summary)
	post("/budgets/:id/approve", h.Budgets.Approve)
	e.DELETE("/budgets/:id", h.Budgets.Delete, mutating...)
	post("/budgets/:id/alerts/check", h.Budgets.CheckThresholds)
	post("/budget-items/:id/spend", h.Budgets.Spend)
	post("/reallocations", h.Budgets.RequestReallocation)
	post("/reallocations/:id/approve", h.Budgets.ApproveReallocation)

	post("/bank-accounts", h.Cash.OpenAccount)
	e.GET("/bank-accounts/:id", h.Cash.GetAccount)
	e.GET("/bank-accounts/:id/projection", h.Cash.Projection)
	post("/cash-flows/inflows", h.Cash.Inflow)
	post("/cash-flows/outflows", h.Cash.Outflow)
	e.GET("/cash-flows/:id", h.Cash.Get)
	post("/cash-flows/:id/reconcile", h.Cash.Reconcile)

	post("/vendors", h.PurchaseOrders.CreateVendor)
	post("/purchase-orders", h.PurchaseOrders.Create)
	e.GET("/purchase-orders/:id", h.PurchaseOrders.Get)
	post("/purchase-orders/:id/submit", h.PurchaseOrders.Submit)
	post("/purchase-orders/:id/approve", h.PurchaseOrders.Approve)
	post("/purchase-orders/:id/reject", h.PurchaseOrders.Reject)
	post("/purchase-orders/:id/cancel", h.PurchaseOrders.Cancel)
	post("/purchase-orders/:id/complete", h.PurchaseOrders.Complete)
	post("/purchase-orders/:id/receive", h.PurchaseOrders.Receive)
}
