// Package app assembles repositories, usecases and the HTTP surface.
package app

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpadp "ngo-finance-backend/internal/adapter/http"
	idemp "ngo-finance-backend/internal/adapter/middleware"
	"ngo-finance-backend/internal/adapter/notify"
	"ngo-finance-backend/internal/adapter/repository/mysql"
	"ngo-finance-backend/internal/domain/notification"
	"ngo-finance-backend/internal/infrastructure/cache"
	"ngo-finance-backend/internal/usecase/alert"
	budgetuc "ngo-finance-backend/internal/usecase/budget"
	cashuc "ngo-finance-backend/internal/usecase/cashflow"
	expenseuc "ngo-finance-backend/internal/usecase/expense"
	pouc "ngo-finance-backend/internal/usecase/purchaseorder"
)

type Options struct {
	IdempotencyTTL    time.Duration
	SummaryTTL        time.Duration
	RecheckOnApproval bool
	NotifyChannel     string
}

type App struct {
	Echo       *echo.Echo
	Dispatcher notification.Dispatcher

	Budgets        *budgetuc.Usecase
	Alerts         *alert.Engine
	Cash           *cashuc.Usecase
	Expenses       *expenseuc.Usecase
	PurchaseOrders *pouc.Usecase
}

func New(db *gorm.DB, rdb *redis.Client, opts Options) *App {
	store := cache.NewStore(rdb)
	dispatcher := notify.Fanout{
		notify.NewPublisher(rdb, opts.NotifyChannel),
		notify.NewLogger(nil),
	}
	tx := mysql.NewGormUoW(db)

	budgets := mysql.NewBudgetRepository(db)
	projects := mysql.NewProjectRepository(db)

	alerts := alert.NewEngine(budgets, projects, store, dispatcher)
	budgetUC := budgetuc.NewUsecase(tx, budgets, projects, store, alerts, dispatcher, budgetuc.Options{
		RecheckOnApproval: opts.RecheckOnApproval,
		SummaryTTL:        opts.SummaryTTL,
	})
	cashUC := cashuc.NewUsecase(tx, mysql.NewCashFlowRepository(db))
	expenseUC := expenseuc.NewUsecase(tx, mysql.NewExpenseRepository(db), dispatcher, budgetUC)
	poUC := pouc.NewUsecase(tx, mysql.NewPurchaseOrderRepository(db), dispatcher)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(httpadp.RequestLogger(), middleware.Recover())

	httpadp.Register(e, httpadp.Handlers{
		Health:         httpadp.NewHandler(),
		Expenses:       httpadp.NewExpenseHandler(expenseUC),
		Budgets:        httpadp.NewBudgetHandler(budgetUC, alerts),
		Cash:           httpadp.NewCashHandler(cashUC),
		PurchaseOrders: httpadp.NewPurchaseOrderHandler(poUC),
	}, idemp.IdempotencyMiddleware(rdb, opts.IdempotencyTTL))

	return &App{
		Echo:           e,
		Dispatcher:     dispatcher,
		Budgets:        budgetUC,
		Alerts:         alerts,
		Cash:           cashUC,
		Expenses:       expenseUC,
		PurchaseOrders: poUC,
	}
}
