package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ngo-finance-backend/internal/domain/cashflow"
	cashuc "ngo-finance-backend/internal/usecase/cashflow"
)

type CashHandler struct{ uc *cashuc.Usecase }

func NewCashHandler(uc *cashuc.Usecase) *CashHandler { return &CashHandler{uc: uc} }

func (h *CashHandler) OpenAccount(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var in cashuc.OpenAccountInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	a, err := h.uc.OpenAccount(c.Request().Context(), in, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *CashHandler) GetAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	a, err := h.uc.GetAccount(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// Projection reads ?months=N, default 6.
func (h *CashHandler) Projection(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	months := 6
	if raw := c.QueryParam("months"); raw != "" {
		if months, err = strconv.Atoi(raw); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid months")
		}
	}
	p, err := h.uc.CalculateProjection(c.Request().Context(), id, months)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CashHandler) Inflow(c echo.Context) error  { return h.movement(c, h.uc.RecordInflow) }
func (h *CashHandler) Outflow(c echo.Context) error { return h.movement(c, h.uc.RecordOutflow) }

type recordFunc func(ctx context.Context, in cashuc.MovementInput, actor uint64) (*cashflow.CashFlow, error)

func (h *CashHandler) movement(c echo.Context, record recordFunc) error {
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var in cashuc.MovementInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	cf, err := record(c.Request().Context(), in, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, cf)
}

func (h *CashHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	cf, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, cf)
}

func (h *CashHandler) Reconcile(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		cf, err := h.uc.Reconcile(c.Request().Context(), id, actor)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, cf)
	})
}
