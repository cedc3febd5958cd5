package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ngo-finance-backend/internal/usecase/alert"
	budgetuc "ngo-finance-backend/internal/usecase/budget"
)

type BudgetHandler struct {
	uc     *budgetuc.Usecase
	alerts *alert.Engine
}

func NewBudgetHandler(uc *budgetuc.Usecase, alerts *alert.Engine) *BudgetHandler {
	return &BudgetHandler{uc: uc, alerts: alerts}
}

func (h *BudgetHandler) Create(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var in budgetuc.CreateBudgetInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	b, err := h.uc.CreateBudget(c.Request().Context(), in, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BudgetHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	b, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) Summary(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	s, err := h.uc.Summary(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *BudgetHandler) Approve(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		b, err := h.uc.ApproveBudget(c.Request().Context(), id, actor)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, b)
	})
}

func (h *BudgetHandler) Delete(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		if err := h.uc.DeleteBudget(c.Request().Context(), id, actor); err != nil {
			return respondErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}

// CheckThresholds runs the alert evaluation on demand.
func (h *BudgetHandler) CheckThresholds(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	fired, err := h.alerts.CheckBudgetThresholds(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if fired == nil {
		fired = []int64{}
	}
	return c.JSON(http.StatusOK, map[string]any{"budget_id": id, "alerts_sent": fired})
}

func (h *BudgetHandler) Spend(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in budgetuc.SpendInput
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		it, err := h.uc.RecordSpend(c.Request().Context(), id, in.Amount, actor)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, it)
	})
}

func (h *BudgetHandler) RequestReallocation(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var in budgetuc.ReallocationInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	re, err := h.uc.RequestReallocation(c.Request().Context(), in, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, re)
}

func (h *BudgetHandler) ApproveReallocation(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		re, err := h.uc.ApproveReallocation(c.Request().Context(), id, actor)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, re)
	})
}
