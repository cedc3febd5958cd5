package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	expenseuc "ngo-finance-backend/internal/usecase/expense"
)

type ExpenseHandler struct{ uc *expenseuc.Usecase }

func NewExpenseHandler(uc *expenseuc.Usecase) *ExpenseHandler { return &ExpenseHandler{uc: uc} }

type commentsReq struct {
	Comments string `json:"comments"`
}

type reasonReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *ExpenseHandler) Create(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var in expenseuc.CreateInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	e, err := h.uc.Create(c.Request().Context(), in, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *ExpenseHandler) Update(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in expenseuc.UpdateInput
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		e, err := h.uc.Update(c.Request().Context(), id, actor, in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, e)
	})
}

func (h *ExpenseHandler) Delete(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		if err := h.uc.Delete(c.Request().Context(), id, actor); err != nil {
			return respondErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	e, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *ExpenseHandler) Approvals(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	trail, err := h.uc.Approvals(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, trail)
}

func (h *ExpenseHandler) Submit(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		e, err := h.uc.Submit(c.Request().Context(), id, actor)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, e)
	})
}

func (h *ExpenseHandler) Review(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in expenseuc.ReviewInput
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		e, err := h.uc.Review(c.Request().Context(), id, actor, in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, e)
	})
}

func (h *ExpenseHandler) Approve(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in commentsReq
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		e, err := h.uc.Approve(c.Request().Context(), id, actor, in.Comments)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, e)
	})
}

func (h *ExpenseHandler) Reject(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in reasonReq
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		e, err := h.uc.Reject(c.Request().Context(), id, actor, in.Reason)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, e)
	})
}

func (h *ExpenseHandler) MarkPaid(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in expenseuc.PaymentInput
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		e, err := h.uc.MarkPaid(c.Request().Context(), id, actor, in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, e)
	})
}
