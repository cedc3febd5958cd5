package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	pouc "ngo-finance-backend/internal/usecase/purchaseorder"
)

type PurchaseOrderHandler struct{ uc *pouc.Usecase }

func NewPurchaseOrderHandler(uc *pouc.Usecase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

type receiveReq struct {
	Items []pouc.ReceiptInput `json:"items" validate:"required,min=1,dive"`
}

func (h *PurchaseOrderHandler) CreateVendor(c echo.Context) error {
	var in pouc.VendorInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	v, err := h.uc.CreateVendor(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *PurchaseOrderHandler) Create(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var in pouc.CreateInput
	if ok, err := bindValid(c, &in); !ok {
		return err
	}
	po, err := h.uc.Create(c.Request().Context(), in, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, po)
}

func (h *PurchaseOrderHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}
	po, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandler) Submit(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		return h.reply(c)(h.uc.Submit(c.Request().Context(), id, actor))
	})
}

func (h *PurchaseOrderHandler) Approve(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		return h.reply(c)(h.uc.Approve(c.Request().Context(), id, actor))
	})
}

func (h *PurchaseOrderHandler) Complete(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		return h.reply(c)(h.uc.Complete(c.Request().Context(), id, actor))
	})
}

func (h *PurchaseOrderHandler) Reject(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in reasonReq
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		return h.reply(c)(h.uc.Reject(c.Request().Context(), id, actor, in.Reason))
	})
}

func (h *PurchaseOrderHandler) Cancel(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in reasonReq
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		return h.reply(c)(h.uc.Cancel(c.Request().Context(), id, actor, in.Reason))
	})
}

func (h *PurchaseOrderHandler) Receive(c echo.Context) error {
	return withActor(c, func(id, actor uint64) error {
		var in receiveReq
		if ok, err := bindValid(c, &in); !ok {
			return err
		}
		return h.reply(c)(h.uc.MarkItemsReceived(c.Request().Context(), id, actor, in.Items))
	})
}

func (h *PurchaseOrderHandler) reply(c echo.Context) func(any, error) error {
	return func(v any, err error) error {
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}
