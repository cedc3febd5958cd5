package purchaseorder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/domain/notification"
	"ngo-finance-backend/internal/domain/purchaseorder"
	"ngo-finance-backend/internal/domain/sequence"
	"ngo-finance-backend/internal/domain/uow"
)

type Usecase struct {
	uow    uow.UnitOfWork
	repo   purchaseorder.Repository
	notify notification.Dispatcher
	now    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, r purchaseorder.Repository, d notification.Dispatcher) *Usecase {
	return &Usecase{uow: tx, repo: r, notify: d, now: func() time.Time { return time.Now().UTC() }}
}

// Create prices the lines, applies tax and stores the order with its items.
func (u *Usecase) Create(ctx context.Context, in CreateInput, actor uint64) (*purchaseorder.PurchaseOrder, error) {
	if in.ProjectID == 0 || in.VendorID == 0 {
		return nil, errs.Validation("project_id and vendor_id are required")
	}
	if len(in.Items) == 0 {
		return nil, errs.Validation("a purchase order needs at least one item")
	}
	items := make([]purchaseorder.Item, 0, len(in.Items))
	for _, li := range in.Items {
		it, err := purchaseorder.NewItem(purchaseorder.LineInput{Description: li.Description, Quantity: li.Quantity, UnitPrice: li.UnitPrice})
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	var out *purchaseorder.PurchaseOrder
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Projects.GetByID(ctx, in.ProjectID); err != nil {
			return err
		}
		v, err := r.PurchaseOrders.GetVendor(ctx, in.VendorID)
		if err != nil {
			return err
		}
		if !v.IsActive {
			return errs.Validation(fmt.Sprintf("vendor %s is inactive", v.VendorNumber))
		}
		if in.BudgetItemID != nil {
			it, err := r.Budgets.GetItem(ctx, *in.BudgetItemID)
			if err != nil {
				return err
			}
			b, err := r.Budgets.GetByID(ctx, it.BudgetID)
			if err != nil {
				return err
			}
			if b.ProjectID != in.ProjectID {
				return errs.Validation(fmt.Sprintf("budget item %d does not belong to project %d", it.ID, in.ProjectID))
			}
		}

		now := u.now()
		num, err := sequence.Number(ctx, r.Sequences, sequence.PrefixPurchaseOrder, now)
		if err != nil {
			return err
		}
		orderDate := in.OrderDate
		if orderDate.IsZero() {
			orderDate = now
		}
		po := &purchaseorder.PurchaseOrder{
			PONumber:             num,
			ProjectID:            in.ProjectID,
			VendorID:             in.VendorID,
			BudgetItemID:         in.BudgetItemID,
			OrderDate:            orderDate,
			ExpectedDeliveryDate: in.ExpectedDeliveryDate,
			Status:               purchaseorder.StatusDraft,
			Notes:                in.Notes,
			CreatedBy:            actor,
			Items:                items,
		}
		po.Totals()
		if in.Submit {
			if err := po.Submit(now); err != nil {
				return err
			}
		}
		if err := r.PurchaseOrders.Create(ctx, po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("po_number", out.PONumber).Str("total", out.TotalAmount.StringFixed(2)).
		Str("status", string(out.Status)).Msg("purchase order created")
	if out.Status == purchaseorder.StatusPending {
		u.send(ctx, notification.EventPurchaseOrderPending, notification.Recipients{Roles: []notification.Role{notification.RoleProgramsManager}}, out, actor)
	}
	return out, nil
}

func (u *Usecase) Submit(ctx context.Context, id, actor uint64) (*purchaseorder.PurchaseOrder, error) {
	out, err := u.transition(ctx, id, func(po *purchaseorder.PurchaseOrder, at time.Time) error {
		return po.Submit(at)
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventPurchaseOrderPending, notification.Recipients{Roles: []notification.Role{notification.RoleProgramsManager}}, out, actor)
	return out, nil
}

func (u *Usecase) Approve(ctx context.Context, id, actor uint64) (*purchaseorder.PurchaseOrder, error) {
	out, err := u.transition(ctx, id, func(po *purchaseorder.PurchaseOrder, at time.Time) error {
		return po.Approve(actor, at)
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventPurchaseOrderDecided, notification.Recipients{UserIDs: []uint64{out.CreatedBy}}, out, actor)
	return out, nil
}

func (u *Usecase) Reject(ctx context.Context, id, actor uint64, reason string) (*purchaseorder.PurchaseOrder, error) {
	out, err := u.transition(ctx, id, func(po *purchaseorder.PurchaseOrder, at time.Time) error {
		return po.Reject(actor, reason, at)
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventPurchaseOrderDecided, notification.Recipients{UserIDs: []uint64{out.CreatedBy}}, out, actor)
	return out, nil
}

func (u *Usecase) Cancel(ctx context.Context, id, actor uint64, reason string) (*purchaseorder.PurchaseOrder, error) {
	return u.transition(ctx, id, func(po *purchaseorder.PurchaseOrder, at time.Time) error {
		return po.Cancel(actor, reason, at)
	})
}

func (u *Usecase) Complete(ctx context.Context, id, actor uint64) (*purchaseorder.PurchaseOrder, error) {
	return u.transition(ctx, id, func(po *purchaseorder.PurchaseOrder, at time.Time) error {
		return po.Complete(at)
	})
}

// MarkItemsReceived applies all receipts or none.
func (u *Usecase) MarkItemsReceived(ctx context.Context, id, actor uint64, receipts []ReceiptInput) (*purchaseorder.PurchaseOrder, error) {
	rs := make([]purchaseorder.Receipt, 0, len(receipts))
	for _, r := range receipts {
		rs = append(rs, purchaseorder.Receipt{ItemID: r.ItemID, Quantity: r.Quantity})
	}

	var out *purchaseorder.PurchaseOrder
	err := u.uow.WithinPurchaseOrderTx(ctx, id, func(r uow.Repos, po *purchaseorder.PurchaseOrder) error {
		changed, err := po.Receive(rs, u.now())
		if err != nil {
			return err
		}
		for _, i := range changed {
			if err := r.PurchaseOrders.SaveItem(ctx, &po.Items[i]); err != nil {
				return err
			}
		}
		if err := r.PurchaseOrders.Save(ctx, po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("po_number", out.PONumber).Str("status", string(out.Status)).Uint64("actor", actor).Msg("purchase order items received")
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*purchaseorder.PurchaseOrder, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) CreateVendor(ctx context.Context, in VendorInput) (*purchaseorder.Vendor, error) {
	if in.Name == "" {
		return nil, errs.Validation("vendor name is required")
	}
	var out *purchaseorder.Vendor
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		num, err := sequence.Number(ctx, r.Sequences, sequence.PrefixVendor, u.now())
		if err != nil {
			return err
		}
		v := &purchaseorder.Vendor{VendorNumber: num, Name: in.Name, Email: in.Email, Phone: in.Phone, IsActive: true}
		if err := r.PurchaseOrders.CreateVendor(ctx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) transition(ctx context.Context, id uint64, apply func(po *purchaseorder.PurchaseOrder, at time.Time) error) (*purchaseorder.PurchaseOrder, error) {
	var out *purchaseorder.PurchaseOrder
	err := u.uow.WithinPurchaseOrderTx(ctx, id, func(r uow.Repos, po *purchaseorder.PurchaseOrder) error {
		from := po.Status
		if err := apply(po, u.now()); err != nil {
			return err
		}
		if err := r.PurchaseOrders.Save(ctx, po); err != nil {
			return err
		}
		log.Debug().Str("po_number", po.PONumber).Str("from", string(from)).Str("to", string(po.Status)).Msg("purchase order transition")
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) send(ctx context.Context, ev notification.Event, to notification.Recipients, po *purchaseorder.PurchaseOrder, actor uint64) {
	notification.Send(ctx, u.notify, notification.New(ev, to, map[string]any{
		"purchase_order_id": po.ID,
		"po_number":         po.PONumber,
		"project_id":        po.ProjectID,
		"total_amount":      po.TotalAmount.StringFixed(2),
		"status":            string(po.Status),
		"actor":             actor,
	}))
}
