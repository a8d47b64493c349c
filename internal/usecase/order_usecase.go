package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidCustomerID = errors.New("invalid customer_id")
)

// OrderDraft is what a caller supplies to open an order. Totals, identifier,
// status and timeline are always derived.
type OrderDraft struct {
	CustomerID      string
	Items           []entities.LineItem
	Adjustments     entities.OrderAdjustments
	ShippingAddress string
	PaymentMethod   string
	Notes           string
	Warranty        *entities.Warranty
	ActorID         string
}

// IOrderUseCase exposes the order lifecycle.
//
// Every mutation works on a copy of the stored order and persists once with a
// version guard, so a caller either sees all derived fields updated or none.

type IOrderUseCase interface {
	Create(ctx context.Context, draft OrderDraft) (entities.Order, error)
	GetByIdentifier(ctx context.Context, identifier string) (entities.Order, error)
	UpdateStatus(ctx context.Context, identifier string, status entities.Status, description, actorID string) (entities.Order, error)
	UpdateLineItems(ctx context.Context, identifier string, items []entities.LineItem, adj entities.OrderAdjustments) (entities.Order, error)
	RecordPayment(ctx context.Context, identifier string, in PaymentInput) (entities.Order, error)
	UpdateWarrantyTerms(ctx context.Context, identifier string, duration int, unit entities.DurationUnit) (entities.Order, error)
}

type OrderUseCase struct {
	repo interfaces.IOrderRepository
	engine
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, allocator interfaces.ISequenceAllocator, opts ...Option) *OrderUseCase {
	return &OrderUseCase{
		repo:   repo,
		engine: newEngine(entities.EntityKindOrder, lifecycle.OrderTransitions, allocator, opts...),
	}
}

func (u *OrderUseCase) Create(ctx context.Context, draft OrderDraft) (o entities.Order, err error) {
	ctx, span := u.startSpan(ctx, "create", "")
	defer func() { endSpan(span, err) }()

	log := u.log.WithField("op", "create")
	log.WithFields(logrus.Fields{"customer_id": draft.CustomerID, "items": len(draft.Items)}).Info("create start")

	customerID := strings.TrimSpace(draft.CustomerID)
	if customerID == "" {
		return entities.Order{}, ErrInvalidCustomerID
	}
	items, totals, err := lifecycle.ComputeOrderTotals(draft.Items, draft.Adjustments)
	if err != nil {
		log.WithError(err).Info("create rejected")
		return entities.Order{}, err
	}
	warranty, err := newWarranty(draft.Warranty)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.clock()
	o = entities.Order{
		Document: entities.Document{
			ID:        uuid.NewString(),
			Kind:      entities.EntityKindOrder,
			Warranty:  warranty,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:      customerID,
		Items:           items,
		Adjustments:     draft.Adjustments,
		Totals:          totals,
		ShippingAddress: strings.TrimSpace(draft.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(draft.PaymentMethod),
		Notes:           draft.Notes,
	}
	if _, err := lifecycle.StartTimeline(u.table, &o.Document, "Order created", draft.ActorID, now); err != nil {
		return entities.Order{}, err
	}
	lifecycle.RefreshPayment(&o.Payment, o.Totals.Total)

	var created entities.Order
	identifier, err := u.issueIdentifier(ctx, now, func(ctx context.Context, identifier string) error {
		candidate := o
		candidate.Identifier = identifier
		var cErr error
		created, cErr = u.repo.Create(ctx, candidate)
		return cErr
	})
	if err != nil {
		log.WithError(err).Error("create failed")
		return entities.Order{}, err
	}
	span.SetAttributes(identifierAttr(identifier))
	log.WithFields(logrus.Fields{"identifier": identifier, "total": created.Totals.Total.StringFixed(2)}).Info("create success")
	return created, nil
}

func (u *OrderUseCase) GetByIdentifier(ctx context.Context, identifier string) (entities.Order, error) {
	identifier, err := u.normalizeIdentifier(identifier)
	if err != nil {
		return entities.Order{}, err
	}
	o, err := u.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, identifier string, status entities.Status, description, actorID string) (entities.Order, error) {
	return u.update(ctx, "update_status", identifier, func(o *entities.Order, now time.Time) error {
		return u.transition(&o.Document, status, description, actorID, now)
	})
}

func (u *OrderUseCase) UpdateLineItems(ctx context.Context, identifier string, items []entities.LineItem, adj entities.OrderAdjustments) (entities.Order, error) {
	return u.update(ctx, "update_line_items", identifier, func(o *entities.Order, _ time.Time) error {
		recomputed, totals, err := lifecycle.ComputeOrderTotals(items, adj)
		if err != nil {
			return err
		}
		o.Items = recomputed
		o.Adjustments = adj
		o.Totals = totals
		lifecycle.RefreshPayment(&o.Payment, totals.Total)
		return nil
	})
}

func (u *OrderUseCase) RecordPayment(ctx context.Context, identifier string, in PaymentInput) (entities.Order, error) {
	return u.update(ctx, "record_payment", identifier, func(o *entities.Order, now time.Time) error {
		return applyPayment(&o.Document, in, uuid.NewString(), o.Totals.Total, now)
	})
}

func (u *OrderUseCase) UpdateWarrantyTerms(ctx context.Context, identifier string, duration int, unit entities.DurationUnit) (entities.Order, error) {
	return u.update(ctx, "update_warranty", identifier, func(o *entities.Order, _ time.Time) error {
		return setWarrantyTerms(&o.Document, duration, unit)
	})
}

// update loads the order, applies mutate to a copy and writes it back only if
// nobody else wrote in between.
func (u *OrderUseCase) update(ctx context.Context, op, identifier string, mutate func(o *entities.Order, now time.Time) error) (o entities.Order, err error) {
	ctx, span := u.startSpan(ctx, op, identifier)
	defer func() { endSpan(span, err) }()

	log := u.log.WithFields(logrus.Fields{"op": op, "identifier": identifier})
	log.Info(op + " start")

	current, err := u.GetByIdentifier(ctx, identifier)
	if err != nil {
		log.WithError(err).Info(op + " failed loading order")
		return entities.Order{}, err
	}

	now := u.clock()
	next := current.Clone()
	if err := mutate(&next, now); err != nil {
		log.WithError(err).Info(op + " rejected")
		return entities.Order{}, err
	}
	next.Version = current.Version + 1
	next.UpdatedAt = now

	saved, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		err = staleToConflict(err, u.kind, current.Identifier)
		log.WithError(err).Warn(op + " failed")
		return entities.Order{}, err
	}
	log.WithFields(logrus.Fields{"status": saved.Status, "version": saved.Version}).Info(op + " success")
	return saved, nil
}
