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
	ErrRepairJobNotFound = errors.New("repair job not found")
	ErrInvalidDevice     = errors.New("invalid device")
)

// RepairJobDraft is what the front desk supplies when a device is checked in.
type RepairJobDraft struct {
	CustomerID   string
	Device       entities.Device
	TechnicianID string
	Costs        entities.CostComponents
	Notes        string
	Warranty     *entities.Warranty
	ActorID      string
}

// IRepairJobUseCase exposes the repair job lifecycle.
//
// Domain notes:
//   - completing a job opens its warranty window once; later completions keep it
//   - cost edits recompute totals and the payment status in the same write

type IRepairJobUseCase interface {
	Create(ctx context.Context, draft RepairJobDraft) (entities.RepairJob, error)
	GetByIdentifier(ctx context.Context, identifier string) (entities.RepairJob, error)
	UpdateStatus(ctx context.Context, identifier string, status entities.Status, description, actorID string) (entities.RepairJob, error)
	UpdateCostComponents(ctx context.Context, identifier string, costs entities.CostComponents) (entities.RepairJob, error)
	RecordPayment(ctx context.Context, identifier string, in PaymentInput) (entities.RepairJob, error)
	UpdateWarrantyTerms(ctx context.Context, identifier string, duration int, unit entities.DurationUnit) (entities.RepairJob, error)
}

type RepairJobUseCase struct {
	repo interfaces.IRepairJobRepository
	engine
}

var _ IRepairJobUseCase = (*RepairJobUseCase)(nil)

func NewRepairJobUseCase(repo interfaces.IRepairJobRepository, allocator interfaces.ISequenceAllocator, opts ...Option) *RepairJobUseCase {
	return &RepairJobUseCase{
		repo:   repo,
		engine: newEngine(entities.EntityKindRepairJob, lifecycle.RepairJobTransitions, allocator, opts...),
	}
}

func (u *RepairJobUseCase) Create(ctx context.Context, draft RepairJobDraft) (r entities.RepairJob, err error) {
	ctx, span := u.startSpan(ctx, "create", "")
	defer func() { endSpan(span, err) }()

	log := u.log.WithField("op", "create")
	log.WithFields(logrus.Fields{"customer_id": draft.CustomerID, "device": draft.Device.Type}).Info("create start")

	customerID := strings.TrimSpace(draft.CustomerID)
	if customerID == "" {
		return entities.RepairJob{}, ErrInvalidCustomerID
	}
	if strings.TrimSpace(draft.Device.Type) == "" || strings.TrimSpace(draft.Device.ReportedIssue) == "" {
		return entities.RepairJob{}, ErrInvalidDevice
	}
	totals, err := lifecycle.ComputeRepairTotals(draft.Costs)
	if err != nil {
		log.WithError(err).Info("create rejected")
		return entities.RepairJob{}, err
	}
	warranty, err := newWarranty(draft.Warranty)
	if err != nil {
		return entities.RepairJob{}, err
	}

	now := u.clock()
	r = entities.RepairJob{
		Document: entities.Document{
			ID:        uuid.NewString(),
			Kind:      entities.EntityKindRepairJob,
			Warranty:  warranty,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:   customerID,
		Device:       draft.Device,
		TechnicianID: strings.TrimSpace(draft.TechnicianID),
		Costs:        draft.Costs,
		Totals:       totals,
		Notes:        draft.Notes,
	}
	if _, err := lifecycle.StartTimeline(u.table, &r.Document, "Repair job created", draft.ActorID, now); err != nil {
		return entities.RepairJob{}, err
	}
	lifecycle.RefreshPayment(&r.Payment, r.Totals.Total)

	var created entities.RepairJob
	identifier, err := u.issueIdentifier(ctx, now, func(ctx context.Context, identifier string) error {
		candidate := r
		candidate.Identifier = identifier
		var cErr error
		created, cErr = u.repo.Create(ctx, candidate)
		return cErr
	})
	if err != nil {
		log.WithError(err).Error("create failed")
		return entities.RepairJob{}, err
	}
	span.SetAttributes(identifierAttr(identifier))
	log.WithFields(logrus.Fields{"identifier": identifier, "total": created.Totals.Total.StringFixed(2)}).Info("create success")
	return created, nil
}

func (u *RepairJobUseCase) GetByIdentifier(ctx context.Context, identifier string) (entities.RepairJob, error) {
	identifier, err := u.normalizeIdentifier(identifier)
	if err != nil {
		return entities.RepairJob{}, err
	}
	r, err := u.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return entities.RepairJob{}, err
	}
	if r.ID == "" {
		return entities.RepairJob{}, ErrRepairJobNotFound
	}
	return r, nil
}

func (u *RepairJobUseCase) UpdateStatus(ctx context.Context, identifier string, status entities.Status, description, actorID string) (entities.RepairJob, error) {
	return u.update(ctx, "update_status", identifier, func(r *entities.RepairJob, now time.Time) error {
		return u.transition(&r.Document, status, description, actorID, now)
	})
}

func (u *RepairJobUseCase) UpdateCostComponents(ctx context.Context, identifier string, costs entities.CostComponents) (entities.RepairJob, error) {
	return u.update(ctx, "update_costs", identifier, func(r *entities.RepairJob, _ time.Time) error {
		totals, err := lifecycle.ComputeRepairTotals(costs)
		if err != nil {
			return err
		}
		r.Costs = costs
		r.Totals = totals
		lifecycle.RefreshPayment(&r.Payment, totals.Total)
		return nil
	})
}

func (u *RepairJobUseCase) RecordPayment(ctx context.Context, identifier string, in PaymentInput) (entities.RepairJob, error) {
	return u.update(ctx, "record_payment", identifier, func(r *entities.RepairJob, now time.Time) error {
		return applyPayment(&r.Document, in, uuid.NewString(), r.Totals.Total, now)
	})
}

func (u *RepairJobUseCase) UpdateWarrantyTerms(ctx context.Context, identifier string, duration int, unit entities.DurationUnit) (entities.RepairJob, error) {
	return u.update(ctx, "update_warranty", identifier, func(r *entities.RepairJob, _ time.Time) error {
		return setWarrantyTerms(&r.Document, duration, unit)
	})
}

func (u *RepairJobUseCase) update(ctx context.Context, op, identifier string, mutate func(r *entities.RepairJob, now time.Time) error) (r entities.RepairJob, err error) {
	ctx, span := u.startSpan(ctx, op, identifier)
	defer func() { endSpan(span, err) }()

	log := u.log.WithFields(logrus.Fields{"op": op, "identifier": identifier})
	log.Info(op + " start")

	current, err := u.GetByIdentifier(ctx, identifier)
	if err != nil {
		log.WithError(err).Info(op + " failed loading repair job")
		return entities.RepairJob{}, err
	}

	now := u.clock()
	next := current.Clone()
	if err := mutate(&next, now); err != nil {
		log.WithError(err).Info(op + " rejected")
		return entities.RepairJob{}, err
	}
	next.Version = current.Version + 1
	next.UpdatedAt = now

	saved, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		err = staleToConflict(err, u.kind, current.Identifier)
		log.WithError(err).Warn(op + " failed")
		return entities.RepairJob{}, err
	}
	log.WithFields(logrus.Fields{"status": saved.Status, "version": saved.Version}).Info(op + " success")
	return saved, nil
}
