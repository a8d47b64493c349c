package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxAllocationAttempts caps how many identifiers a single creation may burn
// on duplicate-identifier conflicts before giving up.
const MaxAllocationAttempts = 5

const tracerName = "repairshop/internal/usecase"

// PaymentInput is a payment recorded by staff against an order or repair job.
type PaymentInput struct {
	Amount    decimal.Decimal
	Method    string
	Reference string
	ActorID   string
	// ExpectedRemaining, when set, is the remaining balance the payment was
	// based on. The payment is refused if the stored balance moved since.
	ExpectedRemaining *decimal.Decimal
}

// Option customizes the shared engine of a use case.
type Option func(*engine)

// WithClock replaces time.Now. Tests use it to pin creation months and
// timeline timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *engine) { e.now = now }
}

// WithLogger sets the logger used for operation start/success/failed lines.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *engine) { e.log = log }
}

// engine holds what both record kinds share: identifier issuance, the clock,
// logging and tracing.
type engine struct {
	kind      entities.EntityKind
	table     lifecycle.TransitionTable
	allocator interfaces.ISequenceAllocator
	log       logrus.FieldLogger
	tracer    trace.Tracer
	now       func() time.Time
}

func newEngine(kind entities.EntityKind, table lifecycle.TransitionTable, allocator interfaces.ISequenceAllocator, opts ...Option) engine {
	e := engine{
		kind:      kind,
		table:     table,
		allocator: allocator,
		log:       logrus.StandardLogger(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&e)
	}
	e.log = e.log.WithFields(logrus.Fields{"module": string(kind), "layer": "usecase"})
	return e
}

func (e *engine) clock() time.Time {
	return e.now().UTC()
}

func (e *engine) startSpan(ctx context.Context, op string, identifier string) (context.Context, trace.Span) {
	ctx, span := e.tracer.Start(ctx, fmt.Sprintf("lifecycle.%s.%s", e.kind, op))
	span.SetAttributes(attribute.String("lifecycle.kind", string(e.kind)))
	if identifier != "" {
		span.SetAttributes(identifierAttr(identifier))
	}
	return ctx, span
}

func identifierAttr(identifier string) attribute.KeyValue {
	return attribute.String("lifecycle.identifier", identifier)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// normalizeIdentifier trims and validates an identifier against the engine's
// kind before any store access.
func (e *engine) normalizeIdentifier(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if _, err := lifecycle.ParseIdentifierFor(e.kind, identifier); err != nil {
		return "", err
	}
	return identifier, nil
}

// issueIdentifier allocates and formats identifiers for a record created at
// createdAt and hands each one to persist until it is accepted.
//
// persist must return interfaces.ErrDuplicateIdentifier when the identifier is
// already stored; any other error ends the creation immediately.
func (e *engine) issueIdentifier(ctx context.Context, createdAt time.Time, persist func(ctx context.Context, identifier string) error) (string, error) {
	if e.allocator == nil {
		return "", errors.New("sequence allocator not configured")
	}
	prefix, err := lifecycle.PrefixFor(e.kind)
	if err != nil {
		return "", err
	}
	key := lifecycle.KeyFor(e.kind, createdAt)
	log := e.log.WithField("sequence_key", key.String())

	for attempt := 1; attempt <= MaxAllocationAttempts; attempt++ {
		seq, err := e.allocator.Next(ctx, key)
		if err != nil {
			log.WithError(err).Error("sequence allocation failed")
			return "", fmt.Errorf("allocate sequence %s: %w", key, err)
		}
		if seq > lifecycle.MaxSequence {
			log.WithField("sequence", seq).Error("sequence overflow; no identifier issued")
			return "", fmt.Errorf("%w: %s reached %d", lifecycle.ErrSequenceOverflow, key, seq)
		}
		identifier, err := lifecycle.FormatIdentifier(prefix, key.Year2, key.Month2, seq)
		if err != nil {
			return "", err
		}

		err = persist(ctx, identifier)
		if err == nil {
			return identifier, nil
		}
		if !errors.Is(err, interfaces.ErrDuplicateIdentifier) {
			return "", err
		}
		log.WithFields(logrus.Fields{"identifier": identifier, "attempt": attempt}).Warn("identifier already taken; allocating again")
	}

	log.WithField("attempts", MaxAllocationAttempts).Error("identifier allocation exhausted")
	return "", fmt.Errorf("%w: %s after %d attempts", lifecycle.ErrAllocationExhausted, key, MaxAllocationAttempts)
}

// transition validates the target status, records it and, on the kind's
// completed status, opens the warranty window the first time.
func (e *engine) transition(doc *entities.Document, to entities.Status, description, actorID string, now time.Time) error {
	if !e.table.Known(to) {
		return fmt.Errorf("%w: unknown %s status %q", lifecycle.ErrIllegalTransition, e.kind, to)
	}
	entry, err := lifecycle.RecordTransition(e.table, doc, to, description, actorID, now)
	if err != nil {
		return err
	}
	if to != e.table.Completed {
		return nil
	}
	activated, err := lifecycle.ActivateWarranty(doc.Warranty, entry.Timestamp)
	if err != nil {
		return err
	}
	if activated {
		e.log.WithFields(logrus.Fields{
			"identifier":   doc.Identifier,
			"warranty_end": doc.Warranty.EndDate.Format(time.DateOnly),
		}).Info("warranty window opened")
	}
	return nil
}

// newWarranty validates caller-supplied terms. Dates are never taken from the
// caller; they are set when the record completes.
func newWarranty(terms *entities.Warranty) (*entities.Warranty, error) {
	if terms == nil {
		return nil, nil
	}
	if err := lifecycle.ValidateWarrantyTerms(terms.Duration, terms.Unit); err != nil {
		return nil, err
	}
	return &entities.Warranty{Duration: terms.Duration, Unit: terms.Unit}, nil
}

// setWarrantyTerms changes duration and unit. An already opened window keeps
// its dates.
func setWarrantyTerms(doc *entities.Document, duration int, unit entities.DurationUnit) error {
	if err := lifecycle.ValidateWarrantyTerms(duration, unit); err != nil {
		return err
	}
	if doc.Warranty == nil {
		doc.Warranty = &entities.Warranty{}
	}
	doc.Warranty.Duration = duration
	doc.Warranty.Unit = unit
	return nil
}

func applyPayment(doc *entities.Document, in PaymentInput, txID string, total decimal.Decimal, now time.Time) error {
	if in.ExpectedRemaining != nil && !doc.Payment.RemainingBalance.Equal(*in.ExpectedRemaining) {
		return fmt.Errorf("%w: remaining balance of %s is %s, payment was based on %s", lifecycle.ErrConcurrentModification,
			doc.Identifier, doc.Payment.RemainingBalance.StringFixed(2), in.ExpectedRemaining.StringFixed(2))
	}
	tx := entities.PaymentTransaction{
		ID:         txID,
		Amount:     in.Amount,
		Method:     strings.TrimSpace(in.Method),
		Reference:  strings.TrimSpace(in.Reference),
		RecordedAt: now,
		RecordedBy: in.ActorID,
	}
	return lifecycle.ApplyPayment(&doc.Payment, tx, total)
}

// staleToConflict turns a store version mismatch into the caller-facing
// concurrency error.
func staleToConflict(err error, kind entities.EntityKind, identifier string) error {
	if errors.Is(err, interfaces.ErrStaleVersion) {
		return fmt.Errorf("%w: %s %s changed since it was read", lifecycle.ErrConcurrentModification, kind, identifier)
	}
	return err
}
