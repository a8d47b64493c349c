package lifecycle

import (
	"fmt"
	"time"

	"repairshop/internal/domain/entities"
)

// TransitionTable declares the state machine of one entity kind.
//
// Allowed maps a status to the statuses reachable from it in one step. A
// status with no entry is final. Completed is the status that opens the
// warranty window.
type TransitionTable struct {
	Kind      entities.EntityKind
	Initial   entities.Status
	Completed entities.Status
	Allowed   map[entities.Status][]entities.Status
}

// OrderTransitions is the declared state machine for orders.
var OrderTransitions = TransitionTable{
	Kind:      entities.EntityKindOrder,
	Initial:   entities.OrderStatusPending,
	Completed: entities.OrderStatusDelivered,
	Allowed: map[entities.Status][]entities.Status{
		entities.OrderStatusPending:    {entities.OrderStatusConfirmed, entities.OrderStatusCancelled},
		entities.OrderStatusConfirmed:  {entities.OrderStatusProcessing, entities.OrderStatusCancelled, entities.OrderStatusRefunded},
		entities.OrderStatusProcessing: {entities.OrderStatusShipped, entities.OrderStatusCancelled, entities.OrderStatusRefunded},
		entities.OrderStatusShipped:    {entities.OrderStatusDelivered, entities.OrderStatusReturned},
		entities.OrderStatusDelivered:  {entities.OrderStatusReturned, entities.OrderStatusRefunded},
		entities.OrderStatusReturned:   {entities.OrderStatusRefunded},
		entities.OrderStatusCancelled:  {entities.OrderStatusRefunded},
	},
}

// RepairJobTransitions is the declared state machine for repair jobs.
var RepairJobTransitions = TransitionTable{
	Kind:      entities.EntityKindRepairJob,
	Initial:   entities.RepairStatusPending,
	Completed: entities.RepairStatusCompleted,
	Allowed: map[entities.Status][]entities.Status{
		entities.RepairStatusPending:       {entities.RepairStatusReceived, entities.RepairStatusCancelled},
		entities.RepairStatusReceived:      {entities.RepairStatusDiagnosed, entities.RepairStatusCancelled},
		entities.RepairStatusDiagnosed:     {entities.RepairStatusApproved, entities.RepairStatusCancelled},
		entities.RepairStatusApproved:      {entities.RepairStatusInProgress, entities.RepairStatusCancelled},
		entities.RepairStatusInProgress:    {entities.RepairStatusWaitingParts, entities.RepairStatusCompleted, entities.RepairStatusCancelled},
		entities.RepairStatusWaitingParts:  {entities.RepairStatusInProgress, entities.RepairStatusCancelled},
		entities.RepairStatusCompleted:     {entities.RepairStatusReadyPickup, entities.RepairStatusWarrantyClaim},
		entities.RepairStatusReadyPickup:   {entities.RepairStatusDelivered, entities.RepairStatusWarrantyClaim},
		entities.RepairStatusDelivered:     {entities.RepairStatusWarrantyClaim},
		entities.RepairStatusWarrantyClaim: {entities.RepairStatusInProgress, entities.RepairStatusDelivered},
	},
}

// TransitionsFor returns the declared table of a kind.
func TransitionsFor(kind entities.EntityKind) (TransitionTable, error) {
	switch kind {
	case entities.EntityKindOrder:
		return OrderTransitions, nil
	case entities.EntityKindRepairJob:
		return RepairJobTransitions, nil
	}
	return TransitionTable{}, fmt.Errorf("unknown entity kind %q", kind)
}

// Allows reports whether to is reachable from from in one step.
func (t TransitionTable) Allows(from, to entities.Status) bool {
	for _, s := range t.Allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Known reports whether s is a status of this table.
func (t TransitionTable) Known(s entities.Status) bool {
	if s == t.Initial {
		return true
	}
	if _, ok := t.Allowed[s]; ok {
		return true
	}
	for _, next := range t.Allowed {
		for _, n := range next {
			if n == s {
				return true
			}
		}
	}
	return false
}

// StartTimeline puts a new document in the table's initial status and writes
// the first timeline entry. It refuses documents that already have history.
func StartTimeline(t TransitionTable, doc *entities.Document, description, actorID string, now time.Time) (entities.TimelineEntry, error) {
	if len(doc.Timeline) > 0 {
		return entities.TimelineEntry{}, fmt.Errorf("%w: timeline already started at %s", ErrIllegalTransition, doc.Status)
	}
	entry := entities.TimelineEntry{
		Status:      t.Initial,
		Description: description,
		Timestamp:   now.UTC(),
		ActorID:     actorID,
	}
	doc.Timeline = append(doc.Timeline, entry)
	doc.Status = t.Initial
	return entry, nil
}

// RecordTransition moves doc to status to and appends the matching entry.
//
// On rejection doc is left untouched. The entry timestamp never goes back in
// time relative to the previous entry, even if the caller's clock does.
func RecordTransition(t TransitionTable, doc *entities.Document, to entities.Status, description, actorID string, now time.Time) (entities.TimelineEntry, error) {
	if !t.Allows(doc.Status, to) {
		return entities.TimelineEntry{}, fmt.Errorf("%w: %s %s -> %s", ErrIllegalTransition, t.Kind, doc.Status, to)
	}

	ts := now.UTC()
	if last, ok := doc.LastEntry(); ok && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}
	entry := entities.TimelineEntry{
		Status:      to,
		Description: description,
		Timestamp:   ts,
		ActorID:     actorID,
	}
	doc.Timeline = append(doc.Timeline, entry)
	doc.Status = to
	return entry, nil
}
