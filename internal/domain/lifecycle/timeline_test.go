package lifecycle

import (
	"errors"
	"testing"
	"time"

	"repairshop/internal/domain/entities"
)

var t0 = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func startedOrder(t *testing.T) *entities.Document {
	t.Helper()
	doc := &entities.Document{Kind: entities.EntityKindOrder}
	if _, err := StartTimeline(OrderTransitions, doc, "created", "staff-1", t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	return doc
}

func TestStartTimeline(t *testing.T) {
	doc := startedOrder(t)
	if doc.Status != entities.OrderStatusPending {
		t.Fatalf("expected pending, got %s", doc.Status)
	}
	if len(doc.Timeline) != 1 || doc.Timeline[0].ActorID != "staff-1" || !doc.Timeline[0].Timestamp.Equal(t0) {
		t.Fatalf("unexpected timeline: %+v", doc.Timeline)
	}

	if _, err := StartTimeline(OrderTransitions, doc, "again", "", t0); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition on restart, got %v", err)
	}
	if len(doc.Timeline) != 1 {
		t.Fatalf("restart must not append")
	}
}

func TestRecordTransition_HappyPath(t *testing.T) {
	doc := startedOrder(t)
	path := []entities.Status{
		entities.OrderStatusConfirmed,
		entities.OrderStatusProcessing,
		entities.OrderStatusShipped,
		entities.OrderStatusDelivered,
	}
	for i, s := range path {
		entry, err := RecordTransition(OrderTransitions, doc, s, "step", "staff-2", t0.Add(time.Duration(i+1)*time.Hour))
		if err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
		if entry.Status != s || doc.Status != s {
			t.Fatalf("expected status %s, got entry=%s doc=%s", s, entry.Status, doc.Status)
		}
	}
	if len(doc.Timeline) != len(path)+1 {
		t.Fatalf("expected %d entries, got %d", len(path)+1, len(doc.Timeline))
	}
}

func TestRecordTransition_IllegalLeavesTimelineUnchanged(t *testing.T) {
	doc := startedOrder(t)
	before := append([]entities.TimelineEntry(nil), doc.Timeline...)

	_, err := RecordTransition(OrderTransitions, doc, entities.OrderStatusDelivered, "skip", "", t0.Add(time.Hour))
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if doc.Status != entities.OrderStatusPending {
		t.Fatalf("status must not change, got %s", doc.Status)
	}
	if len(doc.Timeline) != len(before) || doc.Timeline[0] != before[0] {
		t.Fatalf("timeline must not change: %+v", doc.Timeline)
	}
}

func TestRecordTransition_TimestampNeverGoesBack(t *testing.T) {
	doc := startedOrder(t)
	entry, err := RecordTransition(OrderTransitions, doc, entities.OrderStatusConfirmed, "clock skew", "", t0.Add(-time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !entry.Timestamp.Equal(t0) {
		t.Fatalf("expected timestamp clamped to %s, got %s", t0, entry.Timestamp)
	}
}

func TestRecordTransition_FinalStatus(t *testing.T) {
	doc := &entities.Document{Kind: entities.EntityKindRepairJob}
	if _, err := StartTimeline(RepairJobTransitions, doc, "created", "", t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := RecordTransition(RepairJobTransitions, doc, entities.RepairStatusCancelled, "customer gave up", "", t0); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	for _, s := range []entities.Status{entities.RepairStatusPending, entities.RepairStatusInProgress, entities.RepairStatusCompleted} {
		if _, err := RecordTransition(RepairJobTransitions, doc, s, "", "", t0); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected cancelled to be final, moving to %s gave %v", s, err)
		}
	}
}

func TestRepairJobTransitions(t *testing.T) {
	cases := []struct {
		from, to entities.Status
		allowed  bool
	}{
		{entities.RepairStatusPending, entities.RepairStatusReceived, true},
		{entities.RepairStatusPending, entities.RepairStatusDiagnosed, false},
		{entities.RepairStatusInProgress, entities.RepairStatusWaitingParts, true},
		{entities.RepairStatusWaitingParts, entities.RepairStatusInProgress, true},
		{entities.RepairStatusWaitingParts, entities.RepairStatusCompleted, false},
		{entities.RepairStatusCompleted, entities.RepairStatusReadyPickup, true},
		{entities.RepairStatusDelivered, entities.RepairStatusWarrantyClaim, true},
		{entities.RepairStatusWarrantyClaim, entities.RepairStatusInProgress, true},
		{entities.RepairStatusCompleted, entities.RepairStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := RepairJobTransitions.Allows(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestTransitionTable_Known(t *testing.T) {
	if !OrderTransitions.Known(entities.OrderStatusRefunded) {
		t.Fatalf("refunded is a final order status and must be known")
	}
	if OrderTransitions.Known(entities.RepairStatusWaitingParts) {
		t.Fatalf("waiting-parts is not an order status")
	}
	if _, err := TransitionsFor("invoice"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
