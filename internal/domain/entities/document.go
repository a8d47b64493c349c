package entities

import "time"

// EntityKind identifies which record type a document belongs to.
// Identifiers, sequence counters and transition tables are all scoped by kind.
type EntityKind string

const (
	EntityKindOrder     EntityKind = "order"
	EntityKindRepairJob EntityKind = "repair_job"
)

// Status is the current lifecycle state of a document.
//
// The allowed values depend on the kind (see OrderStatus* and RepairStatus*);
// which moves between them are legal is declared in the lifecycle package.
type Status string

// TimelineEntry is one immutable status change in a document's audit trail.
type TimelineEntry struct {
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	ActorID     string    `json:"actor_id,omitempty"`
}

// Document is the lifecycle header shared by orders and repair jobs.
//
// Storage model (DynamoDB):
//   - PK: identifier (e.g. ORD24010001), which doubles as the uniqueness guard
//   - sequence_key + sequence: used to seed cold counters
//
// Version is bumped on every successful write and checked by the store, so two
// writers holding the same snapshot cannot both commit.
type Document struct {
	ID         string          `json:"id"`
	Identifier string          `json:"identifier"`
	Kind       EntityKind      `json:"kind"`
	Status     Status          `json:"status"`
	Timeline   []TimelineEntry `json:"timeline"`
	Warranty   *Warranty       `json:"warranty,omitempty"`
	Payment    Payment         `json:"payment"`
	Version    int64           `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate it without touching the
// original's slices or pointers.
func (d Document) Clone() Document {
	out := d
	if d.Timeline != nil {
		out.Timeline = append([]TimelineEntry(nil), d.Timeline...)
	}
	if d.Warranty != nil {
		w := d.Warranty.Clone()
		out.Warranty = &w
	}
	out.Payment = d.Payment.Clone()
	return out
}

// LastEntry returns the most recent timeline entry, if any.
func (d Document) LastEntry() (TimelineEntry, bool) {
	if len(d.Timeline) == 0 {
		return TimelineEntry{}, false
	}
	return d.Timeline[len(d.Timeline)-1], true
}
