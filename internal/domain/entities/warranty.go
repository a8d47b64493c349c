package entities

import "time"

// DurationUnit is the calendar unit a warranty duration is expressed in.
type DurationUnit string

const (
	DurationUnitDays   DurationUnit = "days"
	DurationUnitMonths DurationUnit = "months"
	DurationUnitYears  DurationUnit = "years"
)

// Warranty holds the warranty terms and, once the record is completed, the
// coverage window. StartDate and EndDate are written exactly once.
type Warranty struct {
	Duration  int          `json:"duration"`
	Unit      DurationUnit `json:"unit"`
	StartDate *time.Time   `json:"start_date,omitempty"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
}

func (w Warranty) Clone() Warranty {
	out := w
	if w.StartDate != nil {
		s := *w.StartDate
		out.StartDate = &s
	}
	if w.EndDate != nil {
		e := *w.EndDate
		out.EndDate = &e
	}
	return out
}

// Started reports whether the coverage window has been fixed.
func (w Warranty) Started() bool {
	return w.StartDate != nil
}
