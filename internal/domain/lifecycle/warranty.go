package lifecycle

import (
	"fmt"
	"time"

	"repairshop/internal/domain/entities"
)

// ComputeEndDate adds value units to start using calendar arithmetic.
//
// Months and years keep the day of month when it exists in the target month
// and clamp to its last day otherwise (Jan 31 + 1 month = Feb 28/29,
// Feb 29 + 1 year = Feb 28). Time of day and location are preserved.
func ComputeEndDate(start time.Time, value int, unit entities.DurationUnit) (time.Time, error) {
	if err := ValidateWarrantyTerms(value, unit); err != nil {
		return time.Time{}, err
	}
	switch unit {
	case entities.DurationUnitDays:
		return start.AddDate(0, 0, value), nil
	case entities.DurationUnitMonths:
		return addMonthsClamped(start, value), nil
	default:
		return addMonthsClamped(start, value*12), nil
	}
}

// ValidateWarrantyTerms checks a duration and unit pair.
func ValidateWarrantyTerms(value int, unit entities.DurationUnit) error {
	if value < 0 {
		return fmt.Errorf("%w: negative duration %d", ErrInvalidWarranty, value)
	}
	switch unit {
	case entities.DurationUnitDays, entities.DurationUnitMonths, entities.DurationUnitYears:
		return nil
	}
	return fmt.Errorf("%w: unknown unit %q", ErrInvalidWarranty, unit)
}

// ActivateWarranty fixes the coverage window starting at now. It does nothing
// and returns false when w is nil or the window was already fixed, so a
// record re-entering its completed status keeps its original dates.
func ActivateWarranty(w *entities.Warranty, now time.Time) (bool, error) {
	if w == nil || w.Started() {
		return false, nil
	}
	start := now.UTC()
	end, err := ComputeEndDate(start, w.Duration, w.Unit)
	if err != nil {
		return false, err
	}
	w.StartDate = &start
	w.EndDate = &end
	return true, nil
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	// Normalise on the first of the month so time.Date cannot roll over.
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
