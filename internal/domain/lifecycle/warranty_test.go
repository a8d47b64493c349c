package lifecycle

import (
	"errors"
	"testing"
	"time"

	"repairshop/internal/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeEndDate(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		value int
		unit  entities.DurationUnit
		want  time.Time
	}{
		{"leap year month clamp", date(2024, 1, 31), 1, entities.DurationUnitMonths, date(2024, 2, 29)},
		{"common year month clamp", date(2023, 1, 31), 1, entities.DurationUnitMonths, date(2023, 2, 28)},
		{"ninety days", date(2024, 1, 1), 90, entities.DurationUnitDays, date(2024, 3, 31)},
		{"month across year", date(2024, 11, 30), 3, entities.DurationUnitMonths, date(2025, 2, 28)},
		{"day kept when it exists", date(2024, 1, 15), 1, entities.DurationUnitMonths, date(2024, 2, 15)},
		{"leap day plus one year", date(2024, 2, 29), 1, entities.DurationUnitYears, date(2025, 2, 28)},
		{"leap day plus four years", date(2024, 2, 29), 4, entities.DurationUnitYears, date(2028, 2, 29)},
		{"zero duration", date(2024, 5, 5), 0, entities.DurationUnitDays, date(2024, 5, 5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeEndDate(tc.start, tc.value, tc.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want.Format(time.DateOnly), got.Format(time.DateOnly))
			}
		})
	}

	t.Run("keeps time of day", func(t *testing.T) {
		start := time.Date(2024, 1, 31, 14, 5, 0, 0, time.UTC)
		got, _ := ComputeEndDate(start, 1, entities.DurationUnitMonths)
		if got.Hour() != 14 || got.Minute() != 5 || got.Day() != 29 {
			t.Fatalf("unexpected end %s", got)
		}
	})

	t.Run("invalid terms", func(t *testing.T) {
		if _, err := ComputeEndDate(date(2024, 1, 1), -1, entities.DurationUnitDays); !errors.Is(err, ErrInvalidWarranty) {
			t.Fatalf("expected ErrInvalidWarranty, got %v", err)
		}
		if _, err := ComputeEndDate(date(2024, 1, 1), 1, "weeks"); !errors.Is(err, ErrInvalidWarranty) {
			t.Fatalf("expected ErrInvalidWarranty, got %v", err)
		}
	})
}

func TestActivateWarranty(t *testing.T) {
	t.Run("nil warranty", func(t *testing.T) {
		changed, err := ActivateWarranty(nil, date(2024, 1, 1))
		if err != nil || changed {
			t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
		}
	})

	t.Run("sets window once", func(t *testing.T) {
		w := &entities.Warranty{Duration: 90, Unit: entities.DurationUnitDays}
		changed, err := ActivateWarranty(w, date(2024, 1, 1))
		if err != nil || !changed {
			t.Fatalf("expected activation, got changed=%v err=%v", changed, err)
		}
		if !w.StartDate.Equal(date(2024, 1, 1)) || !w.EndDate.Equal(date(2024, 3, 31)) {
			t.Fatalf("unexpected window %s..%s", w.StartDate, w.EndDate)
		}

		w.Duration = 12
		w.Unit = entities.DurationUnitMonths
		changed, err = ActivateWarranty(w, date(2024, 6, 1))
		if err != nil || changed {
			t.Fatalf("expected second activation to be a no-op, got changed=%v err=%v", changed, err)
		}
		if !w.StartDate.Equal(date(2024, 1, 1)) || !w.EndDate.Equal(date(2024, 3, 31)) {
			t.Fatalf("window must not be recomputed, got %s..%s", w.StartDate, w.EndDate)
		}
	})

	t.Run("invalid unit leaves warranty untouched", func(t *testing.T) {
		w := &entities.Warranty{Duration: 1, Unit: "fortnights"}
		if _, err := ActivateWarranty(w, date(2024, 1, 1)); !errors.Is(err, ErrInvalidWarranty) {
			t.Fatalf("expected ErrInvalidWarranty, got %v", err)
		}
		if w.Started() {
			t.Fatalf("warranty must stay unstarted")
		}
	})
}
