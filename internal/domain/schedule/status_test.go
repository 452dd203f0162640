package schedule

import (
	"testing"
	"time"

	"github.com/salonat-app/salon-api/internal/models"
)

func at(hour, min int) time.Time {
	// 2026-03-04 is a Wednesday.
	return time.Date(2026, 3, 4, hour, min, 0, 0, time.UTC)
}

func weekly(opening, closing string, closedDays ...int) Weekly {
	w := Weekly{ClosedDays: map[int]bool{}}
	w.OpeningMin, _ = ParseClock(opening)
	w.ClosingMin, _ = ParseClock(closing)
	for _, d := range closedDays {
		w.ClosedDays[d] = true
	}
	return w
}

func TestStatus_DaySchedule(t *testing.T) {
	w := weekly("09:00", "18:00")

	cases := []struct {
		name string
		now  time.Time
		want State
		soon bool
	}{
		{"midday", at(12, 0), StateOpen, true},
		{"exactly at opening", at(9, 0), StateOpen, true},
		{"one minute before opening", at(8, 59), StateOpeningSoon, true},
		{"an hour before opening", at(8, 0), StateOpeningSoon, true},
		{"well before opening", at(7, 59), StateClosed, false},
		{"within an hour of closing", at(17, 30), StateClosingSoon, true},
		{"exactly at closing", at(18, 0), StateClosed, false},
		{"late evening", at(22, 0), StateClosed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, soon := Status(w, nil, tc.now)
			if state != tc.want {
				t.Fatalf("state = %s, want %s", state, tc.want)
			}
			if soon != tc.soon {
				t.Fatalf("availableSoon = %v, want %v", soon, tc.soon)
			}
		})
	}
}

func TestStatus_OvernightSchedule(t *testing.T) {
	w := weekly("22:00", "06:00")

	cases := []struct {
		name string
		now  time.Time
		want State
	}{
		{"before midnight", at(23, 30), StateOpen},
		{"after midnight", at(2, 0), StateOpen},
		{"closing soon before dawn", at(5, 30), StateClosingSoon},
		{"midday", at(12, 0), StateClosed},
		{"opening soon", at(21, 15), StateOpeningSoon},
		{"exactly at opening", at(22, 0), StateOpen},
		{"exactly at closing", at(6, 0), StateClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, _ := Status(w, nil, tc.now)
			if state != tc.want {
				t.Fatalf("state = %s, want %s", state, tc.want)
			}
		})
	}
}

func TestStatus_FullDayClosureForcesClosed(t *testing.T) {
	w := weekly("09:00", "18:00")
	noon := at(12, 0)

	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	byDate := []Closure{{Date: &date, FullDay: true}}
	if state, soon := Status(w, byDate, noon); state != StateClosed || soon {
		t.Fatalf("date closure: state = %s soon = %v, want closed/false", state, soon)
	}

	wednesday := 3
	byWeekday := []Closure{{Weekday: &wednesday, FullDay: true}}
	if state, _ := Status(w, byWeekday, noon); state != StateClosed {
		t.Fatalf("weekday closure: state = %s, want closed", state)
	}

	// A closure for another day must not interfere.
	otherDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	unrelated := []Closure{{Date: &otherDate, FullDay: true}}
	if state, _ := Status(w, unrelated, noon); state != StateOpen {
		t.Fatalf("unrelated closure: state = %s, want open", state)
	}

	// Partial closures do not change the headline status.
	partial := []Closure{{Date: &date, FullDay: false}}
	if state, _ := Status(w, partial, noon); state != StateOpen {
		t.Fatalf("partial closure: state = %s, want open", state)
	}
}

func TestStatus_ClosedWeekday(t *testing.T) {
	w := weekly("09:00", "18:00", 3) // Wednesday closed
	if state, soon := Status(w, nil, at(12, 0)); state != StateClosed || soon {
		t.Fatalf("state = %s soon = %v, want closed/false", state, soon)
	}
}

func TestFromModel(t *testing.T) {
	w := FromModel(&models.SalonSchedule{
		Opening:    "10:00",
		Closing:    "20:30",
		ClosedDays: "5, 6",
	})

	if w.OpeningMin != 600 || w.ClosingMin != 1230 {
		t.Fatalf("parsed %d/%d, want 600/1230", w.OpeningMin, w.ClosingMin)
	}
	if !w.ClosedDays[5] || !w.ClosedDays[6] || w.ClosedDays[0] {
		t.Fatalf("closed days parsed wrong: %v", w.ClosedDays)
	}
}

func TestParseClock(t *testing.T) {
	if m, ok := ParseClock("22:45"); !ok || m != 1365 {
		t.Fatalf("ParseClock(22:45) = %d/%v", m, ok)
	}
	if _, ok := ParseClock("nonsense"); ok {
		t.Fatal("expected parse failure")
	}
}
