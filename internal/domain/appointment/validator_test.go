package appointment

import (
	"testing"
	"time"

	"github.com/salonat-app/salon-api/internal/domain/schedule"
	"github.com/salonat-app/salon-api/internal/models"
)

func day() time.Time {
	// 2026-03-04 is a Wednesday.
	return time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
}

func slot(h1, m1, h2, m2 int) Interval {
	d := day()
	return Interval{
		Start: d.Add(time.Duration(h1)*time.Hour + time.Duration(m1)*time.Minute),
		End:   d.Add(time.Duration(h2)*time.Hour + time.Duration(m2)*time.Minute),
	}
}

func openAllDay() schedule.Weekly {
	w := schedule.Weekly{ClosedDays: map[int]bool{}}
	w.OpeningMin, _ = schedule.ParseClock("08:00")
	w.ClosingMin, _ = schedule.ParseClock("22:00")
	return w
}

func uintp(v uint) *uint { return &v }

func TestValidateSlot_RejectsOverlapWithScheduledAppointment(t *testing.T) {
	// Staff 2 already has 10:15-10:45 booked; 10:00-10:30 must be refused.
	staff := []StaffDay{{
		StaffID: 2,
		Booked:  []Interval{slot(10, 15, 10, 45)},
	}}

	res := ValidateSlot(slot(10, 0, 10, 30), openAllDay(), uintp(2), staff)
	if res.Valid {
		t.Fatal("expected conflict rejection")
	}
	if res.Message == "" {
		t.Fatal("expected a conflict message")
	}
}

func TestValidateSlot_HalfOpenBoundariesTouchingIsFine(t *testing.T) {
	staff := []StaffDay{{
		StaffID: 2,
		Booked:  []Interval{slot(10, 0, 10, 30)},
	}}

	// Back to back with the existing booking on both sides.
	for _, req := range []Interval{slot(9, 30, 10, 0), slot(10, 30, 11, 0)} {
		res := ValidateSlot(req, openAllDay(), uintp(2), staff)
		if !res.Valid {
			t.Fatalf("adjacent slot %v rejected: %s", req, res.Message)
		}
	}
}

func TestValidateSlot_OverlapMatrix(t *testing.T) {
	existing := slot(10, 0, 11, 0)

	cases := []struct {
		name     string
		req      Interval
		overlaps bool
	}{
		{"identical", slot(10, 0, 11, 0), true},
		{"contained", slot(10, 15, 10, 45), true},
		{"containing", slot(9, 30, 11, 30), true},
		{"left overlap", slot(9, 30, 10, 30), true},
		{"right overlap", slot(10, 30, 11, 30), true},
		{"before", slot(9, 0, 9, 45), false},
		{"after", slot(11, 15, 12, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.Overlaps(existing); got != tc.overlaps {
				t.Fatalf("Overlaps = %v, want %v", got, tc.overlaps)
			}
		})
	}
}

func TestValidateSlot_RejectsBreak(t *testing.T) {
	staff := []StaffDay{{
		StaffID: 1,
		Breaks:  []Interval{slot(13, 0, 14, 0)},
	}}

	res := ValidateSlot(slot(13, 30, 14, 0), openAllDay(), uintp(1), staff)
	if res.Valid {
		t.Fatal("expected break rejection")
	}
}

func TestValidateSlot_RejectsClosure(t *testing.T) {
	staff := []StaffDay{{
		StaffID:  1,
		Closures: []Interval{slot(0, 0, 23, 59)},
	}}

	res := ValidateSlot(slot(10, 0, 10, 30), openAllDay(), uintp(1), staff)
	if res.Valid {
		t.Fatal("expected closure rejection")
	}
}

func TestValidateSlot_AutoAssignPicksFirstFreeStaff(t *testing.T) {
	staff := []StaffDay{
		{StaffID: 1, Booked: []Interval{slot(10, 0, 11, 0)}},
		{StaffID: 2, Breaks: []Interval{slot(10, 0, 12, 0)}},
		{StaffID: 3},
	}

	res := ValidateSlot(slot(10, 0, 10, 30), openAllDay(), nil, staff)
	if !res.Valid {
		t.Fatalf("expected auto-assign to succeed: %s", res.Message)
	}
	if res.StaffID == nil || *res.StaffID != 3 {
		t.Fatalf("assigned staff = %v, want 3", res.StaffID)
	}
}

func TestValidateSlot_AutoAssignAllBusy(t *testing.T) {
	staff := []StaffDay{
		{StaffID: 1, Booked: []Interval{slot(10, 0, 11, 0)}},
		{StaffID: 2, Booked: []Interval{slot(9, 30, 10, 15)}},
	}

	res := ValidateSlot(slot(10, 0, 10, 30), openAllDay(), nil, staff)
	if res.Valid {
		t.Fatal("expected refusal when every staff member conflicts")
	}
}

func TestValidateSlot_OutsideOpeningHours(t *testing.T) {
	staff := []StaffDay{{StaffID: 1}}

	res := ValidateSlot(slot(22, 0, 23, 0), openAllDay(), uintp(1), staff)
	if res.Valid {
		t.Fatal("expected rejection outside opening hours")
	}

	res = ValidateSlot(slot(7, 0, 8, 0), openAllDay(), uintp(1), staff)
	if res.Valid {
		t.Fatal("expected rejection before opening")
	}
}

func TestValidateSlot_OvernightOpeningHours(t *testing.T) {
	w := schedule.Weekly{ClosedDays: map[int]bool{}}
	w.OpeningMin, _ = schedule.ParseClock("22:00")
	w.ClosingMin, _ = schedule.ParseClock("06:00")

	staff := []StaffDay{{StaffID: 1}}

	if res := ValidateSlot(slot(23, 0, 23, 45), w, uintp(1), staff); !res.Valid {
		t.Fatalf("late-evening slot rejected: %s", res.Message)
	}
	if res := ValidateSlot(slot(2, 0, 3, 0), w, uintp(1), staff); !res.Valid {
		t.Fatalf("after-midnight slot rejected: %s", res.Message)
	}
	if res := ValidateSlot(slot(12, 0, 13, 0), w, uintp(1), staff); res.Valid {
		t.Fatal("midday slot accepted on an overnight schedule")
	}
}

func TestValidateSlot_UnknownStaff(t *testing.T) {
	res := ValidateSlot(slot(10, 0, 10, 30), openAllDay(), uintp(9), []StaffDay{{StaffID: 1}})
	if res.Valid {
		t.Fatal("expected rejection for unknown staff id")
	}
}

func TestProjectBreak(t *testing.T) {
	wed := 3
	b := models.StaffBreak{Weekday: &wed, StartTime: "13:00", EndTime: "14:00"}

	iv, ok := ProjectBreak(b, day())
	if !ok {
		t.Fatal("recurring break should apply on its weekday")
	}
	if want := slot(13, 0, 14, 0); !iv.Start.Equal(want.Start) || !iv.End.Equal(want.End) {
		t.Fatalf("projected %v, want %v", iv, want)
	}

	thu := 4
	b.Weekday = &thu
	if _, ok := ProjectBreak(b, day()); ok {
		t.Fatal("break on another weekday should not apply")
	}

	d := day()
	oneOff := models.StaffBreak{Date: &d, StartTime: "09:00", EndTime: "09:30"}
	if _, ok := ProjectBreak(oneOff, day()); !ok {
		t.Fatal("one-off break on the same date should apply")
	}
}

func TestProjectException(t *testing.T) {
	d := day()

	fullDay := models.ScheduleException{Date: &d, FullDay: true}
	iv, ok := ProjectException(fullDay, day(), 1)
	if !ok {
		t.Fatal("full-day exception should apply")
	}
	if iv.End.Sub(iv.Start) != 24*time.Hour {
		t.Fatalf("full-day exception spans %v, want 24h", iv.End.Sub(iv.Start))
	}

	other := uint(2)
	scoped := models.ScheduleException{Date: &d, FullDay: true, StaffID: &other}
	if _, ok := ProjectException(scoped, day(), 1); ok {
		t.Fatal("exception scoped to staff 2 should not apply to staff 1")
	}
	if _, ok := ProjectException(scoped, day(), 2); !ok {
		t.Fatal("exception scoped to staff 2 should apply to staff 2")
	}

	partial := models.ScheduleException{Date: &d, StartTime: "15:00", EndTime: "17:00"}
	iv, ok = ProjectException(partial, day(), 1)
	if !ok || !iv.Start.Equal(day().Add(15*time.Hour)) {
		t.Fatalf("partial exception projected wrong: %v %v", iv, ok)
	}
}
