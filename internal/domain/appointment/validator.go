package appointment

import (
	"time"

	"github.com/salonat-app/salon-api/internal/domain/schedule"
	"github.com/salonat-app/salon-api/internal/models"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps is the half-open test: newStart < existingEnd && newEnd > existingStart.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// StaffDay is everything known about one staff member on the requested day.
type StaffDay struct {
	StaffID  uint
	Booked   []Interval // scheduled appointments
	Breaks   []Interval
	Closures []Interval // exceptions applying to this member (or salon-wide)
}

type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	// Staff member the slot landed on. Set on success, echoes the
	// requested one or carries the auto-assigned pick.
	StaffID *uint `json:"staff_id,omitempty"`
}

func reject(msg string) ValidationResult {
	return ValidationResult{Valid: false, Message: msg}
}

// ValidateSlot decides whether req can be booked. With staffID set it
// checks that one member; with staffID nil it scans candidates in order
// and picks the first free one. Read-only: the transactional re-check
// happens in the repository at insert time.
func ValidateSlot(
	req Interval,
	weekly schedule.Weekly,
	staffID *uint,
	candidates []StaffDay,
) ValidationResult {

	if !req.Start.Before(req.End) {
		return reject("invalid time range")
	}

	if outsideOpeningHours(weekly, req) {
		return reject("the salon is closed at the requested time")
	}

	if staffID != nil {
		for _, day := range candidates {
			if day.StaffID == *staffID {
				if msg := staffConflict(req, day); msg != "" {
					return reject(msg)
				}
				id := *staffID
				return ValidationResult{Valid: true, StaffID: &id}
			}
		}
		return reject("staff member not found")
	}

	for _, day := range candidates {
		if staffConflict(req, day) == "" {
			id := day.StaffID
			return ValidationResult{Valid: true, StaffID: &id}
		}
	}
	return reject("no staff member is available at the requested time")
}

func staffConflict(req Interval, day StaffDay) string {
	for _, b := range day.Booked {
		if req.Overlaps(b) {
			return "the requested time conflicts with an existing appointment"
		}
	}
	for _, b := range day.Breaks {
		if req.Overlaps(b) {
			return "the requested time falls within a staff break"
		}
	}
	for _, c := range day.Closures {
		if req.Overlaps(c) {
			return "the salon is closed at the requested time"
		}
	}
	return ""
}

// outsideOpeningHours checks the requested interval against the weekly
// pattern, honoring overnight wraps. The interval is anchored to the day
// of its start instant.
func outsideOpeningHours(w schedule.Weekly, req Interval) bool {
	if w.OpeningMin == 0 && w.ClosingMin == 0 && len(w.ClosedDays) == 0 {
		// No schedule configured: let exception/break checks decide.
		return false
	}

	if w.ClosedDays[int(req.Start.Weekday())] {
		return true
	}

	startMin := req.Start.Hour()*60 + req.Start.Minute()
	dur := int(req.End.Sub(req.Start).Minutes())
	endMin := startMin + dur

	if w.OpeningMin < w.ClosingMin {
		return startMin < w.OpeningMin || endMin > w.ClosingMin
	}

	// Overnight: the interval must sit fully inside the evening span
	// [opening, midnight+closing) or the morning span [0, closing).
	if startMin >= w.OpeningMin {
		return endMin > w.ClosingMin+24*60
	}
	return endMin > w.ClosingMin
}

// ProjectBreak resolves a break into an interval on the given day, or
// reports that it does not apply.
func ProjectBreak(b models.StaffBreak, day time.Time) (Interval, bool) {
	if b.Date != nil {
		if !sameDate(*b.Date, day) {
			return Interval{}, false
		}
	} else if b.Weekday == nil || *b.Weekday != int(day.Weekday()) {
		return Interval{}, false
	}

	return clockInterval(day, b.StartTime, b.EndTime)
}

// ProjectException resolves a schedule exception into an interval on the
// given day for the given staff member. Salon-wide exceptions (nil staff)
// apply to everyone; full-day exceptions cover the whole day.
func ProjectException(e models.ScheduleException, day time.Time, staffID uint) (Interval, bool) {
	if e.StaffID != nil && *e.StaffID != staffID {
		return Interval{}, false
	}

	if e.Date != nil {
		if !sameDate(*e.Date, day) {
			return Interval{}, false
		}
	} else if e.Weekday == nil || *e.Weekday != int(day.Weekday()) {
		return Interval{}, false
	}

	if e.FullDay {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		return Interval{Start: start, End: start.Add(24 * time.Hour)}, true
	}

	return clockInterval(day, e.StartTime, e.EndTime)
}

func clockInterval(day time.Time, startHM, endHM string) (Interval, bool) {
	start, ok1 := schedule.ParseClock(startHM)
	end, ok2 := schedule.ParseClock(endHM)
	if !ok1 || !ok2 || end <= start {
		return Interval{}, false
	}

	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Interval{
		Start: base.Add(time.Duration(start) * time.Minute),
		End:   base.Add(time.Duration(end) * time.Minute),
	}, true
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
