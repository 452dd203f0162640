package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/salonat-app/salon-api/internal/models"
)

type State string

const (
	StateOpen        State = "open"
	StateOpeningSoon State = "opening_soon"
	StateClosingSoon State = "closing_soon"
	StateClosed      State = "closed"
)

// soonWindowMin is the window, in minutes, for the opening_soon /
// closing_soon states and for the "available soon" flag.
const soonWindowMin = 60

const minutesPerDay = 24 * 60

// Weekly is a salon's weekly opening pattern in minutes since midnight,
// local time. OpeningMin > ClosingMin means the schedule wraps past
// midnight (open 22:00, close 06:00).
type Weekly struct {
	OpeningMin int
	ClosingMin int
	ClosedDays map[int]bool
}

// Closure is an ad-hoc closure projected into schedule terms.
type Closure struct {
	Date    *time.Time
	Weekday *int
	FullDay bool
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func FromModel(m *models.SalonSchedule) Weekly {
	w := Weekly{ClosedDays: map[int]bool{}}
	if m == nil {
		return w
	}

	w.OpeningMin, _ = ParseClock(m.Opening)
	w.ClosingMin, _ = ParseClock(m.Closing)

	for _, part := range strings.Split(m.ClosedDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d, err := strconv.Atoi(part); err == nil && d >= 0 && d <= 6 {
			w.ClosedDays[d] = true
		}
	}

	return w
}

func ClosureFromException(e models.ScheduleException) Closure {
	return Closure{
		Date:    e.Date,
		Weekday: e.Weekday,
		FullDay: e.FullDay,
	}
}

// Status computes the live state of a salon at now, plus a flag telling
// whether the salon is (or becomes) available within the next hour.
//
// A full-day closure matching today's date or weekday forces closed no
// matter the time of day. Overnight schedules are treated as two spans
// joined across midnight.
func Status(w Weekly, closures []Closure, now time.Time) (State, bool) {
	weekday := int(now.Weekday())
	nowMin := now.Hour()*60 + now.Minute()

	for _, c := range closures {
		if c.FullDay && closureMatchesDay(c, now) {
			return StateClosed, false
		}
	}

	if w.ClosedDays[weekday] {
		return StateClosed, false
	}

	if w.OpeningMin == w.ClosingMin {
		return StateClosed, false
	}

	if withinHours(w, nowMin) {
		if untilClosing(w, nowMin) <= soonWindowMin {
			return StateClosingSoon, true
		}
		return StateOpen, true
	}

	until := untilOpening(w, nowMin)
	if until <= soonWindowMin {
		return StateOpeningSoon, true
	}
	return StateClosed, false
}

func closureMatchesDay(c Closure, now time.Time) bool {
	if c.Date != nil {
		y1, m1, d1 := c.Date.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if c.Weekday != nil {
		return *c.Weekday == int(now.Weekday())
	}
	return false
}

// withinHours tests [opening, closing) membership, ORing the pre- and
// post-midnight spans when the schedule wraps.
func withinHours(w Weekly, nowMin int) bool {
	if w.OpeningMin < w.ClosingMin {
		return nowMin >= w.OpeningMin && nowMin < w.ClosingMin
	}
	return nowMin >= w.OpeningMin || nowMin < w.ClosingMin
}

func untilClosing(w Weekly, nowMin int) int {
	return ((w.ClosingMin - nowMin) + minutesPerDay) % minutesPerDay
}

func untilOpening(w Weekly, nowMin int) int {
	return ((w.OpeningMin - nowMin) + minutesPerDay) % minutesPerDay
}
