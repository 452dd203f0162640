package assistant

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/domain/schedule"
	"github.com/salonat-app/salon-api/internal/models"
	"github.com/salonat-app/salon-api/internal/timezone"
)

// contextLimit caps how many salons are serialized into the prompt.
const contextLimit = 8

// ContextFetcher loads the salon data block that grounds the model's
// answer. The query shape depends on the classified aim: comparisons
// order by price, location questions stay inside the user's city.
type ContextFetcher struct {
	db *gorm.DB
}

func NewContextFetcher(db *gorm.DB) *ContextFetcher {
	return &ContextFetcher{db: db}
}

type salonRow struct {
	models.Salon
	AvgRating   float64
	ReviewCount int
	MinPrice    float64
}

func (f *ContextFetcher) Fetch(ctx context.Context, cls Classification, slots Slots) (string, error) {
	if cls.Aim == AimAppInfo || cls.Aim == AimFounders {
		// These aims are answered from the persona alone.
		return "", nil
	}

	q := f.db.WithContext(ctx).
		Model(&models.Salon{}).
		Select(`salons.*,
			COALESCE(AVG(reviews.rating), 0) AS avg_rating,
			COUNT(reviews.id) AS review_count,
			COALESCE(MIN(salon_services.price), 0) AS min_price`).
		Joins("LEFT JOIN reviews ON reviews.salon_id = salons.id").
		Joins("LEFT JOIN salon_services ON salon_services.salon_id = salons.id").
		Where("salons.active = ? AND salons.approved = ?", true, true).
		Where("salons.city = ?", slots.City).
		Where("salons.gender IN ?", []string{slots.Gender, "both"}).
		Group("salons.id")

	if slots.Service != "" {
		q = q.Where("salon_services.category = ?", slots.Service)
	}

	switch {
	case cls.Aim == AimCompare, slots.BudgetIntent == BudgetLow:
		q = q.Order("min_price ASC, avg_rating DESC")
	case slots.BudgetIntent == BudgetHigh:
		q = q.Order("avg_rating DESC, min_price DESC")
	default:
		q = q.Order("avg_rating DESC")
	}

	var rows []salonRow
	if err := q.Limit(contextLimit).Find(&rows).Error; err != nil {
		return "", fmt.Errorf("fetch salon context: %w", err)
	}

	if len(rows) == 0 {
		return "لا توجد صالونات مطابقة في البيانات الحالية.", nil
	}

	return f.render(ctx, rows), nil
}

func (f *ContextFetcher) render(ctx context.Context, rows []salonRow) string {
	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "- %s (%s، %s)", row.Name, row.City, audienceLabel(row.Gender))
		if row.ReviewCount > 0 {
			fmt.Fprintf(&sb, " | التقييم %.1f من %d مراجعة", row.AvgRating, row.ReviewCount)
		}
		if row.MinPrice > 0 {
			fmt.Fprintf(&sb, " | الأسعار من %.0f₪", row.MinPrice)
		}
		if state, ok := f.liveState(ctx, row.Salon); ok {
			fmt.Fprintf(&sb, " | الحالة: %s", stateLabel(state))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// liveState computes the salon's current availability. The boolean
// reports whether a schedule row exists; without one there is no state
// to render. Closed is a renderable state, not a missing one.
func (f *ContextFetcher) liveState(ctx context.Context, salon models.Salon) (schedule.State, bool) {
	var sched models.SalonSchedule
	err := f.db.WithContext(ctx).Where("salon_id = ?", salon.ID).First(&sched).Error
	if err != nil {
		return schedule.StateClosed, false
	}

	now := timezone.NowIn(salon.Timezone)

	var exceptions []models.ScheduleException
	f.db.WithContext(ctx).
		Where("salon_id = ? AND full_day = ? AND staff_id IS NULL", salon.ID, true).
		Find(&exceptions)

	closures := make([]schedule.Closure, 0, len(exceptions))
	for _, ex := range exceptions {
		closures = append(closures, schedule.ClosureFromException(ex))
	}

	state, _ := schedule.Status(schedule.FromModel(&sched), closures, now)
	return state, true
}

func audienceLabel(gender string) string {
	switch gender {
	case "male":
		return "رجالي"
	case "both":
		return "رجالي ونسائي"
	default:
		return "نسائي"
	}
}

func stateLabel(s schedule.State) string {
	switch s {
	case schedule.StateOpen:
		return "مفتوح الآن"
	case schedule.StateOpeningSoon:
		return "يفتح قريباً"
	case schedule.StateClosingSoon:
		return "يغلق قريباً"
	default:
		return "مغلق"
	}
}
