package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/domain/schedule"
	"github.com/salonat-app/salon-api/internal/models"
	"github.com/salonat-app/salon-api/internal/timezone"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.SalonSchedule{},
		&models.ScheduleException{},
		&models.SalonService{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedSalon(t *testing.T, db *gorm.DB, name string) *models.Salon {
	t.Helper()

	salon := models.Salon{
		Name:     name,
		Slug:     strings.ToLower(name),
		City:     "رام الله",
		Gender:   "female",
		Timezone: timezone.DefaultTimezone,
		Active:   true,
		Approved: true,
	}
	if err := db.Create(&salon).Error; err != nil {
		t.Fatalf("create salon: %v", err)
	}
	return &salon
}

func TestLiveStateClosedSalonStillReported(t *testing.T) {
	db := openTestDB(t)
	salon := seedSalon(t, db, "lilac")

	// Closed every weekday, so the state is closed no matter when the
	// test runs.
	db.Create(&models.SalonSchedule{
		SalonID:    salon.ID,
		Opening:    "09:00",
		Closing:    "18:00",
		ClosedDays: "0,1,2,3,4,5,6",
	})

	f := NewContextFetcher(db)
	state, found := f.liveState(context.Background(), *salon)
	if !found {
		t.Fatalf("expected found=true when a schedule row exists")
	}
	if state != schedule.StateClosed {
		t.Fatalf("state = %q, want %q", state, schedule.StateClosed)
	}
}

func TestLiveStateMissingSchedule(t *testing.T) {
	db := openTestDB(t)
	salon := seedSalon(t, db, "violet")

	f := NewContextFetcher(db)
	if _, found := f.liveState(context.Background(), *salon); found {
		t.Fatalf("expected found=false without a schedule row")
	}
}

func TestLiveStateFullDayClosureAtNonMidnightTimestamp(t *testing.T) {
	db := openTestDB(t)
	salon := seedSalon(t, db, "jasmine")

	db.Create(&models.SalonSchedule{
		SalonID: salon.ID,
		Opening: "00:00",
		Closing: "23:59",
	})

	// The closure date is stored mid-afternoon, not at midnight. It must
	// still match today.
	now := timezone.NowIn(salon.Timezone)
	closedAt := time.Date(now.Year(), now.Month(), now.Day(), 15, 30, 0, 0, now.Location())
	db.Create(&models.ScheduleException{
		SalonID: salon.ID,
		Date:    &closedAt,
		FullDay: true,
	})

	f := NewContextFetcher(db)
	state, found := f.liveState(context.Background(), *salon)
	if !found {
		t.Fatalf("expected found=true when a schedule row exists")
	}
	if state != schedule.StateClosed {
		t.Fatalf("state = %q, want %q", state, schedule.StateClosed)
	}
}

func TestFetchRendersClosedState(t *testing.T) {
	db := openTestDB(t)
	salon := seedSalon(t, db, "orchid")

	db.Create(&models.SalonSchedule{
		SalonID:    salon.ID,
		Opening:    "09:00",
		Closing:    "18:00",
		ClosedDays: "0,1,2,3,4,5,6",
	})

	f := NewContextFetcher(db)
	out, err := f.Fetch(
		context.Background(),
		Classification{Aim: AimGeneral, Confidence: 0.5},
		Slots{City: "رام الله", Gender: "female"},
	)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if !strings.Contains(out, salon.Name) {
		t.Fatalf("context lost the salon line: %q", out)
	}
	if !strings.Contains(out, "مغلق") {
		t.Fatalf("closed salon should carry its state label, got %q", out)
	}
}
