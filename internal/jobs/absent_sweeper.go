package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/timezone"
)

// absentGraceMinutes is how long after the booked end time a scheduled
// appointment may stay untouched before the sweep marks it absent.
const absentGraceMinutes = 120

// AbsentSweeper periodically marks stale scheduled appointments as
// absent so day views and stats stop counting them as live bookings.
// Absent is terminal, same as cancelled.
type AbsentSweeper struct {
	db   *gorm.DB
	cron *cron.Cron
	log  *zap.Logger
}

func NewAbsentSweeper(db *gorm.DB, log *zap.Logger) *AbsentSweeper {
	return &AbsentSweeper{
		db:   db,
		cron: cron.New(cron.WithLocation(timezone.Location(timezone.DefaultTimezone))),
		log:  log,
	}
}

// Start registers the sweep to run every 30 minutes.
func (s *AbsentSweeper) Start() error {
	if _, err := s.cron.AddFunc("*/30 * * * *", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *AbsentSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *AbsentSweeper) Sweep() {
	cutoff := timezone.Now().Add(-absentGraceMinutes * time.Minute)

	res := s.db.Table("appointments").
		Where("status = ? AND end_time < ?", appointment.StatusScheduled, cutoff).
		Update("status", appointment.StatusAbsent)

	if res.Error != nil {
		s.log.Error("absent sweep failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		s.log.Info("absent sweep", zap.Int64("marked", res.RowsAffected))
	}
}
