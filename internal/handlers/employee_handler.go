package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
)

// EmployeeHandler serves a staff member's own day: their appointments
// and breaks, scoped to the logged-in user.
type EmployeeHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewEmployeeHandler(db *gorm.DB, repo domain.Repository) *EmployeeHandler {
	return &EmployeeHandler{db: db, repo: repo}
}

func (h *EmployeeHandler) MyDay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "تعذر تحميل الصالون.")
		return
	}

	dateStr := c.Query("date")
	var date time.Time
	var err error
	if dateStr == "" {
		date = nowInSalon(&salon)
	} else {
		date, err = parseDateInSalon(&salon, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "تاريخ غير صالح.")
			return
		}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, locationFromSalon(&salon))
	end := start.Add(24 * time.Hour)

	apps, err := h.repo.ListAppointmentsForStaffPeriod(c.Request.Context(), userID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "تعذر تحميل المواعيد.")
		return
	}

	weekday := int(start.Weekday())
	var breaks []models.StaffBreak
	h.db.Where("staff_id = ?", userID).
		Where("(weekday = ?) OR (date >= ? AND date < ?)", weekday, start, end).
		Find(&breaks)

	httpresp.OK(c, gin.H{
		"date":         start.Format("2006-01-02"),
		"appointments": apps,
		"breaks":       breaks,
	})
}
