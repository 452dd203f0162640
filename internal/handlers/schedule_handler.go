package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/audit"
	"github.com/salonat-app/salon-api/internal/domain/schedule"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, audit *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type PutScheduleRequest struct {
	Opening    string `json:"opening" binding:"required"`
	Closing    string `json:"closing" binding:"required"`
	ClosedDays string `json:"closed_days"`
}

type ExceptionRequest struct {
	Date      string `json:"date"`
	Weekday   *int   `json:"weekday"`
	FullDay   bool   `json:"full_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	StaffID   *uint  `json:"staff_id"`
	Reason    string `json:"reason"`
}

type BreakRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	Weekday   *int   `json:"weekday"`
	Date      string `json:"date"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Label     string `json:"label"`
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var sched models.SalonSchedule
	if err := h.db.Where("salon_id = ?", salonID).First(&sched).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "لم يتم ضبط أوقات الدوام بعد.")
		return
	}

	httpresp.OK(c, sched)
}

// Put creates or replaces the weekly schedule. Opening after closing is
// allowed and means the salon stays open past midnight.
func (h *ScheduleHandler) Put(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req PutScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	if _, ok := schedule.ParseClock(req.Opening); !ok {
		httperr.BadRequest(c, "invalid_opening", "وقت الفتح غير صالح.")
		return
	}
	if _, ok := schedule.ParseClock(req.Closing); !ok {
		httperr.BadRequest(c, "invalid_closing", "وقت الإغلاق غير صالح.")
		return
	}

	var sched models.SalonSchedule
	err := h.db.Where("salon_id = ?", salonID).First(&sched).Error
	if err != nil {
		sched = models.SalonSchedule{SalonID: salonID}
	}

	sched.Opening = req.Opening
	sched.Closing = req.Closing
	sched.ClosedDays = req.ClosedDays

	if err := h.db.Save(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "تعذر حفظ الدوام.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "schedule_updated",
		Entity:   "salon_schedule",
		EntityID: &sched.ID,
	})

	httpresp.OK(c, sched)
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var items []models.ScheduleException
	h.db.Where("salon_id = ?", salonID).Order("created_at DESC").Find(&items)

	httpresp.List(c, items)
}

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	date, ok := h.parseExceptionDay(c, salonID, req.Date, req.Weekday)
	if !ok {
		return
	}

	if !req.FullDay {
		if _, ok := schedule.ParseClock(req.StartTime); !ok {
			httperr.BadRequest(c, "invalid_start_time", "وقت البداية غير صالح.")
			return
		}
		if _, ok := schedule.ParseClock(req.EndTime); !ok {
			httperr.BadRequest(c, "invalid_end_time", "وقت النهاية غير صالح.")
			return
		}
	}

	item := models.ScheduleException{
		SalonID:   salonID,
		Date:      date,
		Weekday:   req.Weekday,
		FullDay:   req.FullDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		StaffID:   req.StaffID,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "تعذر إنشاء الاستثناء.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "exception_created",
		Entity:   "schedule_exception",
		EntityID: &item.ID,
	})

	httpresp.Created(c, item)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	res := h.db.Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.ScheduleException{})
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "exception_not_found", "الاستثناء غير موجود.")
		return
	}

	entityID := uint(id)
	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "exception_deleted",
		Entity:   "schedule_exception",
		EntityID: &entityID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// BREAKS
// ======================================================

func (h *ScheduleHandler) ListBreaks(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var items []models.StaffBreak
	q := h.db.Where("salon_id = ?", salonID)
	if staffID := c.Query("staff_id"); staffID != "" {
		q = q.Where("staff_id = ?", staffID)
	}
	q.Order("created_at DESC").Find(&items)

	httpresp.List(c, items)
}

func (h *ScheduleHandler) CreateBreak(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	var staff models.User
	if err := h.db.Where("id = ? AND salon_id = ?", req.StaffID, salonID).First(&staff).Error; err != nil {
		httperr.BadRequest(c, "staff_not_found", "الموظف غير موجود.")
		return
	}

	date, ok := h.parseExceptionDay(c, salonID, req.Date, req.Weekday)
	if !ok {
		return
	}

	if _, okc := schedule.ParseClock(req.StartTime); !okc {
		httperr.BadRequest(c, "invalid_start_time", "وقت البداية غير صالح.")
		return
	}
	if _, okc := schedule.ParseClock(req.EndTime); !okc {
		httperr.BadRequest(c, "invalid_end_time", "وقت النهاية غير صالح.")
		return
	}

	item := models.StaffBreak{
		SalonID:   salonID,
		StaffID:   req.StaffID,
		Weekday:   req.Weekday,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Label:     req.Label,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_break", "تعذر إنشاء الاستراحة.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "break_created",
		Entity:   "staff_break",
		EntityID: &item.ID,
	})

	httpresp.Created(c, item)
}

func (h *ScheduleHandler) DeleteBreak(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	res := h.db.Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.StaffBreak{})
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "break_not_found", "الاستراحة غير موجودة.")
		return
	}

	entityID := uint(id)
	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "break_deleted",
		Entity:   "staff_break",
		EntityID: &entityID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// HELPERS
// ======================================================

// parseExceptionDay enforces the date-or-weekday shape shared by
// exceptions and breaks. Writes the HTTP error itself on failure.
func (h *ScheduleHandler) parseExceptionDay(
	c *gin.Context,
	salonID uint,
	dateStr string,
	weekday *int,
) (*time.Time, bool) {

	if dateStr == "" && weekday == nil {
		httperr.BadRequest(c, "missing_day", "يجب تحديد تاريخ أو يوم أسبوع.")
		return nil, false
	}
	if dateStr != "" && weekday != nil {
		httperr.BadRequest(c, "ambiguous_day", "حددي تاريخاً أو يوم أسبوع، وليس كليهما.")
		return nil, false
	}
	if weekday != nil && (*weekday < 0 || *weekday > 6) {
		httperr.BadRequest(c, "invalid_weekday", "يوم الأسبوع غير صالح.")
		return nil, false
	}

	if dateStr == "" {
		return nil, true
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "تعذر تحميل الصالون.")
		return nil, false
	}

	date, err := parseDateInSalon(&salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "تاريخ غير صالح.")
		return nil, false
	}

	return &date, true
}
