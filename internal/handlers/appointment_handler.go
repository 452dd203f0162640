package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
	ucappointment "github.com/salonat-app/salon-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	create     *ucappointment.CreateAppointment
	validate   *ucappointment.ValidateSlot
	cancel     *ucappointment.CancelAppointment
	complete   *ucappointment.CompleteAppointment
	markAbsent *ucappointment.MarkAbsent
	listByDate *ucappointment.ListAppointmentsByDate
	listByMon  *ucappointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *ucappointment.CreateAppointment,
	validate *ucappointment.ValidateSlot,
	cancel *ucappointment.CancelAppointment,
	complete *ucappointment.CompleteAppointment,
	markAbsent *ucappointment.MarkAbsent,
	listByDate *ucappointment.ListAppointmentsByDate,
	listByMon *ucappointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		create:     create,
		validate:   validate,
		cancel:     cancel,
		complete:   complete,
		markAbsent: markAbsent,
		listByDate: listByDate,
		listByMon:  listByMon,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	StaffID       *uint  `json:"staff_id"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

type ValidateSlotRequest struct {
	StaffID   *uint  `json:"staff_id"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		SalonID:       salonID,
		StaffID:       req.StaffID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// VALIDATE (dry run)
// ======================================================

func (h *AppointmentHandler) Validate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req ValidateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	salon, err := h.loadSalon(salonID)
	if err != nil {
		httperr.Internal(c, "salon_not_found", "تعذر تحميل الصالون.")
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "تاريخ أو وقت غير صالح.")
		return
	}

	var svc models.SalonService
	if err := h.db.Where("id = ? AND salon_id = ?", req.ServiceID, salonID).First(&svc).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "الخدمة غير موجودة.")
		return
	}

	result, err := h.validate.Execute(c.Request.Context(), domain.ValidateInput{
		SalonID:     salonID,
		StaffID:     req.StaffID,
		Start:       start,
		DurationMin: svc.DurationMin,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeState(c, func(ctx *gin.Context, salonID uint, userID *uint, id uint) (*models.Appointment, error) {
		return h.cancel.Execute(ctx.Request.Context(), salonID, userID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeState(c, func(ctx *gin.Context, salonID uint, userID *uint, id uint) (*models.Appointment, error) {
		return h.complete.Execute(ctx.Request.Context(), salonID, userID, id)
	})
}

func (h *AppointmentHandler) MarkAbsent(c *gin.Context) {
	h.changeState(c, func(ctx *gin.Context, salonID uint, userID *uint, id uint) (*models.Appointment, error) {
		return h.markAbsent.Execute(ctx.Request.Context(), salonID, userID, id)
	})
}

func (h *AppointmentHandler) changeState(
	c *gin.Context,
	fn func(*gin.Context, uint, *uint, uint) (*models.Appointment, error),
) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	ap, err := fn(c, salonID, &userID, uint(id))
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "التاريخ مطلوب.")
		return
	}

	salon, err := h.loadSalon(salonID)
	if err != nil {
		httperr.Internal(c, "salon_not_found", "تعذر تحميل الصالون.")
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "تاريخ غير صالح.")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), salonID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "تعذر تحميل المواعيد.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "سنة غير صالحة.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "شهر غير صالح.")
		return
	}

	salon, err := h.loadSalon(salonID)
	if err != nil {
		httperr.Internal(c, "salon_not_found", "تعذر تحميل الصالون.")
		return
	}

	items, err := h.listByMon.Execute(
		c.Request.Context(),
		salonID,
		year,
		time.Month(month),
		locationFromSalon(salon),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "تعذر تحميل المواعيد.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) loadSalon(salonID uint) (*models.Salon, error) {
	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// writeAppointmentError translates business errors from the booking use
// cases into their HTTP shape.
func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err):
		httperr.Conflict(c, "time_conflict", "الموعد متعارض مع حجز آخر.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "الوقت المطلوب قريب جداً أو في الماضي.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "تاريخ أو وقت غير صالح.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "الخدمة غير موجودة.")
	case httperr.IsBusiness(err, "salon_not_found"):
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
	case httperr.IsBusiness(err, "salon_unavailable"):
		httperr.Forbidden(c, "salon_unavailable", "الصالون غير متاح للحجز حالياً.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "الموعد غير موجود.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "لا يمكن تغيير حالة الموعد.")
	default:
		httperr.Internal(c, "appointment_error", "تعذر تنفيذ العملية.")
	}
}
