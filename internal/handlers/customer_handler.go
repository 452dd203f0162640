package handlers

import (
	"strconv"

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

// CustomerHandler is the authenticated customer surface: their own
// bookings and profile.
type CustomerHandler struct {
	db     *gorm.DB
	repo   domain.Repository
	create *ucappointment.CreateAppointment
	cancel *ucappointment.CancelAppointment
}

func NewCustomerHandler(
	db *gorm.DB,
	repo domain.Repository,
	create *ucappointment.CreateAppointment,
	cancel *ucappointment.CancelAppointment,
) *CustomerHandler {
	return &CustomerHandler{db: db, repo: repo, create: create, cancel: cancel}
}

// ======================================================
// REQUESTS
// ======================================================

type CustomerBookRequest struct {
	SalonSlug string `json:"salon_slug" binding:"required"`
	StaffID   *uint  `json:"staff_id"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Gender   string `json:"gender"`
	Language string `json:"language"`
}

// ======================================================
// BOOKING
// ======================================================

func (h *CustomerHandler) Book(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req CustomerBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.Unauthorized(c, "customer_not_found", "الحساب غير موجود.")
		return
	}

	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), req.SalonSlug)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		SalonID:       salon.ID,
		StaffID:       req.StaffID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		CustomerEmail: customer.Email,
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

func (h *CustomerHandler) ListAppointments(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	apps, err := h.repo.ListAppointmentsForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "تعذر تحميل المواعيد.")
		return
	}

	httpresp.List(c, apps)
}

func (h *CustomerHandler) CancelAppointment(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	ap, err := h.cancel.ExecuteForCustomer(c.Request.Context(), customerID, uint(id))
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PROFILE
// ======================================================

func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "الحساب غير موجود.")
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "الحساب غير موجود.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.City != "" {
		customer.City = req.City
	}
	if req.Gender != "" {
		customer.Gender = req.Gender
	}
	if req.Language == "ar" || req.Language == "en" {
		customer.Language = req.Language
	}

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "تعذر تحديث الملف.")
		return
	}

	httpresp.OK(c, customer)
}
