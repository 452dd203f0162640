package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/audit"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
	"github.com/salonat-app/salon-api/internal/validators"
)

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: audit}
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Pin      string `json:"pin"`
}

type UpdateStaffRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Pin    string `json:"pin"`
	Active *bool  `json:"active"`
}

func (h *StaffHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var items []models.User
	h.db.Where("salon_id = ? AND role = ?", salonID, "staff").
		Order("name ASC").
		Find(&items)

	httpresp.List(c, items)
}

func (h *StaffHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "نطاق البريد الإلكتروني غير صالح.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "البريد الإلكتروني مستخدم.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "تعذر إنشاء الحساب.")
		return
	}

	staff := models.User{
		SalonID:      &salonID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "staff",
		Active:       true,
	}

	if req.Pin != "" {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_pin", "تعذر إنشاء الحساب.")
			return
		}
		staff.PinHash = string(pinHash)
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "تعذر إنشاء الموظف.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "staff_created",
		Entity:   "user",
		EntityID: &staff.ID,
	})

	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	var staff models.User
	if err := h.db.
		Where("id = ? AND salon_id = ? AND role = ?", id, salonID, "staff").
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "الموظف غير موجود.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	if req.Name != "" {
		staff.Name = req.Name
	}
	if req.Phone != "" {
		staff.Phone = req.Phone
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}
	if req.Pin != "" {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_pin", "تعذر تحديث الموظف.")
			return
		}
		staff.PinHash = string(pinHash)
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "تعذر تحديث الموظف.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "staff_updated",
		Entity:   "user",
		EntityID: &staff.ID,
	})

	httpresp.OK(c, staff)
}
