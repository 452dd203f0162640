package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/audit"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
	"github.com/salonat-app/salon-api/internal/timezone"
)

type SalonHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSalonHandler(db *gorm.DB, audit *audit.Dispatcher) *SalonHandler {
	return &SalonHandler{db: db, audit: audit}
}

type UpdateSalonRequest struct {
	Name              string `json:"name"`
	City              string `json:"city"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Gender            string `json:"gender"`
	PriceLevel        *int   `json:"price_level"`
	Timezone          string `json:"timezone"`
	MinAdvanceMinutes *int   `json:"min_advance_minutes"`
	Active            *bool  `json:"active"`
}

func (h *SalonHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
		return
	}

	httpresp.OK(c, salon)
}

func (h *SalonHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "المنطقة الزمنية غير صالحة.")
		return
	}

	if req.Name != "" {
		salon.Name = req.Name
	}
	if req.City != "" {
		salon.City = req.City
	}
	if req.Address != "" {
		salon.Address = req.Address
	}
	if req.Phone != "" {
		salon.Phone = req.Phone
	}
	if req.Gender != "" {
		salon.Gender = req.Gender
	}
	if req.Timezone != "" {
		salon.Timezone = req.Timezone
	}
	if req.PriceLevel != nil && *req.PriceLevel >= 1 && *req.PriceLevel <= 3 {
		salon.PriceLevel = *req.PriceLevel
	}
	if req.MinAdvanceMinutes != nil && *req.MinAdvanceMinutes >= 0 {
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.Active != nil {
		salon.Active = *req.Active
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "تعذر تحديث الصالون.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "salon_updated",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.OK(c, salon)
}
