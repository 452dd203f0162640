package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/audit"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AdminHandler is the platform-admin surface: salon moderation and
// platform-wide stats.
type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: audit}
}

// ======================================================
// SALON MODERATION
// ======================================================

func (h *AdminHandler) ListSalons(c *gin.Context) {
	q := h.db.Model(&models.Salon{})

	switch c.Query("state") {
	case "pending":
		q = q.Where("approved = ?", false)
	case "approved":
		q = q.Where("approved = ?", true)
	case "suspended":
		q = q.Where("active = ?", false)
	}

	var salons []models.Salon
	if err := q.Order("created_at DESC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "تعذر تحميل الصالونات.")
		return
	}

	httpresp.List(c, salons)
}

func (h *AdminHandler) ApproveSalon(c *gin.Context) {
	h.setSalonFlags(c, "salon_approved", func(s *models.Salon) {
		s.Approved = true
		s.Active = true
	})
}

func (h *AdminHandler) SuspendSalon(c *gin.Context) {
	h.setSalonFlags(c, "salon_suspended", func(s *models.Salon) {
		s.Active = false
	})
}

func (h *AdminHandler) setSalonFlags(c *gin.Context, action string, apply func(*models.Salon)) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
		return
	}

	apply(&salon)

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "تعذر تحديث الصالون.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &adminID,
		Action:   action,
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.OK(c, salon)
}

// ======================================================
// STATS
// ======================================================

func (h *AdminHandler) Stats(c *gin.Context) {
	var salons, pending, customers, appointments, reviews int64

	h.db.Model(&models.Salon{}).Count(&salons)
	h.db.Model(&models.Salon{}).Where("approved = ?", false).Count(&pending)
	h.db.Model(&models.Customer{}).Count(&customers)
	h.db.Model(&models.Appointment{}).Count(&appointments)
	h.db.Model(&models.Review{}).Count(&reviews)

	var byStatus []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus)

	httpresp.OK(c, gin.H{
		"salons":                 salons,
		"pending_salons":         pending,
		"customers":              customers,
		"appointments":           appointments,
		"reviews":                reviews,
		"appointments_by_status": byStatus,
	})
}
