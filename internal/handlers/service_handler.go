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

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=5"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Category    string  `json:"category"`
	Gender      string  `json:"gender"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var items []models.SalonService
	h.db.Where("salon_id = ?", salonID).Order("name ASC").Find(&items)

	httpresp.List(c, items)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	item := models.SalonService{
		SalonID:     salonID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Gender:      req.Gender,
		Active:      true,
	}
	if item.Gender == "" {
		item.Gender = "female"
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "تعذر إنشاء الخدمة.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "service_created",
		Entity:   "salon_service",
		EntityID: &item.ID,
	})

	httpresp.Created(c, item)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	var item models.SalonService
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&item).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "الخدمة غير موجودة.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.DurationMin = req.DurationMin
	item.Price = req.Price
	item.Category = req.Category
	if req.Gender != "" {
		item.Gender = req.Gender
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "تعذر تحديث الخدمة.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "service_updated",
		Entity:   "salon_service",
		EntityID: &item.ID,
	})

	httpresp.OK(c, item)
}

// Delete deactivates instead of removing: past appointments keep their
// reference to the service row.
func (h *ServiceHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	var item models.SalonService
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&item).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "الخدمة غير موجودة.")
		return
	}

	item.Active = false
	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "تعذر حذف الخدمة.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "service_deactivated",
		Entity:   "salon_service",
		EntityID: &item.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
