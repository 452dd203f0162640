package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/domain/schedule"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/models"
	ucappointment "github.com/salonat-app/salon-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// DiscoveryHandler is the public, unauthenticated surface the customer
// app browses: approved salons, their services and free slots.
type DiscoveryHandler struct {
	db           *gorm.DB
	availability *ucappointment.GetAvailability
}

func NewDiscoveryHandler(db *gorm.DB, availability *ucappointment.GetAvailability) *DiscoveryHandler {
	return &DiscoveryHandler{db: db, availability: availability}
}

// ======================================================
// RESPONSES
// ======================================================

type SalonCard struct {
	models.Salon
	Status        schedule.State `json:"status"`
	AvailableSoon bool           `json:"available_soon"`
	AvgRating     float64        `json:"avg_rating"`
	ReviewCount   int            `json:"review_count"`
}

// ======================================================
// LIST
// ======================================================

func (h *DiscoveryHandler) ListSalons(c *gin.Context) {
	q := h.db.Model(&models.Salon{}).
		Select(`salons.*,
			COALESCE(AVG(reviews.rating), 0) AS avg_rating,
			COUNT(reviews.id) AS review_count`).
		Joins("LEFT JOIN reviews ON reviews.salon_id = salons.id").
		Where("salons.active = ? AND salons.approved = ?", true, true).
		Group("salons.id")

	if city := c.Query("city"); city != "" {
		q = q.Where("salons.city = ?", city)
	}
	if gender := c.Query("gender"); gender != "" {
		q = q.Where("salons.gender IN ?", []string{gender, "both"})
	}

	var cards []SalonCard
	if err := q.Order("avg_rating DESC").Find(&cards).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "تعذر تحميل الصالونات.")
		return
	}

	for i := range cards {
		cards[i].Status, cards[i].AvailableSoon = h.liveStatus(&cards[i].Salon)
	}

	httpresp.List(c, cards)
}

// ======================================================
// DETAILS
// ======================================================

func (h *DiscoveryHandler) GetBySlug(c *gin.Context) {
	salon, ok := h.loadApproved(c)
	if !ok {
		return
	}

	card := SalonCard{Salon: *salon}
	card.Status, card.AvailableSoon = h.liveStatus(salon)

	h.db.Model(&models.Review{}).
		Where("salon_id = ?", salon.ID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&card.AvgRating)
	var count int64
	h.db.Model(&models.Review{}).Where("salon_id = ?", salon.ID).Count(&count)
	card.ReviewCount = int(count)

	var photos []models.SalonPhoto
	h.db.Where("salon_id = ?", salon.ID).Order("position ASC").Find(&photos)

	httpresp.OK(c, gin.H{
		"salon":  card,
		"photos": photos,
	})
}

func (h *DiscoveryHandler) ListServices(c *gin.Context) {
	salon, ok := h.loadApproved(c)
	if !ok {
		return
	}

	var items []models.SalonService
	h.db.Where("salon_id = ? AND active = ?", salon.ID, true).
		Order("category ASC, name ASC").
		Find(&items)

	httpresp.List(c, items)
}

func (h *DiscoveryHandler) ListReviews(c *gin.Context) {
	salon, ok := h.loadApproved(c)
	if !ok {
		return
	}

	var items []models.Review
	h.db.Preload("Customer").
		Where("salon_id = ?", salon.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&items)

	httpresp.List(c, items)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *DiscoveryHandler) GetAvailability(c *gin.Context) {
	salon, ok := h.loadApproved(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_service", "الخدمة مطلوبة.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "التاريخ مطلوب.")
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "تاريخ غير صالح.")
		return
	}

	var staffID *uint
	if s := c.Query("staff_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "معرّف الموظف غير صالح.")
			return
		}
		v := uint(id)
		staffID = &v
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   salon.ID,
		StaffID:   staffID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// HELPERS
// ======================================================

func (h *DiscoveryHandler) loadApproved(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	err := h.db.
		Where("slug = ? AND active = ? AND approved = ?", c.Param("slug"), true, true).
		First(&salon).Error
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
		return nil, false
	}
	return &salon, true
}

func (h *DiscoveryHandler) liveStatus(salon *models.Salon) (schedule.State, bool) {
	var sched models.SalonSchedule
	if err := h.db.Where("salon_id = ?", salon.ID).First(&sched).Error; err != nil {
		return schedule.StateClosed, false
	}

	now := nowInSalon(salon)

	var exceptions []models.ScheduleException
	h.db.Where("salon_id = ? AND full_day = ? AND staff_id IS NULL", salon.ID, true).
		Find(&exceptions)

	closures := make([]schedule.Closure, 0, len(exceptions))
	for _, ex := range exceptions {
		closures = append(closures, schedule.ClosureFromException(ex))
	}

	return schedule.Status(schedule.FromModel(&sched), closures, now)
}
