package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	SalonSlug string `json:"salon_slug" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// Create stores a review after verifying the customer actually completed
// an appointment at the salon. One review per customer per salon; a
// second submission overwrites the first.
func (h *ReviewHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		httperr.BadRequest(c, "invalid_rating", "التقييم يجب أن يكون بين 1 و 5.")
		return
	}

	var salon models.Salon
	if err := h.db.
		Where("slug = ? AND active = ? AND approved = ?", req.SalonSlug, true, true).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "الصالون غير موجود.")
		return
	}

	var completed int64
	h.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND customer_id = ? AND status = ?", salon.ID, customerID, "completed").
		Count(&completed)
	if completed == 0 {
		httperr.Forbidden(c, "no_completed_appointment", "التقييم متاح بعد إتمام موعد في الصالون.")
		return
	}

	var review models.Review
	err := h.db.
		Where("salon_id = ? AND customer_id = ?", salon.ID, customerID).
		First(&review).Error
	if err != nil {
		review = models.Review{SalonID: salon.ID, CustomerID: customerID}
	}

	review.Rating = req.Rating
	review.Comment = req.Comment

	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_save_review", "تعذر حفظ التقييم.")
		return
	}

	httpresp.Created(c, review)
}
