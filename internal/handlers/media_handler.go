package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/audit"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/media"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
)

const maxPhotoBytes = 10 << 20

const maxPhotosPerSalon = 12

type MediaHandler struct {
	db      *gorm.DB
	storage *media.Storage
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewMediaHandler(db *gorm.DB, storage *media.Storage, audit *audit.Dispatcher, log *zap.Logger) *MediaHandler {
	return &MediaHandler{db: db, storage: storage, audit: audit, log: log}
}

func (h *MediaHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var photos []models.SalonPhoto
	h.db.Where("salon_id = ?", salonID).Order("position ASC").Find(&photos)

	httpresp.List(c, photos)
}

// Upload takes a multipart photo, converts it to webp and stores it in
// the bucket.
func (h *MediaHandler) Upload(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var count int64
	h.db.Model(&models.SalonPhoto{}).Where("salon_id = ?", salonID).Count(&count)
	if count >= maxPhotosPerSalon {
		httperr.BadRequest(c, "photo_limit_reached", "تم بلوغ الحد الأقصى للصور.")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "الصورة مطلوبة.")
		return
	}
	if file.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "حجم الصورة كبير جداً.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "تعذر قراءة الصورة.")
		return
	}
	defer src.Close()

	processed, err := media.ProcessPhoto(src)
	if err != nil {
		httperr.BadRequest(c, "unsupported_image", "صيغة الصورة غير مدعومة.")
		return
	}

	key, url, err := h.storage.UploadSalonPhoto(c.Request.Context(), salonID, processed)
	if err != nil {
		h.log.Error("photo upload failed", zap.Error(err), zap.Uint("salon_id", salonID))
		httperr.Internal(c, "upload_failed", "تعذر رفع الصورة.")
		return
	}

	photo := models.SalonPhoto{
		SalonID:   salonID,
		ObjectKey: key,
		URL:       url,
		Position:  int(count),
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "تعذر حفظ الصورة.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "photo_uploaded",
		Entity:   "salon_photo",
		EntityID: &photo.ID,
	})

	httpresp.Created(c, photo)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "معرّف غير صالح.")
		return
	}

	var photo models.SalonPhoto
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&photo).Error; err != nil {
		httperr.NotFound(c, "photo_not_found", "الصورة غير موجودة.")
		return
	}

	if err := h.storage.Delete(c.Request.Context(), photo.ObjectKey); err != nil {
		// Row removal proceeds even when the bucket delete fails.
		h.log.Warn("photo object delete failed", zap.Error(err), zap.String("key", photo.ObjectKey))
	}

	if err := h.db.Delete(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_photo", "تعذر حذف الصورة.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "photo_deleted",
		Entity:   "salon_photo",
		EntityID: &photo.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
