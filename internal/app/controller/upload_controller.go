package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	apperrors "github.com/jalvarez/washpoint-backend/internal/errors"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
	"github.com/jalvarez/washpoint-backend/internal/storage"
)

type UploadController struct {
	storage *storage.PhotoStorage
}

func NewUploadController(storage *storage.PhotoStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type WashPhotoUploadRequest struct {
	Plate       string `json:"plate" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// WashPhoto generates a presigned URL for uploading a wash photo to S3
// POST /uploads/wash-photo
func (ctrl *UploadController) WashPhoto(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req WashPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid wash photo upload request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Plate, filename and content type are required")
		return
	}

	// Images only
	allowedTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}
	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedTypes); err != nil {
		log.Warn("Invalid content type for wash photo", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}

	plate := service.NormalizePlate(req.Plate)
	upload, err := ctrl.storage.PresignWashPhoto(plate, req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"plate":    plate,
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to generate upload URL")
		return
	}

	log.Info("Wash photo upload URL generated", map[string]interface{}{
		"plate": plate,
		"key":   upload.Key,
	})

	c.JSON(http.StatusOK, upload)
}
