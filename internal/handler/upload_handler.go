package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/response"
	"github.com/capstone-archive/backend-go/internal/storage"
)

// UploadHandler hands out presigned URLs for project files
type UploadHandler struct {
	baseHandler
	presigner storage.Presigner
}

// NewUploadHandler creates a new upload handler. presigner may be nil when
// storage is not configured.
func NewUploadHandler(presigner storage.Presigner, cfg *config.Config, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		baseHandler: baseHandler{logger: logger, exposeErrors: cfg.IsDevelopment()},
		presigner:   presigner,
	}
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required"`
}

// CreateUploadURL handles POST /api/projects/upload-url
func (h *UploadHandler) CreateUploadURL(c *gin.Context) {
	if h.presigner == nil {
		h.handleServiceError(c, storage.ErrStorageDisabled)
		return
	}

	var req UploadURLRequest
	if !h.bindJSON(c, &req) {
		return
	}

	upload, err := h.presigner.PresignUpload(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	h.logger.Info("📤 [UploadHandler] Issued upload URL", "user_id", userID, "key", upload.Key)
	response.Success(c, http.StatusOK, upload)
}
