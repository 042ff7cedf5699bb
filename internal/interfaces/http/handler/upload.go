package handler

import (
	"github.com/gin-gonic/gin"
	mediaapp "github.com/tilesgalleria/backoffice/internal/application/media"
)

// UploadHandler accepts file uploads
type UploadHandler struct {
	BaseHandler
	uploads *mediaapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploads *mediaapp.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload godoc
// @ID           uploadFile
// @Summary      Upload a file
// @Description  Store an image or PDF. The response carries the public URL.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to upload"
// @Success      201 {object} APIResponse[mediaapp.UploadResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer f.Close()

	result, err := h.uploads.Upload(c.Request.Context(), header.Filename, header.Size, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
