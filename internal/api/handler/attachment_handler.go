package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/martijn/garage/internal/api/dto"
	"github.com/martijn/garage/internal/core/service"
)

// attachmentField is the multipart form field carrying the upload
const attachmentField = "file"

type AttachmentHandler struct {
	attachmentService *service.AttachmentService
}

func NewAttachmentHandler(attachmentService *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// UploadAttachment handles POST /api/clients/:id/attachment
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	header, err := c.FormFile(attachmentField)
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "Unreadable upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(c, "Unreadable upload")
		return
	}

	storedName, err := h.attachmentService.Attach(
		c.Request.Context(),
		c.Param("id"),
		data,
		header.Header.Get("Content-Type"),
		header.Filename,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttachmentResponse{StoredFileName: storedName})
}

// DownloadAttachment handles GET /api/clients/:id/attachment
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	rc, storedName, err := h.attachmentService.OpenAttachment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(storedName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": `inline; filename="` + storedName + `"`,
	})
}
