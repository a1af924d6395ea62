package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propamit/propamit-api/internal/api/metrics"
	"github.com/propamit/propamit-api/internal/core/ports"
)

// maxUploadSize caps a single document upload at 5 MB.
const maxUploadSize = 5 << 20

// UploadHandler accepts multipart document uploads for the authenticated user.
type UploadHandler struct {
	documentService ports.DocumentService
}

func NewUploadHandler(documentService ports.DocumentService) *UploadHandler {
	return &UploadHandler{documentService: documentService}
}

// Upload stores one file from the "file" form field; an optional "category"
// field tags the document.
//
// @Summary      Upload a document
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "Document file (max 5MB)"
// @Param        category  formData  string  false  "Document category"
// @Success      200       {object}  envelope
// @Failure      400       {object}  envelope
// @Failure      401       {object}  envelope
// @Failure      413       {object}  envelope
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	if fileHeader.Size == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty file")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds 5MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.Request().Context(), ports.UploadInput{
		UserID:       uid,
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Category:     c.FormValue("category"),
		Body:         file,
	})
	if err != nil {
		return err
	}

	metrics.UploadsTotal.Inc()
	metrics.UploadBytesTotal.Add(float64(fileHeader.Size))
	return respond(c, http.StatusOK, "File uploaded successfully", doc)
}
