package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// UploadCaseFile stores a document on a case
func (h *Handler) UploadCaseFile(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	caseID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded", "field": "file"})
	}

	var description *string
	if d := strings.TrimSpace(c.FormValue("description")); d != "" {
		description = &d
	}

	record, err := h.svc.UploadCaseFile(c.Request().Context(), owner, caseID, file, c.FormValue("file_category"), description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

// ListCaseFiles returns the documents attached to a case
func (h *Handler) ListCaseFiles(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	caseID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	files, err := h.svc.ListCaseFiles(c.Request().Context(), owner, caseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, files)
}

// DownloadCaseFile streams a stored document
func (h *Handler) DownloadCaseFile(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	caseID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	fileID, err := idParam(c, "fileID")
	if err != nil {
		return err
	}

	record, reader, err := h.svc.OpenCaseFile(c.Request().Context(), owner, caseID, fileID)
	if err != nil {
		return respondError(c, err)
	}
	defer reader.Close()

	mimeType := record.MimeType
	if mimeType == "" {
		mimeType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", record.FileOriginalName))
	return c.Stream(http.StatusOK, mimeType, reader)
}
