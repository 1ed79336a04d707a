package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ComplianceReport downloads the owner's compliance workbook
func (h *Handler) ComplianceReport(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	buf, err := h.svc.ComplianceReport(c.Request().Context(), owner)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("compliance_report_%s.xlsx", h.svc.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
