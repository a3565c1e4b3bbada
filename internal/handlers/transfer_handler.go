package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransferHandler struct {
	BaseHandler
	transferService services.TransferService
}

func NewTransferHandler(transferService services.TransferService, logger utils.Logger) *TransferHandler {
	return &TransferHandler{
		BaseHandler:     NewBaseHandler(logger),
		transferService: transferService,
	}
}

// ExportAll dumps every collection as a single JSON envelope
// @Summary Export all data
// @Tags transfer
// @Produce json
// @Success 200 {object} models.ExportEnvelope
// @Router /export/all [get]
func (h *TransferHandler) ExportAll(c *gin.Context) {
	h.LogRequest(c, "Exporting all data")

	envelope, err := h.transferService.ExportAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope)
}

// ExportXLSX dumps every collection as an Excel workbook
// @Summary Export all data as XLSX
// @Tags transfer
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /export/xlsx [get]
func (h *TransferHandler) ExportXLSX(c *gin.Context) {
	h.LogRequest(c, "Exporting all data as XLSX")

	workbook, err := h.transferService.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("course-export-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}

// ImportAll replaces the entire database with an exported envelope
// @Summary Import all data
// @Tags transfer
// @Accept json
// @Produce json
// @Param envelope body models.ExportEnvelope true "Exported data"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Router /import/all [post]
func (h *TransferHandler) ImportAll(c *gin.Context) {
	h.LogRequest(c, "Importing all data")

	var envelope models.ExportEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	summary, err := h.transferService.ImportAll(c.Request.Context(), &envelope)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
