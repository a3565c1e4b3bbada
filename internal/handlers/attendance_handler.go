package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
	}
}

// ListAttendance lists attendance joined with student and lecture details
// @Summary List attendance
// @Tags attendance
// @Produce json
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	records, err := h.attendanceService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// MarkAttendance creates or updates an attendance mark
// @Summary Mark attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param attendance body services.MarkAttendanceRequest true "Attendance mark"
// @Success 200 {object} models.Attendance
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	h.LogRequest(c, "Marking attendance")

	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	attendance, err := h.attendanceService.Mark(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendance)
}

type updateAttendanceRequest struct {
	Present bool `json:"present"`
}

// UpdateAttendance changes the present flag of an existing mark
// @Summary Update attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path uint true "Attendance ID"
// @Param body body updateAttendanceRequest true "Present flag"
// @Success 200 {object} models.Attendance
// @Failure 404 {object} ErrorResponse
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req updateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	attendance, err := h.attendanceService.Update(c.Request.Context(), id, req.Present)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendance)
}
