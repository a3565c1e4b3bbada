package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type HomeworkHandler struct {
	BaseHandler
	homeworkService services.HomeworkService
	statsService    services.StatsService
}

func NewHomeworkHandler(homeworkService services.HomeworkService, statsService services.StatsService, logger utils.Logger) *HomeworkHandler {
	return &HomeworkHandler{
		BaseHandler:     NewBaseHandler(logger),
		homeworkService: homeworkService,
		statsService:    statsService,
	}
}

// CreateHomework creates a homework assignment
// @Summary Create homework
// @Tags homework
// @Accept json
// @Produce json
// @Param homework body services.CreateHomeworkRequest true "Homework data"
// @Success 201 {object} models.Homework
// @Failure 400 {object} ErrorResponse
// @Router /homework [post]
func (h *HomeworkHandler) CreateHomework(c *gin.Context) {
	h.LogRequest(c, "Creating homework")

	var req services.CreateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	homework, err := h.homeworkService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, homework)
}

// ListHomework lists all homework assignments
// @Summary List homework
// @Tags homework
// @Produce json
// @Success 200 {array} models.Homework
// @Router /homework [get]
func (h *HomeworkHandler) ListHomework(c *gin.Context) {
	homeworkList, err := h.homeworkService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, homeworkList)
}

// GetHomework retrieves a homework by ID
// @Summary Get homework
// @Tags homework
// @Produce json
// @Param id path uint true "Homework ID"
// @Success 200 {object} models.Homework
// @Failure 404 {object} ErrorResponse
// @Router /homework/{id} [get]
func (h *HomeworkHandler) GetHomework(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	homework, err := h.homeworkService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, homework)
}

// GetHomeworkByNumber retrieves a homework by its sequence number
// @Summary Get homework by number
// @Tags homework
// @Produce json
// @Param number path int true "Homework number"
// @Success 200 {object} models.Homework
// @Failure 404 {object} ErrorResponse
// @Router /homework/by-number/{number} [get]
func (h *HomeworkHandler) GetHomeworkByNumber(c *gin.Context) {
	number, ok := h.parseIntParam(c, "number")
	if !ok {
		return
	}

	homework, err := h.homeworkService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, homework)
}

// UpdateHomework updates a homework assignment
// @Summary Update homework
// @Tags homework
// @Accept json
// @Produce json
// @Param id path uint true "Homework ID"
// @Param homework body services.UpdateHomeworkRequest true "Fields to update"
// @Success 200 {object} models.Homework
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /homework/{id} [put]
func (h *HomeworkHandler) UpdateHomework(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	homework, err := h.homeworkService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, homework)
}

// GetHomeworkStats returns submission counters per homework
// @Summary Homework statistics
// @Tags homework
// @Produce json
// @Success 200 {array} models.HomeworkStats
// @Router /homework/stats [get]
func (h *HomeworkHandler) GetHomeworkStats(c *gin.Context) {
	stats, err := h.statsService.HomeworkStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
