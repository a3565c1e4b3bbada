package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type LectureHandler struct {
	BaseHandler
	lectureService services.LectureService
}

func NewLectureHandler(lectureService services.LectureService, logger utils.Logger) *LectureHandler {
	return &LectureHandler{
		BaseHandler:    NewBaseHandler(logger),
		lectureService: lectureService,
	}
}

// CreateLecture creates a new lecture
// @Summary Create lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Param lecture body services.CreateLectureRequest true "Lecture data"
// @Success 201 {object} models.Lecture
// @Failure 400 {object} ErrorResponse
// @Router /lectures [post]
func (h *LectureHandler) CreateLecture(c *gin.Context) {
	h.LogRequest(c, "Creating lecture")

	var req services.CreateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lecture, err := h.lectureService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lecture)
}

// ListLectures lists all lectures
// @Summary List lectures
// @Tags lectures
// @Produce json
// @Success 200 {array} models.Lecture
// @Router /lectures [get]
func (h *LectureHandler) ListLectures(c *gin.Context) {
	lectures, err := h.lectureService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lectures)
}

// GetLecture retrieves a lecture by ID
// @Summary Get lecture
// @Tags lectures
// @Produce json
// @Param id path uint true "Lecture ID"
// @Success 200 {object} models.Lecture
// @Failure 404 {object} ErrorResponse
// @Router /lectures/{id} [get]
func (h *LectureHandler) GetLecture(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	lecture, err := h.lectureService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lecture)
}

// GetLectureBySecretCode resolves a lecture by its attendance code
// @Summary Get lecture by secret code
// @Tags lectures
// @Produce json
// @Param code path string true "Secret code"
// @Success 200 {object} models.Lecture
// @Failure 404 {object} ErrorResponse
// @Router /lectures/by-secret-code/{code} [get]
func (h *LectureHandler) GetLectureBySecretCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid code"})
		return
	}

	lecture, err := h.lectureService.GetBySecretCode(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lecture)
}

// UpdateLecture updates a lecture
// @Summary Update lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Param id path uint true "Lecture ID"
// @Param lecture body services.UpdateLectureRequest true "Fields to update"
// @Success 200 {object} models.Lecture
// @Failure 404 {object} ErrorResponse
// @Router /lectures/{id} [put]
func (h *LectureHandler) UpdateLecture(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lecture, err := h.lectureService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lecture)
}

// DeleteLecture deletes a lecture and its attendance rows
// @Summary Delete lecture
// @Tags lectures
// @Produce json
// @Param id path uint true "Lecture ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /lectures/{id} [delete]
func (h *LectureHandler) DeleteLecture(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.lectureService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lecture deleted"})
}

// GetLectureCapacity reports seat usage for a lecture number
// @Summary Lecture capacity
// @Tags lectures
// @Produce json
// @Param number path int true "Lecture number"
// @Success 200 {object} models.LectureCapacity
// @Failure 404 {object} ErrorResponse
// @Router /lectures/capacity/{number} [get]
func (h *LectureHandler) GetLectureCapacity(c *gin.Context) {
	number, ok := h.parseIntParam(c, "number")
	if !ok {
		return
	}

	capacity, err := h.lectureService.Capacity(c.Request.Context(), number)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, capacity)
}

type updateCapacityRequest struct {
	// MaxStudent null removes the limit.
	MaxStudent *int `json:"max_student"`
}

// UpdateLectureCapacity sets or clears the seat limit for a lecture number
// @Summary Update lecture capacity
// @Tags lectures
// @Accept json
// @Produce json
// @Param number path int true "Lecture number"
// @Param body body updateCapacityRequest true "New limit"
// @Success 200 {object} models.LectureCapacity
// @Failure 404 {object} ErrorResponse
// @Router /lectures/capacity/{number} [put]
func (h *LectureHandler) UpdateLectureCapacity(c *gin.Context) {
	number, ok := h.parseIntParam(c, "number")
	if !ok {
		return
	}

	var req updateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	capacity, err := h.lectureService.UpdateCapacity(c.Request.Context(), number, req.MaxStudent)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, capacity)
}
