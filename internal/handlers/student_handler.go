package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
	statsService   services.StatsService
}

func NewStudentHandler(studentService services.StudentService, statsService services.StatsService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
		statsService:   statsService,
	}
}

// CreateStudent creates a new student
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student data"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	h.LogRequest(c, "Creating student")

	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// ListStudents lists active students
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} models.Student
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetStudent retrieves a student by ID
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// GetStudentByTelegram retrieves a student by telegram handle
// @Summary Get student by telegram
// @Tags students
// @Produce json
// @Param telegram path string true "Telegram handle"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /students/by-telegram/{telegram} [get]
func (h *StudentHandler) GetStudentByTelegram(c *gin.Context) {
	telegram := c.Param("telegram")
	if telegram == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid telegram"})
		return
	}

	student, err := h.studentService.GetByTelegram(c.Request.Context(), telegram)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

type updateChatIDRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}

// UpdateStudentChatID binds a messaging chat id to a student
// @Summary Update student chat id
// @Tags students
// @Accept json
// @Produce json
// @Param telegram path string true "Telegram handle"
// @Param body body updateChatIDRequest true "Chat id"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /students/by-telegram/{telegram}/chat-id [put]
func (h *StudentHandler) UpdateStudentChatID(c *gin.Context) {
	telegram := c.Param("telegram")
	if telegram == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid telegram"})
		return
	}

	var req updateChatIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.UpdateChatID(c.Request.Context(), telegram, req.ChatID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent updates a student
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param id path uint true "Student ID"
// @Param student body services.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent soft-deletes a student
// @Summary Delete student
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted"})
}

// GetStudentStandings returns per-student scoring and attendance totals
// @Summary Student standings
// @Tags students
// @Produce json
// @Success 200 {array} models.StudentStats
// @Router /students/stats [get]
func (h *StudentHandler) GetStudentStandings(c *gin.Context) {
	standings, err := h.statsService.StudentStandings(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

// GetStudentHomeworkStats returns per-student homework completion
// @Summary Student homework completion
// @Tags students
// @Produce json
// @Success 200 {array} models.StudentHomeworkStats
// @Router /students/homework-stats [get]
func (h *StudentHandler) GetStudentHomeworkStats(c *gin.Context) {
	stats, err := h.statsService.StudentHomeworkStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
