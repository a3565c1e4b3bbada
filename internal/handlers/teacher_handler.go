package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	teacherService services.TeacherService
	statsService   services.StatsService
}

func NewTeacherHandler(teacherService services.TeacherService, statsService services.StatsService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:    NewBaseHandler(logger),
		teacherService: teacherService,
		statsService:   statsService,
	}
}

// CreateTeacher creates a new teacher
// @Summary Create teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param teacher body services.CreateTeacherRequest true "Teacher data"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} ErrorResponse
// @Router /teachers [post]
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	h.LogRequest(c, "Creating teacher")

	var req services.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, teacher)
}

// ListTeachers lists active teachers
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {array} models.Teacher
// @Router /teachers [get]
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

// GetTeacher retrieves a teacher by ID
// @Summary Get teacher
// @Tags teachers
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} ErrorResponse
// @Router /teachers/{id} [get]
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// GetTeacherByTelegram retrieves a teacher by telegram handle
// @Summary Get teacher by telegram
// @Tags teachers
// @Produce json
// @Param telegram path string true "Telegram handle"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} ErrorResponse
// @Router /teachers/by-telegram/{telegram} [get]
func (h *TeacherHandler) GetTeacherByTelegram(c *gin.Context) {
	telegram := c.Param("telegram")
	if telegram == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid telegram"})
		return
	}

	teacher, err := h.teacherService.GetByTelegram(c.Request.Context(), telegram)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// ListTeachersByGroup lists teachers assigned to a student group
// @Summary List teachers by group
// @Tags teachers
// @Produce json
// @Param group path string true "Group number"
// @Success 200 {array} models.Teacher
// @Router /teachers/by-group/{group} [get]
func (h *TeacherHandler) ListTeachersByGroup(c *gin.Context) {
	group := c.Param("group")
	if group == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid group"})
		return
	}

	teachers, err := h.teacherService.ListByGroup(c.Request.Context(), group)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

// UpdateTeacher updates a teacher
// @Summary Update teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path uint true "Teacher ID"
// @Param teacher body services.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} ErrorResponse
// @Router /teachers/{id} [put]
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacher soft-deletes a teacher
// @Summary Delete teacher
// @Tags teachers
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Teacher deleted"})
}

// GetTeacherStats returns review progress over the teacher's groups
// @Summary Teacher review statistics
// @Tags teachers
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {object} models.TeacherStats
// @Failure 404 {object} ErrorResponse
// @Router /teachers/{id}/stats [get]
func (h *TeacherHandler) GetTeacherStats(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	stats, err := h.statsService.TeacherStats(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ===== TEACHER GROUPS =====

// CreateTeacherGroup assigns a group to a teacher
// @Summary Create teacher group assignment
// @Tags teacher-groups
// @Accept json
// @Produce json
// @Param group body services.CreateTeacherGroupRequest true "Assignment data"
// @Success 201 {object} models.TeacherGroup
// @Failure 400 {object} ErrorResponse
// @Router /teacher-groups [post]
func (h *TeacherHandler) CreateTeacherGroup(c *gin.Context) {
	var req services.CreateTeacherGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	group, err := h.teacherService.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// ListTeacherGroups lists all group assignments
// @Summary List teacher group assignments
// @Tags teacher-groups
// @Produce json
// @Success 200 {array} models.TeacherGroup
// @Router /teacher-groups [get]
func (h *TeacherHandler) ListTeacherGroups(c *gin.Context) {
	groups, err := h.teacherService.ListGroups(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ListGroupsByTeacher lists group assignments of one teacher
// @Summary List groups of a teacher
// @Tags teacher-groups
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {array} models.TeacherGroup
// @Failure 404 {object} ErrorResponse
// @Router /teachers/{id}/groups [get]
func (h *TeacherHandler) ListGroupsByTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	groups, err := h.teacherService.ListGroupsByTeacher(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

type updateTeacherGroupRequest struct {
	GroupNumber string `json:"group_number" binding:"required"`
}

// UpdateTeacherGroup changes the group number of an assignment
// @Summary Update teacher group assignment
// @Tags teacher-groups
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param group body updateTeacherGroupRequest true "New group number"
// @Success 200 {object} models.TeacherGroup
// @Failure 404 {object} ErrorResponse
// @Router /teacher-groups/{id} [put]
func (h *TeacherHandler) UpdateTeacherGroup(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req updateTeacherGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	group, err := h.teacherService.UpdateGroup(c.Request.Context(), id, req.GroupNumber)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteTeacherGroup removes a group assignment
// @Summary Delete teacher group assignment
// @Tags teacher-groups
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher-groups/{id} [delete]
func (h *TeacherHandler) DeleteTeacherGroup(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.teacherService.DeleteGroup(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Group assignment deleted"})
}
