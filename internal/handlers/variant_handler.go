package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type VariantHandler struct {
	BaseHandler
	variantService services.VariantService
}

func NewVariantHandler(variantService services.VariantService, logger utils.Logger) *VariantHandler {
	return &VariantHandler{
		BaseHandler:    NewBaseHandler(logger),
		variantService: variantService,
	}
}

// CreateVariant assigns a homework variant to a student
// @Summary Create variant assignment
// @Tags variants
// @Accept json
// @Produce json
// @Param variant body services.CreateVariantRequest true "Assignment data"
// @Success 201 {object} models.StudentHomeworkVariant
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /variants [post]
func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var req services.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	variant, err := h.variantService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

// ListVariants lists all variant assignments
// @Summary List variant assignments
// @Tags variants
// @Produce json
// @Success 200 {array} models.StudentHomeworkVariant
// @Router /variants [get]
func (h *VariantHandler) ListVariants(c *gin.Context) {
	variants, err := h.variantService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

// GetVariant retrieves a variant assignment by ID
// @Summary Get variant assignment
// @Tags variants
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} models.StudentHomeworkVariant
// @Failure 404 {object} ErrorResponse
// @Router /variants/{id} [get]
func (h *VariantHandler) GetVariant(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	variant, err := h.variantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

// GetVariantByPair retrieves the assignment for a student and homework pair
// @Summary Get variant by student and homework
// @Tags variants
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param homework_id path uint true "Homework ID"
// @Success 200 {object} models.StudentHomeworkVariant
// @Failure 404 {object} ErrorResponse
// @Router /variants/by-pair/{student_id}/{homework_id} [get]
func (h *VariantHandler) GetVariantByPair(c *gin.Context) {
	studentID := h.parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}
	homeworkID := h.parseIDParam(c, "homework_id")
	if homeworkID == 0 {
		return
	}

	variant, err := h.variantService.GetByPair(c.Request.Context(), studentID, homeworkID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

// ListVariantsByStudent lists assignments of one student
// @Summary List variants of a student
// @Tags variants
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {array} models.StudentHomeworkVariant
// @Failure 404 {object} ErrorResponse
// @Router /variants/by-student/{id} [get]
func (h *VariantHandler) ListVariantsByStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	variants, err := h.variantService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

// ListVariantsByHomework lists assignments of one homework
// @Summary List variants of a homework
// @Tags variants
// @Produce json
// @Param id path uint true "Homework ID"
// @Success 200 {array} models.StudentHomeworkVariant
// @Failure 404 {object} ErrorResponse
// @Router /variants/by-homework/{id} [get]
func (h *VariantHandler) ListVariantsByHomework(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	variants, err := h.variantService.ListByHomework(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

type updateVariantRequest struct {
	VariantNumber int `json:"variant_number" binding:"required"`
}

// UpdateVariant changes the variant number of an assignment
// @Summary Update variant assignment
// @Tags variants
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param body body updateVariantRequest true "New variant number"
// @Success 200 {object} models.StudentHomeworkVariant
// @Failure 404 {object} ErrorResponse
// @Failure 400 {object} ErrorResponse
// @Router /variants/{id} [put]
func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req updateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	variant, err := h.variantService.Update(c.Request.Context(), id, req.VariantNumber)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

// DeleteVariant removes a variant assignment
// @Summary Delete variant assignment
// @Tags variants
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /variants/{id} [delete]
func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.variantService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Variant assignment deleted"})
}

type generateVariantsRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// GenerateVariants rolls random variants for every homework a student lacks
// @Summary Generate random variants for a student
// @Tags variants
// @Accept json
// @Produce json
// @Param body body generateVariantsRequest true "Student"
// @Success 200 {array} models.StudentHomeworkVariant
// @Failure 404 {object} ErrorResponse
// @Router /variants/bulk [post]
func (h *VariantHandler) GenerateVariants(c *gin.Context) {
	var req generateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	variants, err := h.variantService.GenerateRandomForStudent(c.Request.Context(), req.StudentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

type bulkUpdateVariantsRequest struct {
	Assignments []services.VariantAssignment `json:"assignments" binding:"required"`
}

// BulkUpdateVariants replaces a student's assignments in one transaction.
// Either every entry passes the bounds check or nothing is written.
// @Summary Bulk update variants of a student
// @Tags variants
// @Accept json
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param body body bulkUpdateVariantsRequest true "Assignments"
// @Success 200 {array} models.StudentHomeworkVariant
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /variants/bulk/{student_id} [put]
func (h *VariantHandler) BulkUpdateVariants(c *gin.Context) {
	studentID := h.parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	var req bulkUpdateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	variants, err := h.variantService.BulkUpdateForStudent(c.Request.Context(), studentID, req.Assignments)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}
