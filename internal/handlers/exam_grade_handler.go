package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

// maxDocumentSize caps uploaded grade sheets at 10 MiB.
const maxDocumentSize = 10 << 20

type ExamGradeHandler struct {
	BaseHandler
	examGradeService services.ExamGradeService
}

func NewExamGradeHandler(examGradeService services.ExamGradeService, logger utils.Logger) *ExamGradeHandler {
	return &ExamGradeHandler{
		BaseHandler:      NewBaseHandler(logger),
		examGradeService: examGradeService,
	}
}

// CreateExamGrade records an exam grade for a student
// @Summary Create exam grade
// @Tags exam-grades
// @Accept json
// @Produce json
// @Param grade body services.CreateExamGradeRequest true "Grade data"
// @Success 201 {object} models.ExamGrade
// @Failure 400 {object} ErrorResponse
// @Router /exam-grades [post]
func (h *ExamGradeHandler) CreateExamGrade(c *gin.Context) {
	h.LogRequest(c, "Creating exam grade")

	var req services.CreateExamGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	grade, err := h.examGradeService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, grade)
}

// ListExamGrades lists exam grades with student details
// @Summary List exam grades
// @Tags exam-grades
// @Produce json
// @Success 200 {array} models.ExamGradeRecord
// @Router /exam-grades [get]
func (h *ExamGradeHandler) ListExamGrades(c *gin.Context) {
	grades, err := h.examGradeService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grades)
}

// GetExamGrade retrieves an exam grade by ID
// @Summary Get exam grade
// @Tags exam-grades
// @Produce json
// @Param id path uint true "Grade ID"
// @Success 200 {object} models.ExamGradeRecord
// @Failure 404 {object} ErrorResponse
// @Router /exam-grades/{id} [get]
func (h *ExamGradeHandler) GetExamGrade(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	grade, err := h.examGradeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grade)
}

// ListExamGradesByStudent lists grades of one student
// @Summary List exam grades of a student
// @Tags exam-grades
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {array} models.ExamGradeRecord
// @Failure 404 {object} ErrorResponse
// @Router /exam-grades/by-student/{id} [get]
func (h *ExamGradeHandler) ListExamGradesByStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	grades, err := h.examGradeService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grades)
}

// UpdateExamGrade updates an exam grade
// @Summary Update exam grade
// @Tags exam-grades
// @Accept json
// @Produce json
// @Param id path uint true "Grade ID"
// @Param grade body services.UpdateExamGradeRequest true "Fields to update"
// @Success 200 {object} models.ExamGrade
// @Failure 404 {object} ErrorResponse
// @Router /exam-grades/{id} [put]
func (h *ExamGradeHandler) UpdateExamGrade(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateExamGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	grade, err := h.examGradeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grade)
}

// DeleteExamGrade deletes an exam grade
// @Summary Delete exam grade
// @Tags exam-grades
// @Produce json
// @Param id path uint true "Grade ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /exam-grades/{id} [delete]
func (h *ExamGradeHandler) DeleteExamGrade(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.examGradeService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Exam grade deleted"})
}

// UploadDocument attaches a scanned grade sheet to a grade
// @Summary Upload grade document
// @Tags exam-grades
// @Accept application/octet-stream
// @Produce json
// @Param id path uint true "Grade ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exam-grades/{id}/document [put]
func (h *ExamGradeHandler) UploadDocument(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	document, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read document",
			Details: err.Error(),
		})
		return
	}

	if err := h.examGradeService.UploadDocument(c.Request.Context(), id, document); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Document uploaded"})
}

// GetDocument returns the stored grade sheet
// @Summary Download grade document
// @Tags exam-grades
// @Produce application/octet-stream
// @Param id path uint true "Grade ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /exam-grades/{id}/document [get]
func (h *ExamGradeHandler) GetDocument(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	document, err := h.examGradeService.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", document)
}
