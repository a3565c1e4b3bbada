package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type ReviewHandler struct {
	BaseHandler
	reviewService   services.ReviewService
	aiReviewService services.AIReviewService
}

func NewReviewHandler(reviewService services.ReviewService, aiReviewService services.AIReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:     NewBaseHandler(logger),
		reviewService:   reviewService,
		aiReviewService: aiReviewService,
	}
}

// CreateReview records a homework submission
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body services.CreateReviewRequest true "Review data"
// @Success 201 {object} models.HomeworkReview
// @Failure 400 {object} ErrorResponse
// @Router /homework/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	h.LogRequest(c, "Creating homework review")

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviews lists deduplicated reviews with student and homework details
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} models.ReviewRecord
// @Router /homework/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	records, err := h.reviewService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListPendingReviews lists reviews that still need grading
// @Summary List pending reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} models.ReviewRecord
// @Router /homework/reviews/pending [get]
func (h *ReviewHandler) ListPendingReviews(c *gin.Context) {
	records, err := h.reviewService.ListPending(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListPendingReviewsByTeacher lists ungraded reviews within a teacher's groups
// @Summary List pending reviews of a teacher
// @Tags reviews
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {array} models.ReviewRecord
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/pending-by-teacher/{id} [get]
func (h *ReviewHandler) ListPendingReviewsByTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	records, err := h.reviewService.ListPendingByTeacher(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetReview retrieves one submission row by ID
// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path uint true "Review ID"
// @Success 200 {object} models.HomeworkReview
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// ListReviewsByStudent lists raw submission rows of one student
// @Summary List reviews of a student
// @Tags reviews
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {array} models.HomeworkReview
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/by-student/{id} [get]
func (h *ReviewHandler) ListReviewsByStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	reviews, err := h.reviewService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListReviewsByTelegram lists deduplicated reviews of a student by handle
// @Summary List reviews by telegram
// @Tags reviews
// @Produce json
// @Param telegram path string true "Telegram handle"
// @Success 200 {array} models.ReviewRecord
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/by-telegram/{telegram} [get]
func (h *ReviewHandler) ListReviewsByTelegram(c *gin.Context) {
	telegram := c.Param("telegram")
	if telegram == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid telegram"})
		return
	}

	records, err := h.reviewService.ListByTelegram(c.Request.Context(), telegram)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// UpdateReview updates a submission, recording the grade when present
// @Summary Update review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path uint true "Review ID"
// @Param review body services.UpdateReviewRequest true "Fields to update"
// @Success 200 {object} models.HomeworkReview
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview deletes a submission and its cloned working copy
// @Summary Delete review
// @Tags reviews
// @Produce json
// @Param id path uint true "Review ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Review deleted"})
}

// DownloadRepository clones the submitted repository for inspection
// @Summary Download review repository
// @Tags reviews
// @Produce json
// @Param id path uint true "Review ID"
// @Success 200 {object} models.HomeworkReview
// @Failure 404 {object} ErrorResponse
// @Router /homework/reviews/{id}/download [post]
func (h *ReviewHandler) DownloadRepository(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Cloning review repository")

	review, err := h.aiReviewService.DownloadRepository(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// CheckAI estimates how much of the cloned submission is AI generated
// @Summary Run AI originality check
// @Tags reviews
// @Produce json
// @Param id path uint true "Review ID"
// @Success 200 {object} services.AICheckResult
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /homework/reviews/{id}/check-ai [post]
func (h *ReviewHandler) CheckAI(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Running AI originality check")

	result, err := h.aiReviewService.CheckAI(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
