package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DVDemon/frieren/internal/models"
)

func intPtr(v int) *int           { return &v }
func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }

func TestIsOverdue(t *testing.T) {
	homework := &models.Homework{Number: 1, DueDate: "2024-03-10"}

	tests := []struct {
		name     string
		sendDate *string
		expected bool
	}{
		{"day after due date", strPtr("2024-03-11"), true},
		{"on due date", strPtr("2024-03-10"), false},
		{"before due date", strPtr("2024-03-09"), false},
		{"missing send date", nil, false},
		{"unparsable send date", strPtr("not-a-date"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := &models.HomeworkReview{Number: 1, SendDate: tt.sendDate}
			assert.Equal(t, tt.expected, IsOverdue(review, homework))
		})
	}

	t.Run("unparsable due date", func(t *testing.T) {
		review := &models.HomeworkReview{Number: 1, SendDate: strPtr("2024-03-11")}
		broken := &models.Homework{Number: 1, DueDate: "soon"}
		assert.False(t, IsOverdue(review, broken))
	})

	t.Run("nil arguments", func(t *testing.T) {
		assert.False(t, IsOverdue(nil, homework))
		assert.False(t, IsOverdue(&models.HomeworkReview{}, nil))
	})
}

func TestIsReviewed(t *testing.T) {
	assert.False(t, IsReviewed(nil))
	assert.False(t, IsReviewed(&models.HomeworkReview{}))
	assert.True(t, IsReviewed(&models.HomeworkReview{Result: intPtr(85)}))

	// A recorded zero is a grade, not an absent one.
	assert.True(t, IsReviewed(&models.HomeworkReview{Result: intPtr(0)}))
}

func TestAIRiskBand(t *testing.T) {
	tests := []struct {
		percentage float64
		expected   string
	}{
		{0, AIRiskLow},
		{29.9, AIRiskLow},
		{30, AIRiskMedium},
		{69.9, AIRiskMedium},
		{70, AIRiskHigh},
		{100, AIRiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AIRiskBand(tt.percentage), "percentage %.1f", tt.percentage)
	}
}

func TestDeduplicateReviews_HigherResultWins(t *testing.T) {
	reviews := []*models.HomeworkReview{
		{ID: 1, StudentID: 7, Number: 2, Result: intPtr(40), SendDate: strPtr("2024-03-05")},
		{ID: 2, StudentID: 7, Number: 2, Result: intPtr(90), SendDate: strPtr("2024-03-01")},
	}

	deduped := DeduplicateReviews(reviews)

	assert.Len(t, deduped, 1)
	assert.Equal(t, uint(2), deduped[0].ID)
}

func TestDeduplicateReviews_GradedOutranksUngraded(t *testing.T) {
	// Result 0 must beat a nil result, and a later ungraded resubmission
	// must not displace an earlier graded one.
	reviews := []*models.HomeworkReview{
		{ID: 1, StudentID: 7, Number: 2, Result: intPtr(0), SendDate: strPtr("2024-03-01")},
		{ID: 2, StudentID: 7, Number: 2, Result: nil, SendDate: strPtr("2024-03-09")},
	}

	deduped := DeduplicateReviews(reviews)

	assert.Len(t, deduped, 1)
	assert.Equal(t, uint(1), deduped[0].ID)
}

func TestDeduplicateReviews_TieBrokenBySendDateThenID(t *testing.T) {
	t.Run("later send date wins on equal result", func(t *testing.T) {
		reviews := []*models.HomeworkReview{
			{ID: 1, StudentID: 3, Number: 1, Result: intPtr(50), SendDate: strPtr("2024-03-01")},
			{ID: 2, StudentID: 3, Number: 1, Result: intPtr(50), SendDate: strPtr("2024-03-04")},
		}
		deduped := DeduplicateReviews(reviews)
		assert.Len(t, deduped, 1)
		assert.Equal(t, uint(2), deduped[0].ID)
	})

	t.Run("higher id wins on equal result and date", func(t *testing.T) {
		reviews := []*models.HomeworkReview{
			{ID: 9, StudentID: 3, Number: 1, Result: intPtr(50), SendDate: strPtr("2024-03-01")},
			{ID: 4, StudentID: 3, Number: 1, Result: intPtr(50), SendDate: strPtr("2024-03-01")},
		}
		deduped := DeduplicateReviews(reviews)
		assert.Len(t, deduped, 1)
		assert.Equal(t, uint(9), deduped[0].ID)
	})
}

func TestDeduplicateReviews_DistinctPairsKept(t *testing.T) {
	reviews := []*models.HomeworkReview{
		{ID: 1, StudentID: 2, Number: 1},
		{ID: 2, StudentID: 1, Number: 2},
		{ID: 3, StudentID: 1, Number: 1},
		nil,
	}

	deduped := DeduplicateReviews(reviews)

	assert.Len(t, deduped, 3)
	// Output is ordered by student then homework number.
	assert.Equal(t, uint(3), deduped[0].ID)
	assert.Equal(t, uint(2), deduped[1].ID)
	assert.Equal(t, uint(1), deduped[2].ID)
}

func TestRoundPercentage(t *testing.T) {
	assert.Equal(t, 0, roundPercentage(3, 0))
	assert.Equal(t, 60, roundPercentage(3, 5))
	assert.Equal(t, 67, roundPercentage(2, 3))
	assert.Equal(t, 100, roundPercentage(4, 4))
}
