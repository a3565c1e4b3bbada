package services

import (
	"math"
	"sort"
	"time"

	"github.com/DVDemon/frieren/internal/models"
)

const dateLayout = "2006-01-02"

// AI-likelihood band thresholds.
const (
	AIRiskLowThreshold  = 30.0
	AIRiskHighThreshold = 70.0
)

const (
	AIRiskLow    = "low"
	AIRiskMedium = "medium"
	AIRiskHigh   = "high"
)

// IsOverdue compares the submission date against the homework due date on
// calendar days. A submission is overdue iff its day is strictly later than
// the due day. A missing or unparsable date on either side is never overdue.
func IsOverdue(review *models.HomeworkReview, homework *models.Homework) bool {
	if review == nil || homework == nil || review.SendDate == nil {
		return false
	}
	sent, err := time.Parse(dateLayout, *review.SendDate)
	if err != nil {
		return false
	}
	due, err := time.Parse(dateLayout, homework.DueDate)
	if err != nil {
		return false
	}
	return sent.After(due)
}

// IsReviewed reports whether a grade has been recorded. A result of exactly 0
// is a valid score and counts as reviewed; only a nil result means ungraded.
func IsReviewed(review *models.HomeworkReview) bool {
	return review != nil && review.Result != nil
}

// AIRiskBand classifies an AI-generation-likelihood percentage into one of
// three fixed bands: below 30 is low, below 70 is medium, everything else high.
func AIRiskBand(percentage float64) string {
	switch {
	case percentage < AIRiskLowThreshold:
		return AIRiskLow
	case percentage < AIRiskHighThreshold:
		return AIRiskMedium
	default:
		return AIRiskHigh
	}
}

// DeduplicateReviews collapses a review collection to one row per
// (student, homework number). When a pair has several submissions the row
// with the higher result wins; on equal results the later send date wins,
// and as a final tiebreak the higher id. Input order does not matter and the
// input slice is not modified.
func DeduplicateReviews(reviews []*models.HomeworkReview) []*models.HomeworkReview {
	type pairKey struct {
		studentID uint
		number    int
	}

	best := make(map[pairKey]*models.HomeworkReview, len(reviews))
	for _, review := range reviews {
		if review == nil {
			continue
		}
		key := pairKey{studentID: review.StudentID, number: review.Number}
		current, ok := best[key]
		if !ok || reviewOutranks(review, current) {
			best[key] = review
		}
	}

	result := make([]*models.HomeworkReview, 0, len(best))
	for _, review := range best {
		result = append(result, review)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentID != result[j].StudentID {
			return result[i].StudentID < result[j].StudentID
		}
		return result[i].Number < result[j].Number
	})
	return result
}

// reviewOutranks reports whether candidate should replace current in the
// deduplicated view.
func reviewOutranks(candidate, current *models.HomeworkReview) bool {
	candidateResult := resultRank(candidate)
	currentResult := resultRank(current)
	if candidateResult != currentResult {
		return candidateResult > currentResult
	}

	candidateSent := sendDateRank(candidate)
	currentSent := sendDateRank(current)
	if !candidateSent.Equal(currentSent) {
		return candidateSent.After(currentSent)
	}

	return candidate.ID > current.ID
}

// resultRank orders results with ungraded below every recorded grade,
// including a recorded 0.
func resultRank(review *models.HomeworkReview) int {
	if review.Result == nil {
		return -1
	}
	return *review.Result
}

func sendDateRank(review *models.HomeworkReview) time.Time {
	if review.SendDate == nil {
		return time.Time{}
	}
	sent, err := time.Parse(dateLayout, *review.SendDate)
	if err != nil {
		return time.Time{}
	}
	return sent
}

// roundPercentage converts a ratio of counts into a rounded whole percentage,
// defined as 0 when the denominator is 0.
func roundPercentage(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// todayISO returns the current date in the stored calendar-day format.
func todayISO() string {
	return time.Now().Format(dateLayout)
}
