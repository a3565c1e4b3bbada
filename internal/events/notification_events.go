package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of notification events
type EventType string

const (
	// Review events
	EventReviewSubmitted EventType = "review.submitted"
	EventReviewGraded    EventType = "review.graded"

	// Digest events
	EventPendingReviewDigest EventType = "review.pending_digest"

	// Lecture events
	EventLectureFull EventType = "lecture.capacity_reached"
)

// NotificationEvent is the base event structure for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Review notification event payloads

type ReviewSubmittedEvent struct {
	ReviewID       uint   `json:"review_id"`
	StudentID      uint   `json:"student_id"`
	HomeworkNumber int    `json:"homework_number"`
	URL            string `json:"url"`
	SendDate       string `json:"send_date,omitempty"`
}

type ReviewGradedEvent struct {
	ReviewID       uint   `json:"review_id"`
	StudentID      uint   `json:"student_id"`
	StudentChatID  *int64 `json:"student_chat_id,omitempty"`
	HomeworkNumber int    `json:"homework_number"`
	Result         int    `json:"result"`
	Comments       string `json:"comments,omitempty"`
	ReviewDate     string `json:"review_date"`
}

// Digest notification event payload

type PendingReviewDigestEvent struct {
	TeacherID    uint     `json:"teacher_id"`
	GroupNumbers []string `json:"group_numbers"`
	PendingCount int      `json:"pending_count"`
	GeneratedAt  string   `json:"generated_at"`
}

// Lecture notification event payload

type LectureFullEvent struct {
	LectureID     uint `json:"lecture_id"`
	LectureNumber int  `json:"lecture_number"`
	MaxStudent    int  `json:"max_student"`
}

// Event factory functions

func NewReviewSubmittedEvent(reviewID, studentID uint, homeworkNumber int, url, sendDate string) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      EventReviewSubmitted,
		Timestamp: time.Now(),
		Source:    "frieren",
		Version:   "1.0",
		Data: ReviewSubmittedEvent{
			ReviewID:       reviewID,
			StudentID:      studentID,
			HomeworkNumber: homeworkNumber,
			URL:            url,
			SendDate:       sendDate,
		},
	}
}

func NewReviewGradedEvent(reviewID, studentID uint, chatID *int64, homeworkNumber, result int, comments, reviewDate string) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      EventReviewGraded,
		Timestamp: time.Now(),
		Source:    "frieren",
		Version:   "1.0",
		Data: ReviewGradedEvent{
			ReviewID:       reviewID,
			StudentID:      studentID,
			StudentChatID:  chatID,
			HomeworkNumber: homeworkNumber,
			Result:         result,
			Comments:       comments,
			ReviewDate:     reviewDate,
		},
	}
}

func NewPendingReviewDigestEvent(teacherID uint, groups []string, pendingCount int, generatedAt string) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      EventPendingReviewDigest,
		Timestamp: time.Now(),
		Source:    "frieren",
		Version:   "1.0",
		Data: PendingReviewDigestEvent{
			TeacherID:    teacherID,
			GroupNumbers: groups,
			PendingCount: pendingCount,
			GeneratedAt:  generatedAt,
		},
	}
}

func NewLectureFullEvent(lectureID uint, lectureNumber, maxStudent int) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      EventLectureFull,
		Timestamp: time.Now(),
		Source:    "frieren",
		Version:   "1.0",
		Data: LectureFullEvent{
			LectureID:     lectureID,
			LectureNumber: lectureNumber,
			MaxStudent:    maxStudent,
		},
	}
}

// GenerateEventID returns a unique identifier for an outgoing event.
func GenerateEventID() string {
	return watermill.NewUUID()
}
