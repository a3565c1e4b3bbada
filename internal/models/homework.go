package models

import (
	"gorm.io/datatypes"
)

// Homework is keyed by its sequence number for review matching: reviews carry
// the homework number, not the row id.
type Homework struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Number           int    `json:"number" gorm:"not null;index" validate:"required,min=1"`
	DueDate          string `json:"due_date" gorm:"not null;size:10" validate:"required,datetime=2006-01-02"`
	ShortDescription string `json:"short_description" gorm:"not null;size:500" validate:"required,min=1,max=500"`
	ExampleLink      string `json:"example_link" gorm:"size:500"`
	AssignedDate     string `json:"assigned_date" gorm:"size:10" validate:"omitempty,datetime=2006-01-02"`
	VariantsCount    int    `json:"variants_count" gorm:"not null;default:1" validate:"required,min=1"`
}

func (Homework) TableName() string {
	return "homework"
}

// HomeworkReview is one submission event. Result nil means ungraded; a Result
// of exactly 0 is a recorded grade, not an absence of one. ReviewDate is a
// bookkeeping timestamp set when a result is first saved; Result presence is
// the authoritative "is reviewed" signal.
type HomeworkReview struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	StudentID      uint           `json:"student_id" gorm:"not null;index" validate:"required"`
	Number         int            `json:"number" gorm:"not null;index" validate:"required,min=1"`
	SendDate       *string        `json:"send_date" gorm:"size:10" validate:"omitempty,datetime=2006-01-02"`
	ReviewDate     *string        `json:"review_date" gorm:"size:10" validate:"omitempty,datetime=2006-01-02"`
	URL            string         `json:"url" gorm:"size:500"`
	Result         *int           `json:"result" validate:"omitempty,min=0,max=100"`
	Comments       string         `json:"comments" gorm:"type:text"`
	LocalDirectory *string        `json:"local_directory" gorm:"size:500"`
	AIPercentage   *float64       `json:"ai_percentage" validate:"omitempty,min=0,max=100"`
	AIFileScores   datatypes.JSON `json:"ai_file_scores,omitempty" gorm:"type:jsonb"` // []AIFileResult from the last scan
}

func (HomeworkReview) TableName() string {
	return "homework_reviews"
}

// ReviewRecord is the read shape: the review joined with its student and the
// variant number assigned for that homework, if any.
type ReviewRecord struct {
	ID             uint     `json:"id"`
	Number         int      `json:"number"`
	SendDate       *string  `json:"send_date"`
	ReviewDate     *string  `json:"review_date"`
	URL            string   `json:"url"`
	Result         *int     `json:"result"`
	Comments       string   `json:"comments"`
	LocalDirectory *string  `json:"local_directory"`
	AIPercentage   *float64 `json:"ai_percentage"`
	VariantNumber  *int     `json:"variant_number"`
	Overdue        bool     `json:"overdue"`
	Student        Student  `json:"student"`
}

// StudentHomeworkVariant maps a (student, homework) pair to exactly one
// variant number in [1, homework.VariantsCount]. Updates replace in place.
type StudentHomeworkVariant struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	StudentID     uint `json:"student_id" gorm:"not null;index:idx_variant_pair" validate:"required"`
	HomeworkID    uint `json:"homework_id" gorm:"not null;index:idx_variant_pair" validate:"required"`
	VariantNumber int  `json:"variant_number" gorm:"not null" validate:"required,min=1"`
}

func (StudentHomeworkVariant) TableName() string {
	return "student_homework_variants"
}

// HomeworkStats summarizes submissions for one assignment. Reviewed counts
// only result > 0: a grade of exactly 0 is submitted-but-pending here, even
// though IsReviewed treats it as graded.
type HomeworkStats struct {
	Homework   Homework `json:"homework"`
	Submitted  int      `json:"submitted"`
	Reviewed   int      `json:"reviewed"`
	Pending    int      `json:"pending"`
	Percentage int      `json:"percentage"`
}

// StudentHomeworkStats uses the whole homework catalog as the denominator,
// not the subset assigned to the student.
type StudentHomeworkStats struct {
	Student    Student `json:"student"`
	Submitted  int     `json:"submitted"`
	Reviewed   int     `json:"reviewed"`
	Percentage int     `json:"percentage"`
}
