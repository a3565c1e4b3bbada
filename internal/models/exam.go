package models

type ExamGrade struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentID     uint   `json:"student_id" gorm:"not null;index" validate:"required"`
	Date          string `json:"date" gorm:"not null;size:10" validate:"required,datetime=2006-01-02"`
	Grade         int    `json:"grade" gorm:"not null" validate:"min=0,max=100"`
	VariantNumber int    `json:"variant_number" gorm:"not null" validate:"required,min=1"`
	Document      []byte `json:"-" gorm:"type:bytea"`
}

func (ExamGrade) TableName() string {
	return "exam_grades"
}

// ExamGradeRecord is the read shape; the attached document travels separately.
type ExamGradeRecord struct {
	ID            uint    `json:"id"`
	Date          string  `json:"date"`
	Grade         int     `json:"grade"`
	VariantNumber int     `json:"variant_number"`
	StudentID     uint    `json:"student_id"`
	Student       Student `json:"student"`
	HasDocument   bool    `json:"has_document"`
}
