package models

// Student is a course participant. Students are never physically removed:
// deletion sets IsDeleted so historical reviews and attendance keep resolving.
type Student struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Year        int    `json:"year" gorm:"not null" validate:"required,min=1"`
	FullName    string `json:"full_name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Telegram    string `json:"telegram" gorm:"not null;size:100;index" validate:"required,telegram_handle"`
	Github      string `json:"github" gorm:"size:100"`
	GroupNumber string `json:"group_number" gorm:"size:50;index" validate:"omitempty,group_number"`
	ChatID      *int64 `json:"chat_id"`
	IsDeleted   bool   `json:"is_deleted" gorm:"default:false;index"`
}

func (Student) TableName() string {
	return "students"
}

// StudentStats is computed per student for the standings view, never stored.
type StudentStats struct {
	Student            Student  `json:"student"`
	TotalHomeworkScore int      `json:"total_homework_score"`
	AIPercentage       *float64 `json:"ai_percentage"`
	AttendanceCount    int      `json:"attendance_count"`
}
