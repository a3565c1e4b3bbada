package models

// Lecture dates are ISO calendar dates (YYYY-MM-DD); StartTime is HH:MM.
// MaxStudent nil means unlimited capacity.
type Lecture struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	Number        int     `json:"number" gorm:"not null;index" validate:"required,min=1"`
	Topic         string  `json:"topic" gorm:"not null;size:300" validate:"required,min=1,max=300"`
	Date          string  `json:"date" gorm:"not null;size:10" validate:"required,datetime=2006-01-02"`
	StartTime     *string `json:"start_time" gorm:"size:5" validate:"omitempty,datetime=15:04"`
	SecretCode    *string `json:"secret_code" gorm:"size:100;index"`
	MaxStudent    *int    `json:"max_student" validate:"omitempty,min=1"`
	GithubExample *string `json:"github_example" gorm:"size:500"`
}

func (Lecture) TableName() string {
	return "lectures"
}

type Attendance struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;index:idx_attendance_pair" validate:"required"`
	LectureID uint `json:"lecture_id" gorm:"not null;index:idx_attendance_pair" validate:"required"`
	Present   bool `json:"present"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// AttendanceRecord is the read shape with the student and lecture joined in.
type AttendanceRecord struct {
	ID      uint    `json:"id"`
	Student Student `json:"student"`
	Lecture Lecture `json:"lecture"`
	Present bool    `json:"present"`
}

// LectureCapacity is derived from MaxStudent and the current present-count on
// every read; there is no stored fill state to invalidate.
type LectureCapacity struct {
	LectureID         uint    `json:"lecture_id"`
	LectureNumber     int     `json:"lecture_number"`
	LectureTopic      string  `json:"lecture_topic"`
	MaxStudent        *int    `json:"max_student"`
	CurrentAttendance int     `json:"current_attendance"`
	IsFull            bool    `json:"is_full"`
	CanAttend         bool    `json:"can_attend"`
	RemainingSlots    *int    `json:"remaining_slots"`
	GithubExample     *string `json:"github_example"`
	StartTime         *string `json:"start_time"`
}
