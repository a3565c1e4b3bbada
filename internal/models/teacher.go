package models

type Teacher struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FullName  string `json:"full_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Telegram  string `json:"telegram" gorm:"not null;size:100;index" validate:"required,telegram_handle"`
	IsDeleted bool   `json:"is_deleted" gorm:"default:false;index"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// TeacherGroup assigns a teacher to a student group. A teacher may own any
// number of groups; pending-review rows resolve their responsible teacher by
// matching the student's group number against these rows.
type TeacherGroup struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TeacherID   uint   `json:"teacher_id" gorm:"not null;index" validate:"required"`
	GroupNumber string `json:"group_number" gorm:"not null;size:50;index" validate:"required,group_number"`
}

func (TeacherGroup) TableName() string {
	return "teacher_groups"
}

// TeacherStats counts the deduplicated review workload over a teacher's groups.
type TeacherStats struct {
	TeacherID      uint `json:"teacher_id"`
	TotalReviews   int  `json:"total_reviews"`
	PendingReviews int  `json:"pending_reviews"`
}
