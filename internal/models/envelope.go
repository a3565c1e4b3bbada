package models

// ExportEnvelope is the authoritative bulk format: every collection keyed by
// name, soft-deleted rows included so an import restores full history.
type ExportEnvelope struct {
	Students                []Student                `json:"students"`
	Teachers                []Teacher                `json:"teachers"`
	TeacherGroups           []TeacherGroup           `json:"teacher_groups"`
	Lectures                []Lecture                `json:"lectures"`
	Attendance              []Attendance             `json:"attendance"`
	Homework                []Homework               `json:"homework"`
	HomeworkReviews         []HomeworkReview         `json:"homework_reviews"`
	StudentHomeworkVariants []StudentHomeworkVariant `json:"student_homework_variants"`
	ExamGrades              []ExamGrade              `json:"exam_grades"`
}

// ImportSummary reports per-collection counts after a bulk import.
type ImportSummary struct {
	Students                int `json:"students"`
	Teachers                int `json:"teachers"`
	TeacherGroups           int `json:"teacher_groups"`
	Lectures                int `json:"lectures"`
	Attendance              int `json:"attendance"`
	Homework                int `json:"homework"`
	HomeworkReviews         int `json:"homework_reviews"`
	StudentHomeworkVariants int `json:"student_homework_variants"`
	ExamGrades              int `json:"exam_grades"`
	TotalRecords            int `json:"total_records"`
}
