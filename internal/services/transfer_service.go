package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories"
)

// TransferService moves the whole dataset in and out of the service. The JSON
// envelope is the authoritative bulk format; import replaces everything in
// one transaction, remapping row ids so cross-references survive.
type TransferService interface {
	ExportAll(ctx context.Context) (*models.ExportEnvelope, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
	ImportAll(ctx context.Context, envelope *models.ExportEnvelope) (*models.ImportSummary, error)
}

type transferService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewTransferService(repo repositories.Repository, logger *slog.Logger) TransferService {
	return &transferService{
		repo:   repo,
		logger: logger,
	}
}

// ===== EXPORT =====

// ExportAll includes soft-deleted students and teachers so a later import
// restores full history.
func (s *transferService) ExportAll(ctx context.Context) (*models.ExportEnvelope, error) {
	envelope := &models.ExportEnvelope{}

	students, err := s.repo.Student().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export students: %w", err)
	}
	for _, st := range students {
		envelope.Students = append(envelope.Students, *st)
	}

	teachers, err := s.repo.Teacher().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export teachers: %w", err)
	}
	for _, t := range teachers {
		envelope.Teachers = append(envelope.Teachers, *t)
	}

	groups, err := s.repo.Teacher().ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export teacher groups: %w", err)
	}
	for _, g := range groups {
		envelope.TeacherGroups = append(envelope.TeacherGroups, *g)
	}

	lectures, err := s.repo.Lecture().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export lectures: %w", err)
	}
	for _, l := range lectures {
		envelope.Lectures = append(envelope.Lectures, *l)
	}

	attendance, err := s.repo.Attendance().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export attendance: %w", err)
	}
	for _, a := range attendance {
		envelope.Attendance = append(envelope.Attendance, *a)
	}

	homeworkList, err := s.repo.Homework().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export homework: %w", err)
	}
	for _, hw := range homeworkList {
		envelope.Homework = append(envelope.Homework, *hw)
	}

	reviews, err := s.repo.Review().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export reviews: %w", err)
	}
	for _, r := range reviews {
		envelope.HomeworkReviews = append(envelope.HomeworkReviews, *r)
	}

	variants, err := s.repo.Variant().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export variants: %w", err)
	}
	for _, v := range variants {
		envelope.StudentHomeworkVariants = append(envelope.StudentHomeworkVariants, *v)
	}

	grades, err := s.repo.ExamGrade().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export exam grades: %w", err)
	}
	for _, g := range grades {
		envelope.ExamGrades = append(envelope.ExamGrades, *g)
	}

	return envelope, nil
}

// ExportXLSX renders the envelope as a workbook with one sheet per collection.
func (s *transferService) ExportXLSX(ctx context.Context) ([]byte, error) {
	envelope, err := s.ExportAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	writeSheet := func(name string, headers []string, rows [][]interface{}) error {
		index, err := f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		f.SetActiveSheet(index)

		for i, header := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			f.SetCellValue(name, cell, header)
		}
		for rowIndex, row := range rows {
			for colIndex, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
				if err != nil {
					return err
				}
				f.SetCellValue(name, cell, value)
			}
		}
		return nil
	}

	studentRows := make([][]interface{}, 0, len(envelope.Students))
	for _, st := range envelope.Students {
		studentRows = append(studentRows, []interface{}{
			st.ID, st.Year, st.FullName, st.Telegram, st.Github, st.GroupNumber, st.IsDeleted,
		})
	}
	if err := writeSheet("Students",
		[]string{"ID", "Year", "Full Name", "Telegram", "Github", "Group", "Deleted"},
		studentRows); err != nil {
		return nil, err
	}

	teacherRows := make([][]interface{}, 0, len(envelope.Teachers))
	for _, t := range envelope.Teachers {
		teacherRows = append(teacherRows, []interface{}{t.ID, t.FullName, t.Telegram, t.IsDeleted})
	}
	if err := writeSheet("Teachers",
		[]string{"ID", "Full Name", "Telegram", "Deleted"}, teacherRows); err != nil {
		return nil, err
	}

	groupRows := make([][]interface{}, 0, len(envelope.TeacherGroups))
	for _, g := range envelope.TeacherGroups {
		groupRows = append(groupRows, []interface{}{g.ID, g.TeacherID, g.GroupNumber})
	}
	if err := writeSheet("Teacher Groups",
		[]string{"ID", "Teacher ID", "Group"}, groupRows); err != nil {
		return nil, err
	}

	lectureRows := make([][]interface{}, 0, len(envelope.Lectures))
	for _, l := range envelope.Lectures {
		lectureRows = append(lectureRows, []interface{}{
			l.ID, l.Number, l.Topic, l.Date, derefString(l.StartTime), derefInt(l.MaxStudent),
		})
	}
	if err := writeSheet("Lectures",
		[]string{"ID", "Number", "Topic", "Date", "Start Time", "Max Students"},
		lectureRows); err != nil {
		return nil, err
	}

	attendanceRows := make([][]interface{}, 0, len(envelope.Attendance))
	for _, a := range envelope.Attendance {
		attendanceRows = append(attendanceRows, []interface{}{a.ID, a.StudentID, a.LectureID, a.Present})
	}
	if err := writeSheet("Attendance",
		[]string{"ID", "Student ID", "Lecture ID", "Present"}, attendanceRows); err != nil {
		return nil, err
	}

	homeworkRows := make([][]interface{}, 0, len(envelope.Homework))
	for _, hw := range envelope.Homework {
		homeworkRows = append(homeworkRows, []interface{}{
			hw.ID, hw.Number, hw.ShortDescription, hw.AssignedDate, hw.DueDate, hw.VariantsCount,
		})
	}
	if err := writeSheet("Homework",
		[]string{"ID", "Number", "Description", "Assigned", "Due", "Variants"},
		homeworkRows); err != nil {
		return nil, err
	}

	reviewRows := make([][]interface{}, 0, len(envelope.HomeworkReviews))
	for _, r := range envelope.HomeworkReviews {
		result := ""
		if r.Result != nil {
			result = strconv.Itoa(*r.Result)
		}
		ai := ""
		if r.AIPercentage != nil {
			ai = strconv.FormatFloat(*r.AIPercentage, 'f', 1, 64)
		}
		reviewRows = append(reviewRows, []interface{}{
			r.ID, r.StudentID, r.Number, derefString(r.SendDate), derefString(r.ReviewDate),
			r.URL, result, ai, r.Comments,
		})
	}
	if err := writeSheet("Homework Reviews",
		[]string{"ID", "Student ID", "Number", "Sent", "Reviewed", "URL", "Result", "AI %", "Comments"},
		reviewRows); err != nil {
		return nil, err
	}

	variantRows := make([][]interface{}, 0, len(envelope.StudentHomeworkVariants))
	for _, v := range envelope.StudentHomeworkVariants {
		variantRows = append(variantRows, []interface{}{v.ID, v.StudentID, v.HomeworkID, v.VariantNumber})
	}
	if err := writeSheet("Variants",
		[]string{"ID", "Student ID", "Homework ID", "Variant"}, variantRows); err != nil {
		return nil, err
	}

	gradeRows := make([][]interface{}, 0, len(envelope.ExamGrades))
	for _, g := range envelope.ExamGrades {
		gradeRows = append(gradeRows, []interface{}{g.ID, g.StudentID, g.Date, g.Grade, g.VariantNumber})
	}
	if err := writeSheet("Exam Grades",
		[]string{"ID", "Student ID", "Date", "Grade", "Variant"}, gradeRows); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("Failed to drop default sheet", "error", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== IMPORT =====

// ImportAll clears every table and loads the envelope, all inside one
// transaction. Old ids are remapped to the freshly assigned ones; rows whose
// references do not resolve are skipped and logged rather than failing the
// whole import.
func (s *transferService) ImportAll(ctx context.Context, envelope *models.ExportEnvelope) (*models.ImportSummary, error) {
	if envelope == nil {
		return nil, NewValidationError("envelope", "is required", nil)
	}

	summary := &models.ImportSummary{}

	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		if err := tx.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}

		studentIDs := make(map[uint]uint, len(envelope.Students))
		for _, src := range envelope.Students {
			student := src
			oldID := student.ID
			student.ID = 0
			if err := tx.Student().Create(ctx, &student); err != nil {
				return fmt.Errorf("failed to import student %d: %w", oldID, err)
			}
			studentIDs[oldID] = student.ID
			summary.Students++
		}

		teacherIDs := make(map[uint]uint, len(envelope.Teachers))
		for _, src := range envelope.Teachers {
			teacher := src
			oldID := teacher.ID
			teacher.ID = 0
			if err := tx.Teacher().Create(ctx, &teacher); err != nil {
				return fmt.Errorf("failed to import teacher %d: %w", oldID, err)
			}
			teacherIDs[oldID] = teacher.ID
			summary.Teachers++
		}

		for _, src := range envelope.TeacherGroups {
			group := src
			newTeacherID, ok := teacherIDs[group.TeacherID]
			if !ok {
				s.logger.Warn("Skipping teacher group with unknown teacher",
					"group_id", group.ID, "teacher_id", group.TeacherID)
				continue
			}
			group.ID = 0
			group.TeacherID = newTeacherID
			if err := tx.Teacher().CreateGroup(ctx, &group); err != nil {
				return fmt.Errorf("failed to import teacher group: %w", err)
			}
			summary.TeacherGroups++
		}

		lectureIDs := make(map[uint]uint, len(envelope.Lectures))
		for _, src := range envelope.Lectures {
			lecture := src
			oldID := lecture.ID
			lecture.ID = 0
			if err := tx.Lecture().Create(ctx, &lecture); err != nil {
				return fmt.Errorf("failed to import lecture %d: %w", oldID, err)
			}
			lectureIDs[oldID] = lecture.ID
			summary.Lectures++
		}

		for _, src := range envelope.Attendance {
			attendance := src
			newStudentID, okStudent := studentIDs[attendance.StudentID]
			newLectureID, okLecture := lectureIDs[attendance.LectureID]
			if !okStudent || !okLecture {
				s.logger.Warn("Skipping attendance with unknown reference",
					"student_id", attendance.StudentID, "lecture_id", attendance.LectureID)
				continue
			}
			attendance.ID = 0
			attendance.StudentID = newStudentID
			attendance.LectureID = newLectureID
			if err := tx.Attendance().Create(ctx, &attendance); err != nil {
				return fmt.Errorf("failed to import attendance: %w", err)
			}
			summary.Attendance++
		}

		homeworkIDs := make(map[uint]uint, len(envelope.Homework))
		for _, src := range envelope.Homework {
			homework := src
			oldID := homework.ID
			homework.ID = 0
			if err := tx.Homework().Create(ctx, &homework); err != nil {
				return fmt.Errorf("failed to import homework %d: %w", oldID, err)
			}
			homeworkIDs[oldID] = homework.ID
			summary.Homework++
		}

		for _, src := range envelope.HomeworkReviews {
			review := src
			newStudentID, ok := studentIDs[review.StudentID]
			if !ok {
				s.logger.Warn("Skipping review with unknown student",
					"review_id", review.ID, "student_id", review.StudentID)
				continue
			}
			review.ID = 0
			review.StudentID = newStudentID
			if err := tx.Review().Create(ctx, &review); err != nil {
				return fmt.Errorf("failed to import review: %w", err)
			}
			summary.HomeworkReviews++
		}

		for _, src := range envelope.StudentHomeworkVariants {
			variant := src
			newStudentID, okStudent := studentIDs[variant.StudentID]
			newHomeworkID, okHomework := homeworkIDs[variant.HomeworkID]
			if !okStudent || !okHomework {
				s.logger.Warn("Skipping variant with unknown reference",
					"student_id", variant.StudentID, "homework_id", variant.HomeworkID)
				continue
			}
			variant.ID = 0
			variant.StudentID = newStudentID
			variant.HomeworkID = newHomeworkID
			if err := tx.Variant().Create(ctx, &variant); err != nil {
				return fmt.Errorf("failed to import variant: %w", err)
			}
			summary.StudentHomeworkVariants++
		}

		for _, src := range envelope.ExamGrades {
			grade := src
			newStudentID, ok := studentIDs[grade.StudentID]
			if !ok {
				s.logger.Warn("Skipping exam grade with unknown student",
					"grade_id", grade.ID, "student_id", grade.StudentID)
				continue
			}
			grade.ID = 0
			grade.StudentID = newStudentID
			if err := tx.ExamGrade().Create(ctx, &grade); err != nil {
				return fmt.Errorf("failed to import exam grade: %w", err)
			}
			summary.ExamGrades++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.TotalRecords = summary.Students + summary.Teachers + summary.TeacherGroups +
		summary.Lectures + summary.Attendance + summary.Homework +
		summary.HomeworkReviews + summary.StudentHomeworkVariants + summary.ExamGrades

	s.logger.Info("Imported dataset", "total_records", summary.TotalRecords)
	return summary, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}
