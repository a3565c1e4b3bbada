package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
)

type HandlerManager struct {
	studentHandler    *StudentHandler
	teacherHandler    *TeacherHandler
	lectureHandler    *LectureHandler
	attendanceHandler *AttendanceHandler
	homeworkHandler   *HomeworkHandler
	reviewHandler     *ReviewHandler
	variantHandler    *VariantHandler
	examGradeHandler  *ExamGradeHandler
	transferHandler   *TransferHandler
}

func NewHandlerManager(manager *services.Manager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		studentHandler:    NewStudentHandler(manager.Students, manager.Stats, logger),
		teacherHandler:    NewTeacherHandler(manager.Teachers, manager.Stats, logger),
		lectureHandler:    NewLectureHandler(manager.Lectures, logger),
		attendanceHandler: NewAttendanceHandler(manager.Attendance, logger),
		homeworkHandler:   NewHomeworkHandler(manager.Homework, manager.Stats, logger),
		reviewHandler:     NewReviewHandler(manager.Reviews, manager.AIReview, logger),
		variantHandler:    NewVariantHandler(manager.Variants, logger),
		examGradeHandler:  NewExamGradeHandler(manager.ExamGrades, logger),
		transferHandler:   NewTransferHandler(manager.Transfer, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	{
		// Student routes
		students := api.Group("/students")
		{
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/stats", hm.studentHandler.GetStudentStandings)
			students.GET("/homework-stats", hm.studentHandler.GetStudentHomeworkStats)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.PUT("/:id", hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
			students.GET("/by-telegram/:telegram", hm.studentHandler.GetStudentByTelegram)
			students.PUT("/by-telegram/:telegram/chat-id", hm.studentHandler.UpdateStudentChatID)
		}

		// Teacher routes
		teachers := api.Group("/teachers")
		{
			teachers.POST("", hm.teacherHandler.CreateTeacher)
			teachers.GET("", hm.teacherHandler.ListTeachers)
			teachers.GET("/:id", hm.teacherHandler.GetTeacher)
			teachers.PUT("/:id", hm.teacherHandler.UpdateTeacher)
			teachers.DELETE("/:id", hm.teacherHandler.DeleteTeacher)
			teachers.GET("/:id/stats", hm.teacherHandler.GetTeacherStats)
			teachers.GET("/:id/groups", hm.teacherHandler.ListGroupsByTeacher)
			teachers.GET("/by-telegram/:telegram", hm.teacherHandler.GetTeacherByTelegram)
			teachers.GET("/by-group/:group", hm.teacherHandler.ListTeachersByGroup)
		}

		// Teacher group assignment routes
		teacherGroups := api.Group("/teacher-groups")
		{
			teacherGroups.POST("", hm.teacherHandler.CreateTeacherGroup)
			teacherGroups.GET("", hm.teacherHandler.ListTeacherGroups)
			teacherGroups.PUT("/:id", hm.teacherHandler.UpdateTeacherGroup)
			teacherGroups.DELETE("/:id", hm.teacherHandler.DeleteTeacherGroup)
		}

		// Lecture routes
		lectures := api.Group("/lectures")
		{
			lectures.POST("", hm.lectureHandler.CreateLecture)
			lectures.GET("", hm.lectureHandler.ListLectures)
			lectures.GET("/:id", hm.lectureHandler.GetLecture)
			lectures.PUT("/:id", hm.lectureHandler.UpdateLecture)
			lectures.DELETE("/:id", hm.lectureHandler.DeleteLecture)
			lectures.GET("/by-secret-code/:code", hm.lectureHandler.GetLectureBySecretCode)
			lectures.GET("/capacity/:number", hm.lectureHandler.GetLectureCapacity)
			lectures.PUT("/capacity/:number", hm.lectureHandler.UpdateLectureCapacity)
		}

		// Attendance routes
		attendance := api.Group("/attendance")
		{
			attendance.GET("", hm.attendanceHandler.ListAttendance)
			attendance.POST("", hm.attendanceHandler.MarkAttendance)
			attendance.PUT("/:id", hm.attendanceHandler.UpdateAttendance)
		}

		// Homework and review routes
		homework := api.Group("/homework")
		{
			homework.POST("", hm.homeworkHandler.CreateHomework)
			homework.GET("", hm.homeworkHandler.ListHomework)
			homework.GET("/stats", hm.homeworkHandler.GetHomeworkStats)
			homework.GET("/:id", hm.homeworkHandler.GetHomework)
			homework.PUT("/:id", hm.homeworkHandler.UpdateHomework)
			homework.GET("/by-number/:number", hm.homeworkHandler.GetHomeworkByNumber)

			reviews := homework.Group("/reviews")
			{
				reviews.POST("", hm.reviewHandler.CreateReview)
				reviews.GET("", hm.reviewHandler.ListReviews)
				reviews.GET("/pending", hm.reviewHandler.ListPendingReviews)
				reviews.GET("/pending-by-teacher/:id", hm.reviewHandler.ListPendingReviewsByTeacher)
				reviews.GET("/:id", hm.reviewHandler.GetReview)
				reviews.PUT("/:id", hm.reviewHandler.UpdateReview)
				reviews.DELETE("/:id", hm.reviewHandler.DeleteReview)
				reviews.GET("/by-student/:id", hm.reviewHandler.ListReviewsByStudent)
				reviews.GET("/by-telegram/:telegram", hm.reviewHandler.ListReviewsByTelegram)
				reviews.POST("/:id/download", hm.reviewHandler.DownloadRepository)
				reviews.POST("/:id/check-ai", hm.reviewHandler.CheckAI)
			}
		}

		// Variant assignment routes
		variants := api.Group("/variants")
		{
			variants.POST("", hm.variantHandler.CreateVariant)
			variants.GET("", hm.variantHandler.ListVariants)
			variants.GET("/:id", hm.variantHandler.GetVariant)
			variants.PUT("/:id", hm.variantHandler.UpdateVariant)
			variants.DELETE("/:id", hm.variantHandler.DeleteVariant)
			variants.GET("/by-pair/:student_id/:homework_id", hm.variantHandler.GetVariantByPair)
			variants.GET("/by-student/:id", hm.variantHandler.ListVariantsByStudent)
			variants.GET("/by-homework/:id", hm.variantHandler.ListVariantsByHomework)
			variants.POST("/bulk", hm.variantHandler.GenerateVariants)
			variants.PUT("/bulk/:student_id", hm.variantHandler.BulkUpdateVariants)
		}

		// Exam grade routes
		examGrades := api.Group("/exam-grades")
		{
			examGrades.POST("", hm.examGradeHandler.CreateExamGrade)
			examGrades.GET("", hm.examGradeHandler.ListExamGrades)
			examGrades.GET("/:id", hm.examGradeHandler.GetExamGrade)
			examGrades.PUT("/:id", hm.examGradeHandler.UpdateExamGrade)
			examGrades.DELETE("/:id", hm.examGradeHandler.DeleteExamGrade)
			examGrades.GET("/by-student/:id", hm.examGradeHandler.ListExamGradesByStudent)
			examGrades.PUT("/:id/document", hm.examGradeHandler.UploadDocument)
			examGrades.GET("/:id/document", hm.examGradeHandler.GetDocument)
		}

		// Data transfer routes
		api.GET("/export/all", hm.transferHandler.ExportAll)
		api.GET("/export/xlsx", hm.transferHandler.ExportXLSX)
		api.POST("/import/all", hm.transferHandler.ImportAll)
	}
}
