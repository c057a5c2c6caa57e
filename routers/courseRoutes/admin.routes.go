package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminOnly := []fiber.Handler{middleware.JWTMiddleware, middleware.RequireRole("ADMIN")}

	adminGroup := app.Group("/admin/course", adminOnly...)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:courseId", validators.CourseID(), controllers.AdminGetCourseDetails)
	adminGroup.Put("/:courseId", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:courseId", validators.CourseID(), controllers.AdminDeleteCourse)

	// Content management
	adminGroup.Post("/:courseId/content", validators.CourseID(), validators.CreateContent(), controllers.AdminCreateContent)

	contentGroup := app.Group("/admin/content", adminOnly...)
	contentGroup.Put("/:contentId", validators.ContentID(), validators.UpdateContent(), controllers.AdminUpdateContent)
	contentGroup.Delete("/:contentId", validators.ContentID(), controllers.AdminDeleteContent)

	// Exam management
	adminGroup.Post("/:courseId/exam", validators.CourseID(), validators.CreateExam(), controllers.AdminCreateExam)
	adminGroup.Get("/:courseId/exam", validators.CourseID(), controllers.AdminGetExam)
	adminGroup.Put("/:courseId/exam", validators.CourseID(), validators.UpdateExam(), controllers.AdminUpdateExam)
	adminGroup.Delete("/:courseId/exam", validators.CourseID(), controllers.AdminDeleteExam)

	// Enrollment approval workflow
	enrollGroup := app.Group("/admin/enrollment", adminOnly...)
	enrollGroup.Get("/list", validators.EnrollmentList(), controllers.AdminGetEnrollments)
	enrollGroup.Post("/:enrollmentId/approve", validators.EnrollmentID(), controllers.ApproveEnrollment)
	enrollGroup.Post("/:enrollmentId/reject", validators.EnrollmentID(), controllers.RejectEnrollment)

	// Student progress
	studentGroup := app.Group("/admin/student", adminOnly...)
	studentGroup.Get("/:userId/progress", validators.TargetUserID(), controllers.AdminGetStudentProgress)

	// Certificates
	certGroup := app.Group("/admin/certificates", adminOnly...)
	certGroup.Get("/issued", controllers.AdminGetIssuedCertificates)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", adminOnly...)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
