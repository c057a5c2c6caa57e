package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Catalog
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:courseId", validators.CourseID(), controllers.GetCourseDetails)

	// Reviews
	courseGroup.Get("/:courseId/reviews", validators.CourseID(), controllers.GetCourseReviews)
	courseGroup.Post("/:courseId/review", validators.CourseID(), controllers.SubmitReview)
	courseGroup.Put("/:courseId/review", validators.CourseID(), controllers.UpdateReview)
	courseGroup.Delete("/:courseId/review", validators.CourseID(), controllers.DeleteReview)

	// Enrollment
	courseGroup.Post("/:courseId/enroll", validators.CourseID(), validators.EnrollRequest(), controllers.RequestEnrollment)

	// Content viewing (approved students only, enforced in the controller)
	courseGroup.Get("/:courseId/content", validators.CourseID(), controllers.GetCourseContent)

	// Progress
	courseGroup.Post("/:courseId/content/:contentId/complete", validators.CourseID(), validators.ContentID(), controllers.MarkContentComplete)
	courseGroup.Get("/:courseId/progress", validators.CourseID(), controllers.GetProgress)

	// Exam
	courseGroup.Get("/:courseId/exam", validators.CourseID(), controllers.GetExamForTaking)
	courseGroup.Post("/:courseId/exam/submit", validators.CourseID(), controllers.SubmitExam)

	// User enrollments and certificates
	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Get("/enrollments", controllers.GetUserEnrollments)
	userGroup.Get("/certificates", controllers.GetUserCertificates)

	// Certificate verification is public; download requires ownership
	app.Get("/certificate/verify/:number", controllers.VerifyCertificate)
	app.Get("/certificate/:number/download", middleware.JWTMiddleware, controllers.DownloadCertificate)
}
