package controllers

import (
	"fmt"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  course.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public lookup endpoint: given a certificate
// number it returns the student, course, score and issue date. This is a
// plain identifier lookup, not a cryptographic proof.
func VerifyCertificate(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("certificate_number = ?", number).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var student models.User
	var course courseModels.Course
	database.Database.Db.Where("id = ?", cert.UserID).First(&student)
	database.Database.Db.Where("id = ?", cert.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", fiber.Map{
		"certificate_number": cert.CertificateNumber,
		"student_name":       student.Name,
		"course_name":        course.Name,
		"score":              cert.Score,
		"issued_at":          cert.IssuedAt,
	})
}

// DownloadCertificate streams the rendered PDF to the certificate owner or
// an admin.
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	number := c.Params("number")

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("certificate_number = ?", number).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if cert.UserID != userID && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this certificate!", nil)
	}

	var student models.User
	var course courseModels.Course
	database.Database.Db.Where("id = ?", cert.UserID).First(&student)
	database.Database.Db.Where("id = ?", cert.CourseID).First(&course)

	pdfBytes, err := utils.GenerateCertificatePDF(student.Name, course.Name, cert.CertificateNumber, cert.Score, cert.IssuedAt)
	if err != nil {
		log.Printf("Error rendering certificate %s: %v", cert.CertificateNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to render certificate!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", cert.CertificateNumber+".pdf"))
	return c.Send(pdfBytes)
}

// AdminGetIssuedCertificates lists all issued certificates.
func AdminGetIssuedCertificates(c *fiber.Ctx) error {
	type CertificateDetail struct {
		courseModels.Certificate
		StudentName string `json:"student_name"`
		CourseName  string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateDetail, len(certificates))
	for i, cert := range certificates {
		var student models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.UserID).First(&student)
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateDetail{
			Certificate: cert,
			StudentName: student.Name,
			CourseName:  course.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
