package events

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/realtime"
	"lms/utils"
)

// Notifier is the default sink: it persists a Notification row for each
// recipient, pushes it over the websocket hub and sends the matching email.
type Notifier struct{}

func NewNotifier() *Notifier { return &Notifier{} }

func (n *Notifier) Handle(e Event) {
	switch ev := e.(type) {
	case EnrollmentRequested:
		n.enrollmentRequested(ev)
	case EnrollmentApproved:
		n.enrollmentApproved(ev)
	case EnrollmentRejected:
		n.enrollmentRejected(ev)
	case ExamPassed:
		n.examPassed(ev)
	}
}

// notify persists the notification and pushes it to the recipient's sockets.
func (n *Notifier) notify(userID uint, title, message, category, link string) {
	notification := models.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
		Link:     link,
	}

	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Failed to persist notification for user %d: %v", userID, err)
		return
	}

	realtime.Push(userID, notification)
}

func (n *Notifier) enrollmentRequested(ev EnrollmentRequested) {
	var admins []models.User
	if err := database.Database.Db.Where("role = ? AND is_deleted = ? AND is_active = ?", "ADMIN", false, true).Find(&admins).Error; err != nil {
		log.Printf("Failed to load admins for enrollment notification: %v", err)
		return
	}

	message := fmt.Sprintf("%s requested enrollment in %s.", ev.Student.Name, ev.Course.Name)
	for _, admin := range admins {
		n.notify(admin.ID, "New enrollment request", message, "ENROLLMENT", fmt.Sprintf("/admin/enrollments/%d", ev.Enrollment.ID))
		utils.SendEnrollmentRequestedEmail(admin.Email, admin.Name, ev.Student.Name, ev.Course.Name)
	}
}

func (n *Notifier) enrollmentApproved(ev EnrollmentApproved) {
	message := fmt.Sprintf("Your enrollment in %s has been approved. Happy learning!", ev.Course.Name)
	n.notify(ev.Student.ID, "Enrollment approved", message, "ENROLLMENT", fmt.Sprintf("/course/%d", ev.Course.ID))
	utils.SendEnrollmentApprovedEmail(ev.Student.Email, ev.Student.Name, ev.Course.Name)
}

func (n *Notifier) enrollmentRejected(ev EnrollmentRejected) {
	message := fmt.Sprintf("Your enrollment request for %s was not approved.", ev.Course.Name)
	n.notify(ev.Student.ID, "Enrollment rejected", message, "ENROLLMENT", fmt.Sprintf("/course/%d", ev.Course.ID))
	utils.SendEnrollmentRejectedEmail(ev.Student.Email, ev.Student.Name, ev.Course.Name)
}

func (n *Notifier) examPassed(ev ExamPassed) {
	message := fmt.Sprintf("You passed the exam for %s with %.0f%%. Certificate %s has been issued.",
		ev.Course.Name, ev.Certificate.Score, ev.Certificate.CertificateNumber)
	n.notify(ev.Student.ID, "Certificate issued", message, "CERTIFICATE", fmt.Sprintf("/certificate/%s", ev.Certificate.CertificateNumber))
	utils.SendCertificateEmail(ev.Student.Email, ev.Student.Name, ev.Course.Name, ev.Certificate.CertificateNumber)

	// Record that the certificate notification went out.
	now := time.Now()
	database.Database.Db.Model(&courseModels.Progress{}).
		Where("user_id = ? AND course_id = ?", ev.Student.ID, ev.Course.ID).
		Updates(map[string]interface{}{"certificate_sent": true, "certificate_sent_at": now})
}
