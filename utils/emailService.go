package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through Sendgrid. It is a no-op when no
// API key is configured (local development, tests).
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Email disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid error: %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3949AB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because you have an account on our learning platform.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a freshly signed-up user.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to the platform"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account has been created successfully. Browse the course catalog and request enrollment in any course to start learning.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendEnrollmentRequestedEmail tells an admin a new request is waiting.
func SendEnrollmentRequestedEmail(email, adminName, studentName, courseName string) {
	subject := "New enrollment request: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p><strong>%s</strong> has requested enrollment in <strong>%s</strong>.</p>
		<div class="info-box">Review the payment proof and approve or reject the request from the admin panel.</div>
	`, adminName, studentName, courseName)

	go SendEmail(email, adminName, subject, getEmailTemplate("Enrollment Request Pending", body))
}

// SendEnrollmentApprovedEmail confirms course access to the student.
func SendEnrollmentApprovedEmail(email, name, courseName string) {
	subject := "Enrollment approved: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your enrollment in <strong>%s</strong> has been approved. You can now access all the course content and track your progress.</p>
		<p>Complete every unit to unlock the final exam and earn your certificate.</p>
	`, name, courseName)

	go SendEmail(email, name, subject, getEmailTemplate("Enrollment Approved", body))
}

// SendEnrollmentRejectedEmail tells the student the request was declined.
func SendEnrollmentRejectedEmail(email, name, courseName string) {
	subject := "Enrollment update: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately your enrollment request for <strong>%s</strong> was not approved.</p>
		<p>You may submit a new enrollment request at any time.</p>
	`, name, courseName)

	go SendEmail(email, name, subject, getEmailTemplate("Enrollment Not Approved", body))
}

// SendCertificateEmail delivers the certificate number after a passed exam.
func SendCertificateEmail(email, name, courseName, certificateNumber string) {
	subject := "Your certificate for " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on passing the exam for <strong>%s</strong>!</p>
		<div class="info-box">
			Your certificate number: <strong>%s</strong><br>
			Anyone can verify it at %s/certificate/verify/%s
		</div>
		<p>You can download the PDF from your dashboard.</p>
	`, name, courseName, certificateNumber, config.AppConfig.BaseURL, certificateNumber)

	go SendEmail(email, name, subject, getEmailTemplate("Certificate Issued", body))
}
