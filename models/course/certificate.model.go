package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued, immutable record of a passed course exam.
// The composite unique index on (user, course) is the final backstop against
// two racing exam submissions both issuing a certificate.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	ExamID            uint      `json:"exam_id" gorm:"index"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	Score             float64   `json:"score"`
	IssuedAt          time.Time `json:"issued_at"`
}
