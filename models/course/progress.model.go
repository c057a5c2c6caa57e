package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress is the per-(student, course) completion state, created only when an
// enrollment is approved. Percentage is always derived from the completion
// rows and the live content-unit count, never set directly by a client.
type Progress struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID          uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	Percentage        float64    `json:"percentage" gorm:"default:0"`
	ExamAttempted     bool       `json:"exam_attempted" gorm:"default:false"`
	ExamScore         float64    `json:"exam_score" gorm:"default:0"`
	ExamPassed        bool       `json:"exam_passed" gorm:"default:false"`
	ExamAttemptedAt   *time.Time `json:"exam_attempted_at"`
	CertificateSent   bool       `json:"certificate_sent" gorm:"default:false"`
	CertificateSentAt *time.Time `json:"certificate_sent_at"`
	LastAccessedAt    *time.Time `json:"last_accessed_at"`
}
