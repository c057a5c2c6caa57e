package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentPending  = "PENDING"
	EnrollmentApproved = "APPROVED"
	EnrollmentRejected = "REJECTED"
)

// Enrollment ties one student to one course. The composite unique index keeps
// at most one record per pair even under concurrent duplicate requests; a
// REJECTED row is hard-deleted when the student re-requests, which is the only
// way out of a terminal status.
type Enrollment struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID        uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	ContactNumber   string     `json:"contact_number"`
	Address         string     `json:"address"`
	PaymentProofURL string     `json:"payment_proof_url"`
	Amount          float64    `json:"amount"` // course fee snapshotted at request time
	Status          string     `json:"status" gorm:"default:'PENDING'"`
	ApprovedBy      *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
}
