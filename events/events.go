// Package events carries the typed domain events emitted by the enrollment,
// exam and certificate workflows. The core publishes; how a sink delivers
// (notification rows, websocket push, email) is its own concern.
package events

import (
	"lms/models"
	courseModels "lms/models/course"
)

type Event interface {
	Name() string
}

// EnrollmentRequested fires when a student submits a new enrollment request.
type EnrollmentRequested struct {
	Enrollment courseModels.Enrollment
	Student    models.User
	Course     courseModels.Course
}

func (EnrollmentRequested) Name() string { return "enrollment.requested" }

// EnrollmentApproved fires when an admin approves a pending enrollment.
type EnrollmentApproved struct {
	Enrollment courseModels.Enrollment
	Student    models.User
	Course     courseModels.Course
}

func (EnrollmentApproved) Name() string { return "enrollment.approved" }

// EnrollmentRejected fires when an admin rejects a pending enrollment.
type EnrollmentRejected struct {
	Enrollment courseModels.Enrollment
	Student    models.User
	Course     courseModels.Course
}

func (EnrollmentRejected) Name() string { return "enrollment.rejected" }

// ExamPassed fires after a passing exam submission, once the certificate row
// is committed.
type ExamPassed struct {
	Student     models.User
	Course      courseModels.Course
	Certificate courseModels.Certificate
}

func (ExamPassed) Name() string { return "exam.passed" }

// Sink receives published events. Delivery is best-effort; a sink must not
// fail the request that produced the event.
type Sink interface {
	Handle(Event)
}

var sinks []Sink

// Register adds a sink. Called during startup, before the server accepts
// requests; not safe for concurrent use with Publish.
func Register(s Sink) {
	sinks = append(sinks, s)
}

// Reset drops all registered sinks. Test helper.
func Reset() {
	sinks = nil
}

// Publish hands the event to every registered sink.
func Publish(e Event) {
	for _, s := range sinks {
		s.Handle(e)
	}
}
