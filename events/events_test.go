package events

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	seen []Event
}

func (r *recordingSink) Handle(e Event) {
	r.seen = append(r.seen, e)
}

func TestPublishReachesAllSinks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := &recordingSink{}
	second := &recordingSink{}
	Register(first)
	Register(second)

	ev := EnrollmentRequested{
		Enrollment: courseModels.Enrollment{UserID: 1, CourseID: 2},
		Student:    models.User{Name: "Student"},
		Course:     courseModels.Course{Name: "Course"},
	}
	Publish(ev)

	assert.Equal(t, []Event{ev}, first.seen)
	assert.Equal(t, []Event{ev}, second.seen)
	assert.Equal(t, "enrollment.requested", ev.Name())
}

func TestPublishWithoutSinksIsNoop(t *testing.T) {
	Reset()
	Publish(ExamPassed{})
}
