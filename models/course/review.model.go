package course

import "gorm.io/gorm"

// CourseReview is one user's rating of a course. The composite unique index
// enforces one review per (course, user); rows are hard-deleted so a removed
// review frees the slot.
type CourseReview struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_review_course_user"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_review_course_user"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}
