package course

import "gorm.io/gorm"

// Content unit types
const (
	ContentVideo     = "VIDEO"
	ContentPdf       = "PDF"
	ContentSlideshow = "SLIDESHOW"
	ContentLink      = "LINK"
	ContentYoutube   = "YOUTUBE"
)

// ContentUnit represents one addressable piece of course material,
// ordered within its course by an explicit sequence number.
type ContentUnit struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SequenceNo  int    `json:"sequence_no" gorm:"default:0"`
	ContentType string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, PDF, SLIDESHOW, LINK, YOUTUBE
	MediaURL    string `json:"media_url"`                           // uploaded media (VIDEO, PDF, SLIDESHOW)
	ExternalURL string `json:"external_url"`                        // LINK, YOUTUBE
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// ContentCompletion tracks a student's completion of one content unit.
// A unit can be completed at most once per user; rows are never soft-deleted
// since the unique index is what rejects duplicate completions under races.
type ContentCompletion struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"not null;uniqueIndex:idx_completion_user_unit"`
	CourseID      uint `json:"course_id" gorm:"index;not null"`
	ContentUnitID uint `json:"content_unit_id" gorm:"not null;uniqueIndex:idx_completion_user_unit"`
}
