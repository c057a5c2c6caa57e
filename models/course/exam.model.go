package course

import "gorm.io/gorm"

// Exam is the single-attempt assessment gating certificate issuance.
// One exam per course is enforced at authoring time, not by an index.
type Exam struct {
	gorm.Model
	CourseID          uint    `json:"course_id" gorm:"index;not null"`
	Title             string  `json:"title"`
	PassingPercentage float64 `json:"passing_percentage" gorm:"default:50"`
	DurationMinutes   int     `json:"duration_minutes" gorm:"default:0"` // advisory, not server-enforced
	IsDeleted         bool    `json:"-" gorm:"default:false"`
}

// ExamQuestion is one question of an exam, ordered by OrderIndex.
type ExamQuestion struct {
	gorm.Model
	ExamID       uint   `json:"exam_id" gorm:"index;not null"`
	QuestionText string `json:"question_text"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
}

// ExamOption is one answer option; exactly one per question carries IsCorrect.
type ExamOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}
