package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	Fee              float64 `json:"fee" gorm:"default:0"`
	Status           string  `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, INACTIVE
	ThumbnailURL     string  `json:"thumbnail_url"`
	AverageRating    float64 `json:"average_rating" gorm:"default:0"`
	RatingCount      int     `json:"rating_count" gorm:"default:0"`
	TotalEnrollments int     `json:"total_enrollments" gorm:"default:0"`
	TotalRevenue     float64 `json:"total_revenue" gorm:"default:0"`
	IsDeleted        bool    `json:"-" gorm:"default:false"`
}
