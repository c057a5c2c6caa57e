package models

import "gorm.io/gorm"

// Notification is the persisted record behind the in-app notification center.
// Realtime delivery over the websocket hub is best-effort; this row is the
// source of truth the client polls or fetches on login.
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Category  string `json:"category" gorm:"default:'SYSTEM'"` // ENROLLMENT, EXAM, CERTIFICATE, SYSTEM
	Link      string `json:"link"`                             // optional deep link into the SPA
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
