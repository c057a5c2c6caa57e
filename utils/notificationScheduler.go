package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[NOTIFICATION-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeOldNotifications removes read notifications older than 90 days.
// Unread ones are kept until the owner deletes them.
func purgeOldNotifications() {
	cutoff := time.Now().AddDate(0, 0, -90)

	res := database.Database.Db.
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if res.Error != nil {
		logScheduler("Error purging notifications: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Purged old notifications")
	}
}

// StartNotificationScheduler runs housekeeping once a day at 03:00.
func StartNotificationScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", purgeOldNotifications); err != nil {
		log.Fatalf("Failed to schedule notification cleanup: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started")
	return c
}
