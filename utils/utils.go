package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCertificateNumber builds a globally unique certificate identifier,
// e.g. CERT-20260829143000-9f3b2c1a. The uuid suffix keeps two issuances in
// the same second distinct.
func GenerateCertificateNumber() string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("CERT-%s-%s", time.Now().Format("20060102150405"), short)
}

// Percentage returns round(100 * part / total), or 0 when total is 0.
func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part) / float64(total) * 100)
}
