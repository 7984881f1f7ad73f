// fightclub/utils/system.go
package utils

import (
	"time"
)

// GetTime returns the current time. Useful for mocking in tests.
func GetTime() time.Time {
	return time.Now()
}

// GetSQLTime returns the current time in UTC for database storage.
func GetSQLTime() time.Time {
	return time.Now().UTC()
}

// StartOfToday returns midnight UTC of the current day.
func StartOfToday() time.Time {
	now := GetSQLTime()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
