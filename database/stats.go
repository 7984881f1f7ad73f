// fightclub/database/stats.go
package database

import (
	"fmt"

	"fightclub/apperr"
	"fightclub/config"
	"fightclub/models"
	"fightclub/utils"
)

// GetSiteStats reports the usage counters shown on the landing page: accounts
// active inside the online window, registrations today, and posts published
// today.
func (ds *DatabaseService) GetSiteStats() (*models.SiteStats, error) {
	now := utils.GetSQLTime()
	stats := &models.SiteStats{Timestamp: now}

	onlineCutoff := now.Add(-config.OnlineWindow)
	if err := ds.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE is_active = 1 AND last_active >= ?", onlineCutoff).Scan(&stats.OnlineUsers); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to count online users: %w", err))
	}

	todayStart := utils.StartOfToday()
	if err := ds.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE join_date >= ?", todayStart).Scan(&stats.TodayUsers); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to count today's users: %w", err))
	}
	if err := ds.DB.QueryRow(
		"SELECT COUNT(*) FROM posts WHERE created_at >= ? AND status = 'published'", todayStart).Scan(&stats.TodayPosts); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to count today's posts: %w", err))
	}

	return stats, nil
}
