// fightclub/handlers/stats_test.go
package handlers

import (
	"net/http"
	"testing"

	"fightclub/models"
)

func TestHandleSiteStats(t *testing.T) {
	_, mux := setupTestApp(t)
	token, _ := registerUser(t, mux, "alice")

	if rr := doRequest(t, mux, "POST", "/api/posts/", token, map[string]any{
		"title": "today", "content": "fresh", "board": "politics",
	}); rr.Code != http.StatusCreated {
		t.Fatalf("Create failed with %d", rr.Code)
	}
	if rr := doRequest(t, mux, "POST", "/api/posts/", token, map[string]any{
		"title": "wip", "content": "later", "board": "politics", "status": "draft",
	}); rr.Code != http.StatusCreated {
		t.Fatalf("Create failed with %d", rr.Code)
	}

	rr := doRequest(t, mux, "GET", "/api/stats/online", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Stats failed with %d", rr.Code)
	}
	var stats models.SiteStats
	decodeBody(t, rr, &stats)

	// The seeded admin plus alice registered today; alice acted just now.
	if stats.TodayUsers != 2 {
		t.Errorf("TodayUsers = %d, want 2", stats.TodayUsers)
	}
	if stats.OnlineUsers < 1 {
		t.Errorf("OnlineUsers = %d, want at least 1", stats.OnlineUsers)
	}
	if stats.TodayPosts != 1 {
		t.Errorf("TodayPosts = %d, want 1 (drafts excluded)", stats.TodayPosts)
	}
}
