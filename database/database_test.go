// fightclub/database/database_test.go
package database

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"fightclub/apperr"
	"fightclub/models"
)

func setupTestDB(t *testing.T) *DatabaseService {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ds, err := InitDB(dsn, logger)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() {
		if err := ds.DB.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	// Seed takes a ready digest; these tests never log the admin in.
	if err := ds.Seed("$2a$12$seeded-admin-digest"); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return ds
}

func mustCreateUser(t *testing.T, ds *DatabaseService, username string) *models.User {
	t.Helper()
	user, err := ds.CreateUser(username, username+"@example.com", "$2a$12$irrelevant-digest")
	if err != nil {
		t.Fatalf("CreateUser(%q) failed: %v", username, err)
	}
	return user
}

func mustCreatePost(t *testing.T, ds *DatabaseService, authorID int64, board, title string, status models.PostStatus) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:   title,
		Content: "content of " + title,
		Author:  models.PostAuthor{ID: authorID},
		BoardID: board,
		Status:  status,
	}
	if err := ds.CreatePost(post); err != nil {
		t.Fatalf("CreatePost(%q) failed: %v", title, err)
	}
	return post
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected an *apperr.Error, got %T: %v", err, err)
	}
	return appErr.Kind
}

func TestSeedIsIdempotent(t *testing.T) {
	ds := setupTestDB(t)

	if err := ds.Seed("$2a$12$another-digest"); err != nil {
		t.Fatalf("Second Seed failed: %v", err)
	}

	boards, err := ds.ListBoards()
	if err != nil {
		t.Fatalf("ListBoards failed: %v", err)
	}
	if len(boards) != 6 {
		t.Errorf("Expected 6 default boards, got %d", len(boards))
	}

	admin, err := ds.GetUserByLogin("admin")
	if err != nil {
		t.Fatalf("Seeded admin not found: %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("Seeded admin account must hold the admin role")
	}
	if admin.PasswordHash != "$2a$12$seeded-admin-digest" {
		t.Error("Second Seed must not overwrite the existing admin digest")
	}
}

func TestCreateUserConflict(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")

	t.Run("Duplicate Username", func(t *testing.T) {
		_, err := ds.CreateUser("bob", "other@example.com", "$2a$12$x")
		if kindOf(t, err) != apperr.KindConflict {
			t.Errorf("Expected conflict, got %v", err)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		_, err := ds.CreateUser("robert", "bob@example.com", "$2a$12$x")
		if kindOf(t, err) != apperr.KindConflict {
			t.Errorf("Expected conflict, got %v", err)
		}
	})

	t.Run("Existing Record Unchanged", func(t *testing.T) {
		got, err := ds.GetUserByID(bob.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Email != "bob@example.com" || got.PasswordHash != "$2a$12$irrelevant-digest" {
			t.Error("Failed registration must leave the existing account untouched")
		}
	})
}

func TestGetUserByLogin(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")

	t.Run("By Username", func(t *testing.T) {
		got, err := ds.GetUserByLogin("bob")
		if err != nil || got.ID != bob.ID {
			t.Errorf("Lookup by username failed: %v", err)
		}
	})

	t.Run("By Email", func(t *testing.T) {
		got, err := ds.GetUserByLogin("bob@example.com")
		if err != nil || got.ID != bob.ID {
			t.Errorf("Lookup by email failed: %v", err)
		}
	})

	t.Run("Deactivated Account Hidden", func(t *testing.T) {
		if err := ds.SetUserActive(bob.ID, false); err != nil {
			t.Fatalf("SetUserActive failed: %v", err)
		}
		if _, err := ds.GetUserByLogin("bob"); kindOf(t, err) != apperr.KindNotFound {
			t.Errorf("Expected not_found for deactivated account, got %v", err)
		}
		// Direct id lookup still works so sessions can learn the account died.
		if _, err := ds.GetUserByID(bob.ID); err != nil {
			t.Errorf("GetUserByID should still resolve a deactivated account: %v", err)
		}
	})
}

func TestCreatePostBoardChecks(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")

	t.Run("Unknown Board", func(t *testing.T) {
		post := &models.Post{Title: "t", Content: "c", Author: models.PostAuthor{ID: bob.ID}, BoardID: "nope"}
		if err := ds.CreatePost(post); kindOf(t, err) != apperr.KindNotFound {
			t.Errorf("Expected not_found for unknown board, got %v", err)
		}
	})

	t.Run("Disabled Board", func(t *testing.T) {
		if err := ds.DisableBoard("stock"); err != nil {
			t.Fatalf("DisableBoard failed: %v", err)
		}
		post := &models.Post{Title: "t", Content: "c", Author: models.PostAuthor{ID: bob.ID}, BoardID: "stock"}
		if err := ds.CreatePost(post); kindOf(t, err) != apperr.KindValidation {
			t.Errorf("Expected validation error for closed board, got %v", err)
		}
	})
}

func TestPostCountersFollowPublishedSet(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")

	p1 := mustCreatePost(t, ds, bob.ID, "politics", "first", models.StatusPublished)
	mustCreatePost(t, ds, bob.ID, "politics", "second", models.StatusPublished)
	draft := mustCreatePost(t, ds, bob.ID, "politics", "draft", models.StatusDraft)

	assertCounts := func(t *testing.T, wantBoard, wantUser int64) {
		t.Helper()
		board, err := ds.GetBoard("politics")
		if err != nil {
			t.Fatalf("GetBoard failed: %v", err)
		}
		if board.PostCount != wantBoard {
			t.Errorf("Board post count = %d, want %d", board.PostCount, wantBoard)
		}
		user, err := ds.GetUserByID(bob.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if user.Stats.Posts != wantUser {
			t.Errorf("Author post count = %d, want %d", user.Stats.Posts, wantUser)
		}
	}

	// Drafts never count.
	assertCounts(t, 2, 2)

	t.Run("Hiding Decrements", func(t *testing.T) {
		if err := ds.SetPostStatus(p1.ID, models.StatusHidden, false); err != nil {
			t.Fatalf("SetPostStatus failed: %v", err)
		}
		assertCounts(t, 1, 1)
	})

	t.Run("Publishing A Draft Increments", func(t *testing.T) {
		if err := ds.SetPostStatus(draft.ID, models.StatusPublished, false); err != nil {
			t.Fatalf("SetPostStatus failed: %v", err)
		}
		assertCounts(t, 2, 2)
	})

	t.Run("Admin Restore Increments", func(t *testing.T) {
		if err := ds.SetPostStatus(p1.ID, models.StatusPublished, true); err != nil {
			t.Fatalf("SetPostStatus failed: %v", err)
		}
		assertCounts(t, 3, 3)
	})
}

func TestSetPostStatusTransitions(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	post := mustCreatePost(t, ds, bob.ID, "issue", "lifecycle", models.StatusPublished)

	t.Run("Published Back To Draft Rejected", func(t *testing.T) {
		err := ds.SetPostStatus(post.ID, models.StatusDraft, true)
		if kindOf(t, err) != apperr.KindValidation {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("Same Status Is A No-Op", func(t *testing.T) {
		if err := ds.SetPostStatus(post.ID, models.StatusPublished, false); err != nil {
			t.Errorf("Expected no-op, got %v", err)
		}
	})

	t.Run("Hidden Is Terminal For Owners", func(t *testing.T) {
		if err := ds.SetPostStatus(post.ID, models.StatusHidden, false); err != nil {
			t.Fatalf("Hide failed: %v", err)
		}
		err := ds.SetPostStatus(post.ID, models.StatusPublished, false)
		if kindOf(t, err) != apperr.KindValidation {
			t.Errorf("Expected validation error without admin, got %v", err)
		}
	})

	t.Run("Unknown Status Rejected", func(t *testing.T) {
		err := ds.SetPostStatus(post.ID, models.PostStatus("archived"), true)
		if kindOf(t, err) != apperr.KindValidation {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("Missing Post", func(t *testing.T) {
		err := ds.SetPostStatus(99999, models.StatusHidden, true)
		if kindOf(t, err) != apperr.KindNotFound {
			t.Errorf("Expected not_found, got %v", err)
		}
	})
}

func TestGetPostViewCounting(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	post := mustCreatePost(t, ds, bob.ID, "issue", "views", models.StatusPublished)
	draft := mustCreatePost(t, ds, bob.ID, "issue", "draft views", models.StatusDraft)

	for i := 0; i < 3; i++ {
		if _, err := ds.GetPost(post.ID, true); err != nil {
			t.Fatalf("GetPost failed: %v", err)
		}
	}
	got, err := ds.GetPost(post.ID, false)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Stats.Views != 3 {
		t.Errorf("Expected 3 views, got %d", got.Stats.Views)
	}

	// Unpublished posts never accumulate views.
	if _, err := ds.GetPost(draft.ID, true); err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	gotDraft, err := ds.GetPost(draft.ID, false)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if gotDraft.Stats.Views != 0 {
		t.Errorf("Draft views = %d, want 0", gotDraft.Stats.Views)
	}
}

func TestListPostsSorting(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")

	a := mustCreatePost(t, ds, bob.ID, "politics", "a", models.StatusPublished)
	b := mustCreatePost(t, ds, bob.ID, "politics", "b", models.StatusPublished)
	c := mustCreatePost(t, ds, bob.ID, "politics", "c", models.StatusPublished)
	mustCreatePost(t, ds, bob.ID, "politics", "hidden draft", models.StatusDraft)

	// Fix the sortable columns directly so the expected order is unambiguous.
	for _, fix := range []struct {
		id                      int64
		likes, views, comments  int64
		pinned                  bool
	}{
		{a.ID, 5, 1, 9, false},
		{b.ID, 9, 5, 1, false},
		{c.ID, 1, 9, 5, true},
	} {
		_, err := ds.DB.Exec(
			"UPDATE posts SET likes = ?, views = ?, comment_count = ?, is_pinned = ? WHERE id = ?",
			fix.likes, fix.views, fix.comments, fix.pinned, fix.id,
		)
		if err != nil {
			t.Fatalf("Failed to fix counters: %v", err)
		}
	}

	idsOf := func(t *testing.T, sort models.SortKey) []int64 {
		t.Helper()
		listing, err := ds.ListPosts(models.ListQuery{Board: "politics", Sort: sort})
		if err != nil {
			t.Fatalf("ListPosts(%s) failed: %v", sort, err)
		}
		ids := make([]int64, len(listing.Posts))
		for i, p := range listing.Posts {
			ids[i] = p.ID
		}
		return ids
	}

	testCases := []struct {
		name string
		sort models.SortKey
		want []int64
	}{
		{"Latest Puts Pinned First", models.SortLatest, []int64{c.ID, b.ID, a.ID}},
		{"Popular Orders By Likes", models.SortPopular, []int64{b.ID, a.ID, c.ID}},
		{"Views", models.SortViews, []int64{c.ID, b.ID, a.ID}},
		{"Comments", models.SortComments, []int64{a.ID, c.ID, b.ID}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := idsOf(t, tc.sort)
			if len(got) != len(tc.want) {
				t.Fatalf("Expected %d posts, got %d (drafts must not appear)", len(tc.want), len(got))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("Order mismatch for %s: got %v, want %v", tc.sort, got, tc.want)
				}
			}
		})
	}

	t.Run("Equal Likes Fall Back To Newest First", func(t *testing.T) {
		if _, err := ds.DB.Exec("UPDATE posts SET likes = 7, is_pinned = 0 WHERE id IN (?, ?, ?)", a.ID, b.ID, c.ID); err != nil {
			t.Fatalf("Failed to level likes: %v", err)
		}
		got := idsOf(t, models.SortPopular)
		want := []int64{c.ID, b.ID, a.ID}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Tie-break order: got %v, want %v", got, want)
			}
		}
	})
}

func TestListPostsPagination(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	for i := 0; i < 5; i++ {
		mustCreatePost(t, ds, bob.ID, "society", "post", models.StatusPublished)
	}

	t.Run("Middle Page", func(t *testing.T) {
		listing, err := ds.ListPosts(models.ListQuery{Board: "society", Page: 2, PageSize: 2})
		if err != nil {
			t.Fatalf("ListPosts failed: %v", err)
		}
		if len(listing.Posts) != 2 {
			t.Errorf("Expected 2 posts, got %d", len(listing.Posts))
		}
		p := listing.Pagination
		if p.CurrentPage != 2 || p.TotalPages != 3 || p.TotalPosts != 5 || !p.HasNext || !p.HasPrev {
			t.Errorf("Unexpected pagination: %+v", p)
		}
	})

	t.Run("Page Beyond The End", func(t *testing.T) {
		listing, err := ds.ListPosts(models.ListQuery{Board: "society", Page: 9, PageSize: 2})
		if err != nil {
			t.Fatalf("ListPosts failed: %v", err)
		}
		if listing.Posts == nil || len(listing.Posts) != 0 {
			t.Errorf("Expected an empty (non-nil) page, got %v", listing.Posts)
		}
		p := listing.Pagination
		if p.TotalPages != 3 || p.HasNext || !p.HasPrev {
			t.Errorf("Unexpected pagination for out-of-range page: %+v", p)
		}
	})

	t.Run("Bounds Are Clamped", func(t *testing.T) {
		listing, err := ds.ListPosts(models.ListQuery{Board: "society", Page: -3, PageSize: 100000})
		if err != nil {
			t.Fatalf("ListPosts failed: %v", err)
		}
		if listing.Pagination.CurrentPage != 1 || len(listing.Posts) != 5 {
			t.Errorf("Expected clamped first page with all posts, got %+v", listing.Pagination)
		}
	})
}

func TestListPostsBestSpansBoards(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	mustCreatePost(t, ds, bob.ID, "politics", "p1", models.StatusPublished)
	mustCreatePost(t, ds, bob.ID, "stock", "s1", models.StatusPublished)

	best, err := ds.ListPosts(models.ListQuery{Board: models.BestBoard})
	if err != nil {
		t.Fatalf("ListPosts(best) failed: %v", err)
	}
	if len(best.Posts) != 2 {
		t.Errorf("Best must span every board: got %d posts, want 2", len(best.Posts))
	}

	politics, err := ds.ListPosts(models.ListQuery{Board: "politics"})
	if err != nil {
		t.Fatalf("ListPosts(politics) failed: %v", err)
	}
	if len(politics.Posts) != 1 {
		t.Errorf("Board filter leaked: got %d posts, want 1", len(politics.Posts))
	}
}

func TestConcurrentLikesAreNotLost(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	post := mustCreatePost(t, ds, bob.ID, "celeb", "viral", models.StatusPublished)

	const likers = 25
	var wg sync.WaitGroup
	errs := make(chan error, likers)
	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- ds.LikePost(post.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("LikePost failed under concurrency: %v", err)
		}
	}

	got, err := ds.GetPost(post.ID, false)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Stats.Likes != likers {
		t.Errorf("Likes = %d, want %d (lost update)", got.Stats.Likes, likers)
	}
	author, err := ds.GetUserByID(bob.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if author.Stats.Likes != likers {
		t.Errorf("Author like counter = %d, want %d", author.Stats.Likes, likers)
	}
}

func TestReactionsRequirePublishedPost(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	draft := mustCreatePost(t, ds, bob.ID, "celeb", "draft", models.StatusDraft)

	if err := ds.LikePost(draft.ID); kindOf(t, err) != apperr.KindNotFound {
		t.Errorf("Expected not_found liking a draft, got %v", err)
	}
	if err := ds.DislikePost(99999); kindOf(t, err) != apperr.KindNotFound {
		t.Errorf("Expected not_found for missing post, got %v", err)
	}
}

func TestCommentLifecycle(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	carol := mustCreateUser(t, ds, "carol")
	post := mustCreatePost(t, ds, bob.ID, "issue", "thread", models.StatusPublished)
	other := mustCreatePost(t, ds, bob.ID, "issue", "other thread", models.StatusPublished)

	root := &models.Comment{Content: "first", Author: models.PostAuthor{ID: carol.ID}, PostID: post.ID}
	if err := ds.CreateComment(root); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	t.Run("Counters Move With Creation", func(t *testing.T) {
		got, err := ds.GetPost(post.ID, false)
		if err != nil {
			t.Fatalf("GetPost failed: %v", err)
		}
		if got.Stats.Comments != 1 {
			t.Errorf("Post comment count = %d, want 1", got.Stats.Comments)
		}
		author, err := ds.GetUserByID(carol.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if author.Stats.Comments != 1 {
			t.Errorf("Author comment count = %d, want 1", author.Stats.Comments)
		}
	})

	t.Run("Reply To Same Post", func(t *testing.T) {
		reply := &models.Comment{Content: "reply", Author: models.PostAuthor{ID: bob.ID}, PostID: post.ID, ParentID: &root.ID}
		if err := ds.CreateComment(reply); err != nil {
			t.Fatalf("CreateComment(reply) failed: %v", err)
		}
	})

	t.Run("Parent From Another Post Rejected", func(t *testing.T) {
		bad := &models.Comment{Content: "x", Author: models.PostAuthor{ID: bob.ID}, PostID: other.ID, ParentID: &root.ID}
		if err := ds.CreateComment(bad); kindOf(t, err) != apperr.KindValidation {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("Unpublished Post Rejects Comments", func(t *testing.T) {
		draft := mustCreatePost(t, ds, bob.ID, "issue", "draft", models.StatusDraft)
		c := &models.Comment{Content: "x", Author: models.PostAuthor{ID: bob.ID}, PostID: draft.ID}
		if err := ds.CreateComment(c); kindOf(t, err) != apperr.KindValidation {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("Tombstone Keeps Thread Shape", func(t *testing.T) {
		if err := ds.DeleteComment(root.ID); err != nil {
			t.Fatalf("DeleteComment failed: %v", err)
		}
		comments, err := ds.ListComments(post.ID)
		if err != nil {
			t.Fatalf("ListComments failed: %v", err)
		}
		if len(comments) != 2 {
			t.Fatalf("Expected 2 comments (tombstone kept), got %d", len(comments))
		}
		if !comments[0].IsDeleted || comments[0].Content != "" {
			t.Error("Tombstone must withhold content but keep its slot")
		}

		got, err := ds.GetPost(post.ID, false)
		if err != nil {
			t.Fatalf("GetPost failed: %v", err)
		}
		if got.Stats.Comments != 1 {
			t.Errorf("Post comment count after delete = %d, want 1", got.Stats.Comments)
		}
		author, err := ds.GetUserByID(carol.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if author.Stats.Comments != 0 {
			t.Errorf("Author comment count after delete = %d, want 0", author.Stats.Comments)
		}
	})

	t.Run("Deleting Twice Is A No-Op", func(t *testing.T) {
		if err := ds.DeleteComment(root.ID); err != nil {
			t.Fatalf("Second delete should be a no-op: %v", err)
		}
		got, err := ds.GetPost(post.ID, false)
		if err != nil {
			t.Fatalf("GetPost failed: %v", err)
		}
		if got.Stats.Comments != 1 {
			t.Errorf("Second delete must not move counters again: got %d", got.Stats.Comments)
		}
	})

	t.Run("Tombstones Reject Likes", func(t *testing.T) {
		if err := ds.LikeComment(root.ID); kindOf(t, err) != apperr.KindNotFound {
			t.Errorf("Expected not_found liking a tombstone, got %v", err)
		}
	})
}

func TestGetSiteStats(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")
	mustCreatePost(t, ds, bob.ID, "politics", "today", models.StatusPublished)
	mustCreatePost(t, ds, bob.ID, "politics", "draft", models.StatusDraft)

	stats, err := ds.GetSiteStats()
	if err != nil {
		t.Fatalf("GetSiteStats failed: %v", err)
	}

	// The seeded admin and bob both registered and acted just now.
	if stats.OnlineUsers != 2 {
		t.Errorf("OnlineUsers = %d, want 2", stats.OnlineUsers)
	}
	if stats.TodayUsers != 2 {
		t.Errorf("TodayUsers = %d, want 2", stats.TodayUsers)
	}
	if stats.TodayPosts != 1 {
		t.Errorf("TodayPosts = %d, want 1 (drafts excluded)", stats.TodayPosts)
	}
	if stats.Timestamp.IsZero() {
		t.Error("Expected a non-zero timestamp")
	}
}

func TestBoardCacheInvalidation(t *testing.T) {
	ds := setupTestDB(t)
	bob := mustCreateUser(t, ds, "bob")

	before, err := ds.GetBoard("politics")
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if before.PostCount != 0 {
		t.Fatalf("Fresh board post count = %d, want 0", before.PostCount)
	}

	mustCreatePost(t, ds, bob.ID, "politics", "cache buster", models.StatusPublished)

	after, err := ds.GetBoard("politics")
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if after.PostCount != 1 {
		t.Errorf("Cached board served stale post count %d, want 1", after.PostCount)
	}
}

func TestCreateBoard(t *testing.T) {
	ds := setupTestDB(t)

	board := &models.Board{ID: "gaming", Name: "Gaming", Description: "Games"}
	if err := ds.CreateBoard(board); err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if board.Category != "general" {
		t.Errorf("Expected default category general, got %q", board.Category)
	}

	dup := &models.Board{ID: "gaming", Name: "Gaming Again"}
	if err := ds.CreateBoard(dup); kindOf(t, err) != apperr.KindConflict {
		t.Errorf("Expected conflict for duplicate board slug, got %v", err)
	}

	if err := ds.DisableBoard("gaming"); err != nil {
		t.Fatalf("DisableBoard failed: %v", err)
	}
	boards, err := ds.ListBoards()
	if err != nil {
		t.Fatalf("ListBoards failed: %v", err)
	}
	for _, b := range boards {
		if b.ID == "gaming" {
			t.Error("Disabled board must not appear in listings")
		}
	}
}
