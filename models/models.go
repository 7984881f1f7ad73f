// fightclub/models/models.go
package models

import "time"

// --- Core Data Models ---

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// PostStatus is the lifecycle state of a post. Transitions are one-directional
// (draft -> published -> hidden); only an admin may take a post out of hidden.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusHidden    PostStatus = "hidden"
)

func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusHidden
}

type UserStats struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Likes    int64 `json:"likes"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	IsActive     bool      `json:"isActive"`
	JoinDate     time.Time `json:"joinDate"`
	LastActive   time.Time `json:"lastActive"`
	Stats        UserStats `json:"stats"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Board struct {
	ID          string    `json:"id"` // unique slug
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"isActive"`
	PostCount   int64     `json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Attachment struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type PostStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Comments int64 `json:"comments"`
}

// PostAuthor is the public projection of a post's author; never the full user.
type PostAuthor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type Post struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Author      PostAuthor   `json:"author"`
	BoardID     string       `json:"board"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Attachments []Attachment `json:"attachments"`
	Status      PostStatus   `json:"status"`
	IsNotice    bool         `json:"isNotice"`
	IsPinned    bool         `json:"isPinned"`
	Stats       PostStats    `json:"stats"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CommentStats struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type Comment struct {
	ID        int64        `json:"id"`
	Content   string       `json:"content"`
	Author    PostAuthor   `json:"author"`
	PostID    int64        `json:"post"`
	ParentID  *int64       `json:"parent,omitempty"`
	IsDeleted bool         `json:"isDeleted"`
	Stats     CommentStats `json:"stats"`
	CreatedAt time.Time    `json:"createdAt"`
}

// --- Listing ---

// SortKey selects the ordering of a post listing.
type SortKey string

const (
	SortLatest   SortKey = "latest"
	SortPopular  SortKey = "popular"
	SortViews    SortKey = "views"
	SortComments SortKey = "comments"
)

// BestBoard is the cross-board selector: trending posts from every board.
const BestBoard = "best"

type ListQuery struct {
	Board    string
	Page     int
	PageSize int
	Sort     SortKey
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type PostListing struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// --- Statistics ---

type SiteStats struct {
	OnlineUsers int64     `json:"onlineUsers"`
	TodayUsers  int64     `json:"todayUsers"`
	TodayPosts  int64     `json:"todayPosts"`
	Timestamp   time.Time `json:"timestamp"`
}
