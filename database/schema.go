package database

const schema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME
);
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user', -- 'user' or 'admin'
	avatar TEXT DEFAULT '',
	is_active BOOLEAN DEFAULT 1,
	join_date DATETIME NOT NULL,
	last_active DATETIME NOT NULL,
	post_count INTEGER DEFAULT 0,
	comment_count INTEGER DEFAULT 0,
	like_count INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS boards (
	id TEXT PRIMARY KEY, -- unique slug
	name TEXT NOT NULL,
	description TEXT DEFAULT '',
	category TEXT DEFAULT 'general',
	is_active BOOLEAN DEFAULT 1,
	post_count INTEGER DEFAULT 0, -- published posts only
	created DATETIME
);
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	author_id INTEGER NOT NULL,
	board_id TEXT NOT NULL,
	category TEXT DEFAULT 'general',
	tags TEXT DEFAULT '[]',        -- JSON array of strings
	attachments TEXT DEFAULT '[]', -- JSON array of attachment metadata
	status TEXT NOT NULL DEFAULT 'published', -- 'draft', 'published', 'hidden'
	is_notice BOOLEAN DEFAULT 0,
	is_pinned BOOLEAN DEFAULT 0,
	views INTEGER DEFAULT 0,
	likes INTEGER DEFAULT 0,
	dislikes INTEGER DEFAULT 0,
	comment_count INTEGER DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (author_id) REFERENCES users(id),
	FOREIGN KEY (board_id) REFERENCES boards(id)
);
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	author_id INTEGER NOT NULL,
	post_id INTEGER NOT NULL,
	parent_id INTEGER, -- NULL for top-level comments
	is_deleted BOOLEAN DEFAULT 0, -- tombstone, preserves thread shape
	likes INTEGER DEFAULT 0,
	dislikes INTEGER DEFAULT 0,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (author_id) REFERENCES users(id),
	FOREIGN KEY (post_id) REFERENCES posts(id),
	FOREIGN KEY (parent_id) REFERENCES comments(id)
);

-- --- INDEXES ---
CREATE INDEX IF NOT EXISTS idx_posts_board_status ON posts(board_id, status);
CREATE INDEX IF NOT EXISTS idx_posts_listing ON posts(status, is_pinned DESC, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_posts_likes ON posts(likes DESC);
CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active);
`
