package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	email                 TEXT NOT NULL UNIQUE,
	password_hash         TEXT NOT NULL,
	household_size        INTEGER NOT NULL DEFAULT 0,
	water_source          TEXT NOT NULL DEFAULT 'mains',
	has_garden            INTEGER NOT NULL DEFAULT 0 CHECK(has_garden IN (0, 1)),
	garden_size           INTEGER NOT NULL DEFAULT 0,
	has_pool              INTEGER NOT NULL DEFAULT 0 CHECK(has_pool IN (0, 1)),
	pool_size             INTEGER NOT NULL DEFAULT 0,
	notifications_enabled INTEGER NOT NULL DEFAULT 1 CHECK(notifications_enabled IN (0, 1)),
	created_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS water_usage (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	date            DATETIME NOT NULL,
	shower          REAL NOT NULL DEFAULT 0 CHECK(shower >= 0),
	toilet          REAL NOT NULL DEFAULT 0 CHECK(toilet >= 0),
	washing_machine REAL NOT NULL DEFAULT 0 CHECK(washing_machine >= 0),
	dishwasher      REAL NOT NULL DEFAULT 0 CHECK(dishwasher >= 0),
	garden          REAL NOT NULL DEFAULT 0 CHECK(garden >= 0),
	other           REAL NOT NULL DEFAULT 0 CHECK(other >= 0),
	total_litres    REAL NOT NULL DEFAULT 0,
	target_achieved INTEGER NOT NULL DEFAULT 0 CHECK(target_achieved IN (0, 1)),
	notes           TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_water_usage_user_id ON water_usage(user_id);
CREATE INDEX IF NOT EXISTS idx_water_usage_user_date ON water_usage(user_id, date);

CREATE TABLE IF NOT EXISTS lessons (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	content          TEXT NOT NULL,
	type             TEXT NOT NULL CHECK(type IN ('info', 'video', 'quiz')),
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	sort_order       INTEGER NOT NULL,
	category         TEXT NOT NULL,
	quiz_questions   TEXT NOT NULL DEFAULT '[]',
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_lessons_sort_order ON lessons(sort_order);

CREATE TABLE IF NOT EXISTS user_progress (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	current_lesson_id TEXT REFERENCES lessons(id),
	total_progress    REAL NOT NULL DEFAULT 0,
	updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS completed_lessons (
	user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	lesson_id    TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
	completed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	quiz_score   INTEGER CHECK(quiz_score BETWEEN 0 AND 100),
	PRIMARY KEY (user_id, lesson_id)
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	type       TEXT NOT NULL CHECK(type IN ('water_usage', 'lesson_reminder', 'achievement', 'tip', 'system')),
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	is_read    INTEGER NOT NULL DEFAULT 0 CHECK(is_read IN (0, 1)),
	priority   TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
	action_url TEXT NOT NULL DEFAULT '',
	expires_at DATETIME,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, is_read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
