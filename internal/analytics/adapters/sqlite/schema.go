package sqlite

// schema mirrors the Postgres tables the engine reads. Timestamps are
// TEXT in TimeLayout so range predicates compare lexically.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id          INTEGER PRIMARY KEY,
    username    TEXT NOT NULL,
    is_active   INTEGER NOT NULL DEFAULT 1,
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT
);

CREATE TABLE IF NOT EXISTS tags (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    is_active   INTEGER NOT NULL DEFAULT 1,
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT,
    creator_id  INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS categories (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    is_active   INTEGER NOT NULL DEFAULT 1,
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT,
    creator_id  INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS posts (
    id          INTEGER PRIMARY KEY,
    title       TEXT NOT NULL,
    is_active   INTEGER NOT NULL DEFAULT 1,
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT,
    creator_id  INTEGER REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS post_tag_mappings (
    id          INTEGER PRIMARY KEY,
    post_id     INTEGER NOT NULL REFERENCES posts(id),
    tag_id      INTEGER NOT NULL REFERENCES tags(id),
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT
);

CREATE TABLE IF NOT EXISTS post_category_mappings (
    id          INTEGER PRIMARY KEY,
    post_id     INTEGER NOT NULL REFERENCES posts(id),
    category_id INTEGER NOT NULL REFERENCES categories(id),
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT
);

CREATE TABLE IF NOT EXISTS tag_subscriptions (
    id          INTEGER PRIMARY KEY,
    user_id     INTEGER NOT NULL REFERENCES users(id),
    tag_id      INTEGER NOT NULL REFERENCES tags(id),
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT
);

CREATE TABLE IF NOT EXISTS category_subscriptions (
    id          INTEGER PRIMARY KEY,
    user_id     INTEGER NOT NULL REFERENCES users(id),
    category_id INTEGER NOT NULL REFERENCES categories(id),
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    create_date TEXT NOT NULL,
    delete_date TEXT
);

CREATE TABLE IF NOT EXISTS user_subscriptions (
    id             INTEGER PRIMARY KEY,
    user_id        INTEGER NOT NULL REFERENCES users(id),
    target_user_id INTEGER NOT NULL REFERENCES users(id),
    is_deleted     INTEGER NOT NULL DEFAULT 0,
    create_date    TEXT NOT NULL,
    delete_date    TEXT
);

CREATE INDEX IF NOT EXISTS idx_post_tag_mappings_tag ON post_tag_mappings(tag_id, create_date);
CREATE INDEX IF NOT EXISTS idx_post_tag_mappings_post ON post_tag_mappings(post_id, create_date);
CREATE INDEX IF NOT EXISTS idx_post_category_mappings_category ON post_category_mappings(category_id, create_date);
CREATE INDEX IF NOT EXISTS idx_tag_subscriptions_tag ON tag_subscriptions(tag_id, create_date);
CREATE INDEX IF NOT EXISTS idx_category_subscriptions_category ON category_subscriptions(category_id, create_date);
CREATE INDEX IF NOT EXISTS idx_user_subscriptions_target ON user_subscriptions(target_user_id, create_date);
`
