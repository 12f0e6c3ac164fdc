package postgres

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
)

// schema is the subset of the content tables the engine reads.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id          BIGSERIAL PRIMARY KEY,
    username    TEXT NOT NULL,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS tags (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ,
    creator_id  BIGINT REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS categories (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ,
    creator_id  BIGINT REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS posts (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ,
    creator_id  BIGINT REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS post_tag_mappings (
    id          BIGSERIAL PRIMARY KEY,
    post_id     BIGINT NOT NULL REFERENCES posts(id),
    tag_id      BIGINT NOT NULL REFERENCES tags(id),
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS post_category_mappings (
    id          BIGSERIAL PRIMARY KEY,
    post_id     BIGINT NOT NULL REFERENCES posts(id),
    category_id BIGINT NOT NULL REFERENCES categories(id),
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS tag_subscriptions (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT NOT NULL REFERENCES users(id),
    tag_id      BIGINT NOT NULL REFERENCES tags(id),
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS category_subscriptions (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT NOT NULL REFERENCES users(id),
    category_id BIGINT NOT NULL REFERENCES categories(id),
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    create_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS user_subscriptions (
    id             BIGSERIAL PRIMARY KEY,
    user_id        BIGINT NOT NULL REFERENCES users(id),
    target_user_id BIGINT NOT NULL REFERENCES users(id),
    is_deleted     BOOLEAN NOT NULL DEFAULT FALSE,
    create_date    TIMESTAMPTZ NOT NULL DEFAULT now(),
    delete_date    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_post_tag_mappings_tag ON post_tag_mappings(tag_id, create_date);
CREATE INDEX IF NOT EXISTS idx_post_tag_mappings_post ON post_tag_mappings(post_id, create_date);
CREATE INDEX IF NOT EXISTS idx_post_category_mappings_category ON post_category_mappings(category_id, create_date);
CREATE INDEX IF NOT EXISTS idx_tag_subscriptions_tag ON tag_subscriptions(tag_id, create_date);
CREATE INDEX IF NOT EXISTS idx_category_subscriptions_category ON category_subscriptions(category_id, create_date);
CREATE INDEX IF NOT EXISTS idx_user_subscriptions_target ON user_subscriptions(target_user_id, create_date);
`

// CreateSchema creates the content tables when missing. Used for local
// setups and tests; production schemas are owned by the CMS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return goerr.Wrap(err, "failed to create schema")
	}
	return nil
}
