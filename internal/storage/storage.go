package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/runtimeconfig"
	"github.com/goliatone/go-cms-rest/internal/users"
)

// Supported storage providers.
const (
	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

// ErrProviderNotDatabase is returned by Open for the memory provider.
var ErrProviderNotDatabase = errors.New("storage: provider does not use a database")

// Open connects to the database selected by cfg and wraps it in bun.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)

	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case ProviderSQLite:
		sqlDB, err = sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
	case ProviderPostgres:
		sqlDB, err = sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	case ProviderMemory, "":
		return nil, ErrProviderNotDatabase
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", cfg.Provider)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", cfg.Provider, err)
	}
	return db, nil
}

// Models lists every table the content store persists.
func Models() []any {
	return []any{
		(*posts.Post)(nil),
		(*posts.Meta)(nil),
		(*menus.Menu)(nil),
		(*menus.MenuItem)(nil),
		(*menus.Location)(nil),
		(*media.Attachment)(nil),
		(*comments.Comment)(nil),
		(*users.Author)(nil),
	}
}

// CreateSchema creates the content store tables and lookup indexes when they
// do not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("storage: database is required")
	}
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range Models() {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("create table %T: %w", model, err)
			}
		}

		indexes := []struct {
			model   any
			name    string
			columns []string
		}{
			{(*posts.Post)(nil), "idx_posts_kind_slug", []string{"kind", "slug"}},
			{(*posts.Post)(nil), "idx_posts_kind_status_date", []string{"kind", "status", "date"}},
			{(*posts.Meta)(nil), "idx_post_meta_post_key", []string{"post_id", "meta_key"}},
			{(*menus.MenuItem)(nil), "idx_menu_items_menu_order", []string{"menu_id", "menu_order"}},
			{(*comments.Comment)(nil), "idx_comments_post_status", []string{"post_id", "status"}},
		}
		for _, index := range indexes {
			if _, err := tx.NewCreateIndex().
				Model(index.model).
				Index(index.name).
				Column(index.columns...).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("create index %s: %w", index.name, err)
			}
		}
		return nil
	})
}
