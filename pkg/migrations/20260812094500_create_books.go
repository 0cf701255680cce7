package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				title TEXT NOT NULL,
				author TEXT NOT NULL,
				total_pages INTEGER NOT NULL,
				current_page INTEGER NOT NULL DEFAULT 0,
				status TEXT NOT NULL DEFAULT 'not_started',
				cover_url TEXT,
				genre TEXT,
				notes TEXT,
				rating REAL,
				is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
				started_at TIMESTAMPTZ,
				completed_at TIMESTAMPTZ
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_status ON books (status)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_is_favorite ON books (is_favorite)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_updated_at ON books (updated_at)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DROP TABLE books`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
