package stats

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pagemarkapp/pagemark/pkg/books"
	"github.com/pagemarkapp/pagemark/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedBook(t *testing.T, db *bun.DB, book *books.Book) {
	t.Helper()

	require.NoError(t, books.NewService(db).CreateBook(context.Background(), book))
}

func TestRetrieveStatsEmpty(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	stats, err := svc.RetrieveStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalBooks)
	assert.Equal(t, 0, stats.BooksInProgress)
	assert.Equal(t, 0, stats.BooksCompleted)
	assert.Equal(t, 0, stats.BooksNotStarted)
	assert.Equal(t, 0, stats.TotalPagesRead)
	assert.Equal(t, float64(0), stats.AverageProgress)
}

func TestRetrieveStats(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	seedBook(t, db, &books.Book{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", TotalPages: 180})
	seedBook(t, db, &books.Book{Title: "1984", Author: "George Orwell", TotalPages: 328, Status: books.StatusInProgress, CurrentPage: 82})
	seedBook(t, db, &books.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 412, Status: books.StatusCompleted})

	stats, err := svc.RetrieveStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 1, stats.BooksNotStarted)
	assert.Equal(t, 1, stats.BooksInProgress)
	assert.Equal(t, 1, stats.BooksCompleted)
	// 0 + 82 + 412, the completed book is forced to its last page
	assert.Equal(t, 494, stats.TotalPagesRead)
	// (0% + 25% + 100%) / 3
	assert.Equal(t, 41.67, stats.AverageProgress)
}
