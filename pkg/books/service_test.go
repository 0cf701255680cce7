package books

import (
	"context"
	"testing"
	"time"

	"github.com/pagemarkapp/pagemark/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func seedBook(t *testing.T, db *bun.DB, book *Book) *Book {
	t.Helper()

	svc := NewService(db)
	require.NoError(t, svc.CreateBook(context.Background(), book))
	return book
}

func TestServiceCreateBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &Book{Title: "1984", Author: "George Orwell", TotalPages: 328}
	require.NoError(t, svc.CreateBook(ctx, book))

	assert.NotZero(t, book.ID)
	assert.Equal(t, StatusNotStarted, book.Status)
	assert.False(t, book.CreatedAt.IsZero())
	assert.True(t, book.CreatedAt.Equal(book.UpdatedAt))
	assert.Equal(t, float64(0), book.ProgressPercentage)
	assert.Equal(t, 328, book.PagesRemaining)

	t.Run("completed books land on the last page", func(tt *testing.T) {
		book := &Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 412, Status: StatusCompleted}
		require.NoError(tt, svc.CreateBook(ctx, book))

		assert.Equal(tt, 412, book.CurrentPage)
		assert.NotNil(tt, book.StartedAt)
		assert.NotNil(tt, book.CompletedAt)
	})

	t.Run("in progress books get a start timestamp", func(tt *testing.T) {
		book := &Book{Title: "Emma", Author: "Jane Austen", TotalPages: 474, Status: StatusInProgress, CurrentPage: 50}
		require.NoError(tt, svc.CreateBook(ctx, book))

		assert.NotNil(tt, book.StartedAt)
		assert.Nil(tt, book.CompletedAt)
	})
}

func TestServiceRetrieveBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created := seedBook(t, db, &Book{Title: "1984", Author: "George Orwell", TotalPages: 328, CurrentPage: 82, Status: StatusInProgress})

	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, book.ID)
	assert.Equal(t, float64(25), book.ProgressPercentage)
	assert.Equal(t, 246, book.PagesRemaining)

	t.Run("unknown id", func(tt *testing.T) {
		_, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: intPtr(9999)})
		require.Error(tt, err)
		assert.Equal(tt, errcodes.NotFound("Book"), err)
	})
}

func TestServiceListBooks(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first := seedBook(t, db, &Book{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", TotalPages: 180})
	second := seedBook(t, db, &Book{Title: "1984", Author: "George Orwell", TotalPages: 328, Status: StatusInProgress, CurrentPage: 100})
	third := seedBook(t, db, &Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 412, Status: StatusCompleted, IsFavorite: true})

	t.Run("orders by most recently updated", func(tt *testing.T) {
		// Touching the oldest book moves it to the front.
		first.UpdatedAt = time.Now().Add(time.Minute)
		_, err := db.NewUpdate().Model(first).Column("updated_at").WherePK().Exec(ctx)
		require.NoError(tt, err)

		books, err := svc.ListBooks(ctx, ListBooksOptions{})
		require.NoError(tt, err)
		require.Len(tt, books, 3)
		assert.Equal(tt, first.ID, books[0].ID)
	})

	t.Run("filters by status", func(tt *testing.T) {
		books, err := svc.ListBooks(ctx, ListBooksOptions{Status: strPtr(StatusCompleted)})
		require.NoError(tt, err)
		require.Len(tt, books, 1)
		assert.Equal(tt, third.ID, books[0].ID)
	})

	t.Run("search matches title and author case-insensitively", func(tt *testing.T) {
		books, err := svc.ListBooks(ctx, ListBooksOptions{Search: strPtr("GATSBY")})
		require.NoError(tt, err)
		require.Len(tt, books, 1)
		assert.Equal(tt, first.ID, books[0].ID)

		books, err = svc.ListBooks(ctx, ListBooksOptions{Search: strPtr("orwell")})
		require.NoError(tt, err)
		require.Len(tt, books, 1)
		assert.Equal(tt, second.ID, books[0].ID)
	})

	t.Run("favorites only", func(tt *testing.T) {
		books, err := svc.ListBooks(ctx, ListBooksOptions{FavoritesOnly: true})
		require.NoError(tt, err)
		require.Len(tt, books, 1)
		assert.Equal(tt, third.ID, books[0].ID)
	})

	t.Run("limit and offset with total", func(tt *testing.T) {
		books, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{Limit: intPtr(2)})
		require.NoError(tt, err)
		assert.Len(tt, books, 2)
		assert.Equal(tt, 3, total)

		books, total, err = svc.ListBooksWithTotal(ctx, ListBooksOptions{Limit: intPtr(2), Offset: intPtr(2)})
		require.NoError(tt, err)
		assert.Len(tt, books, 1)
		assert.Equal(tt, 3, total)
	})
}

func TestServiceUpdateBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := seedBook(t, db, &Book{Title: "1984", Author: "George Orwell", TotalPages: 328})

	t.Run("updates only the named columns", func(tt *testing.T) {
		book.Title = "Nineteen Eighty-Four"
		book.Author = "ignored"
		require.NoError(tt, svc.UpdateBook(ctx, book, UpdateBookOptions{Columns: []string{"title"}}))

		reloaded, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
		require.NoError(tt, err)
		assert.Equal(tt, "Nineteen Eighty-Four", reloaded.Title)
		assert.Equal(tt, "George Orwell", reloaded.Author)
		assert.True(tt, reloaded.UpdatedAt.After(reloaded.CreatedAt))
	})

	t.Run("no columns is a no-op", func(tt *testing.T) {
		before := book.UpdatedAt
		require.NoError(tt, svc.UpdateBook(ctx, book, UpdateBookOptions{}))
		assert.True(tt, book.UpdatedAt.Equal(before))
	})

	t.Run("unknown id", func(tt *testing.T) {
		missing := &Book{ID: 9999, Title: "nope"}
		err := svc.UpdateBook(ctx, missing, UpdateBookOptions{Columns: []string{"title"}})
		assert.Equal(tt, errcodes.NotFound("Book"), err)
	})
}

func TestServiceDeleteBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := seedBook(t, db, &Book{Title: "1984", Author: "George Orwell", TotalPages: 328})

	require.NoError(t, svc.DeleteBook(ctx, book.ID))

	_, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	assert.Equal(t, errcodes.NotFound("Book"), err)

	t.Run("unknown id", func(tt *testing.T) {
		err := svc.DeleteBook(ctx, 9999)
		assert.Equal(tt, errcodes.NotFound("Book"), err)
	})
}
