package stats

import (
	"context"
	"math"

	"github.com/pagemarkapp/pagemark/pkg/books"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Stats is the aggregate view over the whole shelf.
type Stats struct {
	TotalBooks      int     `json:"total_books"`
	BooksInProgress int     `json:"books_in_progress"`
	BooksCompleted  int     `json:"books_completed"`
	BooksNotStarted int     `json:"books_not_started"`
	TotalPagesRead  int     `json:"total_pages_read"`
	AverageProgress float64 `json:"average_progress"`
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// RetrieveStats computes all aggregates in a single store-side pass.
func (svc *Service) RetrieveStats(ctx context.Context) (*Stats, error) {
	var row struct {
		Total       int
		NotStarted  int
		InProgress  int
		Completed   int
		PagesRead   int
		ProgressSum float64
	}

	err := svc.db.
		NewSelect().
		Model((*books.Book)(nil)).
		ColumnExpr("count(*) AS total").
		ColumnExpr("coalesce(sum(b.status = ?), 0) AS not_started", books.StatusNotStarted).
		ColumnExpr("coalesce(sum(b.status = ?), 0) AS in_progress", books.StatusInProgress).
		ColumnExpr("coalesce(sum(b.status = ?), 0) AS completed", books.StatusCompleted).
		ColumnExpr("coalesce(sum(b.current_page), 0) AS pages_read").
		ColumnExpr("coalesce(sum(CASE WHEN b.total_pages > 0 THEN b.current_page * 100.0 / b.total_pages ELSE 0 END), 0.0) AS progress_sum").
		Scan(ctx, &row)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	stats := &Stats{
		TotalBooks:      row.Total,
		BooksInProgress: row.InProgress,
		BooksCompleted:  row.Completed,
		BooksNotStarted: row.NotStarted,
		TotalPagesRead:  row.PagesRead,
	}

	// 0 for an empty shelf, no division by zero.
	if row.Total > 0 {
		stats.AverageProgress = math.Round(row.ProgressSum/float64(row.Total)*100) / 100
	}

	return stats, nil
}
