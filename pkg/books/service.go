package books

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"github.com/pagemarkapp/pagemark/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

type ListBooksOptions struct {
	Limit  *int
	Offset *int
	Status *string
	Search *string

	// FavoritesOnly restricts the listing to books with is_favorite set.
	FavoritesOnly bool

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBook(ctx context.Context, book *Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	if book.Status == "" {
		book.Status = StatusNotStarted
	}

	// Books created mid-read or finished get their lifecycle timestamps up
	// front; a completed book is always at its last page.
	switch book.Status {
	case StatusInProgress:
		if book.StartedAt == nil {
			book.StartedAt = &now
		}
	case StatusCompleted:
		if book.StartedAt == nil {
			book.StartedAt = &now
		}
		if book.CompletedAt == nil {
			book.CompletedAt = &now
		}
		book.CurrentPage = book.TotalPages
	}

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	book.RefreshDerived()
	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*Book, error) {
	book := &Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	book.RefreshDerived()
	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*Book, int, error) {
	books := []*Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.updated_at DESC", "b.id DESC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.Status != nil {
		q = q.Where("b.status = ?", *opts.Status)
	}
	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + strings.ToLower(*opts.Search) + "%"
		q = q.Where("(lower(b.title) LIKE ? OR lower(b.author) LIKE ?)", pattern, pattern)
	}
	if opts.FavoritesOnly {
		q = q.Where("b.is_favorite")
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	for _, book := range books {
		book.RefreshDerived()
	}

	return books, total, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	// Update updated_at.
	now := time.Now()
	book.UpdatedAt = now
	columns := opts.Columns
	if !slices.Contains(columns, "updated_at") {
		columns = append(columns, "updated_at")
	}

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Book")
	}

	book.RefreshDerived()
	return nil
}

func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*Book)(nil)).
		Where("b.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}
