package books

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pagemarkapp/pagemark/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  params.Limit,
		Offset: &params.Skip,
		Status: params.Status,
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// The body stays a bare array; the unpaginated total rides in a header.
	c.Response().Header().Set("X-Total-Count", strconv.Itoa(total))

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) listFavorites(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		FavoritesOnly: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &Book{
		Title:       params.Title,
		Author:      params.Author,
		TotalPages:  params.TotalPages,
		CurrentPage: params.CurrentPage,
		Status:      params.Status,
		CoverURL:    params.CoverURL,
		Genre:       params.Genre,
		Notes:       params.Notes,
		Rating:      params.Rating,
		IsFavorite:  params.IsFavorite,
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// current_page has to stay within the book's page count, including when
	// total_pages changes in the same request.
	totalPages := book.TotalPages
	if params.TotalPages != nil {
		totalPages = *params.TotalPages
	}
	currentPage := book.CurrentPage
	if params.CurrentPage != nil {
		currentPage = *params.CurrentPage
	}
	if currentPage > totalPages {
		return errcodes.ValidationError(`"current_page" must be less than or equal to total_pages`)
	}

	// Keep track of what's been changed.
	opts := UpdateBookOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != book.Title {
		book.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Author != nil && *params.Author != book.Author {
		book.Author = *params.Author
		opts.Columns = append(opts.Columns, "author")
	}
	if params.TotalPages != nil && *params.TotalPages != book.TotalPages {
		book.TotalPages = *params.TotalPages
		opts.Columns = append(opts.Columns, "total_pages")
	}
	if params.CoverURL != nil {
		book.CoverURL = params.CoverURL
		opts.Columns = append(opts.Columns, "cover_url")
	}
	if params.Genre != nil {
		book.Genre = params.Genre
		opts.Columns = append(opts.Columns, "genre")
	}
	if params.Notes != nil {
		book.Notes = params.Notes
		opts.Columns = append(opts.Columns, "notes")
	}
	if params.Rating != nil {
		book.Rating = params.Rating
		opts.Columns = append(opts.Columns, "rating")
	}
	if params.IsFavorite != nil && *params.IsFavorite != book.IsFavorite {
		book.IsFavorite = *params.IsFavorite
		opts.Columns = append(opts.Columns, "is_favorite")
	}

	applyStatusChange(book, &params, &opts)

	// touch updated_at even when only derived state changed
	if len(opts.Columns) == 0 && (params.Title != nil || params.Author != nil ||
		params.TotalPages != nil || params.CurrentPage != nil || params.Status != nil ||
		params.CoverURL != nil || params.Genre != nil || params.Notes != nil ||
		params.Rating != nil || params.IsFavorite != nil) {
		opts.Columns = append(opts.Columns, "updated_at")
	}

	// Update the model.
	err = h.bookService.UpdateBook(ctx, book, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

// applyStatusChange applies an explicit status change or, when only
// current_page moved, derives the status from the new position the same way
// the progress endpoint does.
func applyStatusChange(book *Book, params *UpdateBookPayload, opts *UpdateBookOptions) {
	now := time.Now()

	if params.Status != nil && *params.Status != book.Status {
		previous := book.Status
		book.Status = *params.Status
		opts.Columns = append(opts.Columns, "status")

		if book.Status == StatusInProgress && previous != StatusInProgress && book.StartedAt == nil {
			book.StartedAt = &now
			opts.Columns = append(opts.Columns, "started_at")
		}
		if book.Status == StatusCompleted && previous != StatusCompleted {
			book.CompletedAt = &now
			opts.Columns = append(opts.Columns, "completed_at")
			// Marking a book completed without an explicit page lands it on
			// the last page.
			if params.CurrentPage == nil && book.CurrentPage != book.TotalPages {
				book.CurrentPage = book.TotalPages
				opts.Columns = append(opts.Columns, "current_page")
			}
		}
	}

	if params.CurrentPage == nil {
		return
	}
	if *params.CurrentPage != book.CurrentPage {
		book.CurrentPage = *params.CurrentPage
		opts.Columns = append(opts.Columns, "current_page")
	}
	if params.Status != nil {
		return
	}

	status := StatusInProgress
	switch {
	case book.CurrentPage == 0:
		status = StatusNotStarted
	case book.CurrentPage >= book.TotalPages:
		status = StatusCompleted
	}
	if status == book.Status {
		return
	}

	book.Status = status
	opts.Columns = append(opts.Columns, "status")
	switch status {
	case StatusInProgress, StatusCompleted:
		if book.StartedAt == nil {
			book.StartedAt = &now
			opts.Columns = append(opts.Columns, "started_at")
		}
		if status == StatusCompleted && book.CompletedAt == nil {
			book.CompletedAt = &now
			opts.Columns = append(opts.Columns, "completed_at")
		}
	}
}

func (h *handler) updateProgress(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := UpdateProgressPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Clamps to [0, total_pages] and derives status plus the lifecycle
	// timestamps.
	book.ApplyProgress(*params.CurrentPage)

	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{
		Columns: []string{"current_page", "status", "started_at", "completed_at"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
