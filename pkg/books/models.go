package books

import (
	"math"
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatuses returns all valid reading status values.
func ValidStatuses() []string {
	return []string{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// IsValidStatus returns true if the status is valid.
func IsValidStatus(status string) bool {
	for _, valid := range ValidStatuses() {
		if status == valid {
			return true
		}
	}
	return false
}

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int        `bun:",pk,autoincrement" json:"id"`
	Title       string     `bun:",nullzero" json:"title"`
	Author      string     `bun:",nullzero" json:"author"`
	TotalPages  int        `bun:",nullzero" json:"total_pages"`
	CurrentPage int        `json:"current_page"`
	Status      string     `bun:",nullzero" json:"status"`
	CoverURL    *string    `json:"cover_url"`
	Genre       *string    `json:"genre"`
	Notes       *string    `json:"notes"`
	Rating      *float64   `json:"rating"`
	IsFavorite  bool       `json:"is_favorite"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Derived at the API boundary, never persisted.
	ProgressPercentage float64 `bun:"-" json:"progress_percentage"`
	PagesRemaining     int     `bun:"-" json:"pages_remaining"`
}

// RefreshDerived recomputes the response-only progress fields from
// current_page and total_pages.
func (b *Book) RefreshDerived() {
	b.ProgressPercentage = 0
	if b.TotalPages > 0 {
		ratio := float64(b.CurrentPage) / float64(b.TotalPages)
		b.ProgressPercentage = math.Round(ratio*10000) / 100
	}
	b.PagesRemaining = b.TotalPages - b.CurrentPage
	if b.PagesRemaining < 0 {
		b.PagesRemaining = 0
	}
}

// ApplyProgress sets current_page, clamped to [0, total_pages], and derives
// status and the lifecycle timestamps from the new position.
func (b *Book) ApplyProgress(currentPage int) {
	if currentPage > b.TotalPages {
		currentPage = b.TotalPages
	}
	if currentPage < 0 {
		currentPage = 0
	}
	b.CurrentPage = currentPage

	now := time.Now()
	switch {
	case currentPage == 0:
		b.Status = StatusNotStarted
		b.StartedAt = nil
		b.CompletedAt = nil
	case currentPage < b.TotalPages:
		b.Status = StatusInProgress
		if b.StartedAt == nil {
			b.StartedAt = &now
		}
		b.CompletedAt = nil
	default:
		b.Status = StatusCompleted
		if b.StartedAt == nil {
			b.StartedAt = &now
		}
		if b.CompletedAt == nil {
			b.CompletedAt = &now
		}
	}
}
