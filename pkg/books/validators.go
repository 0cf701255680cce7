package books

type ListBooksQuery struct {
	Skip   int     `query:"skip" json:"skip,omitempty" validate:"min=0"`
	Limit  *int    `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=100"`
	Status *string `query:"status" json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreateBookPayload struct {
	Title       string   `json:"title" mod:"trim" validate:"required,max=255"`
	Author      string   `json:"author" mod:"trim" validate:"required,max=255"`
	TotalPages  int      `json:"total_pages" validate:"required,min=1"`
	CurrentPage int      `json:"current_page" validate:"min=0,ltefield=TotalPages"`
	Status      string   `json:"status" default:"not_started" validate:"oneof=not_started in_progress completed"`
	CoverURL    *string  `json:"cover_url,omitempty" validate:"omitempty,url,max=500"`
	Genre       *string  `json:"genre,omitempty" validate:"omitempty,max=100"`
	Notes       *string  `json:"notes,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	IsFavorite  bool     `json:"is_favorite"`
}

// UpdateBookPayload accepts any subset of mutable fields; only provided fields
// are applied.
type UpdateBookPayload struct {
	Title       *string  `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
	Author      *string  `json:"author,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
	TotalPages  *int     `json:"total_pages,omitempty" validate:"omitempty,min=1"`
	CurrentPage *int     `json:"current_page,omitempty" validate:"omitempty,min=0"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed"`
	CoverURL    *string  `json:"cover_url,omitempty" validate:"omitempty,url,max=500"`
	Genre       *string  `json:"genre,omitempty" validate:"omitempty,max=100"`
	Notes       *string  `json:"notes,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	IsFavorite  *bool    `json:"is_favorite,omitempty"`
}

type UpdateProgressPayload struct {
	CurrentPage *int `json:"current_page" validate:"required,min=0"`
}
