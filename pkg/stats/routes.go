package stats

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		statsService: NewService(db),
	}

	e.GET("/stats", h.retrieve)
}
