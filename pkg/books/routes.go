package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		bookService: NewService(db),
	}

	g := e.Group("/books")

	g.GET("", h.list)
	g.GET("/favorites", h.listFavorites)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.PUT("/:id", h.update)
	g.PATCH("/:id/progress", h.updateProgress)
	g.DELETE("/:id", h.remove)
}
