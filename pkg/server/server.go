package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pagemarkapp/pagemark/pkg/binder"
	"github.com/pagemarkapp/pagemark/pkg/books"
	"github.com/pagemarkapp/pagemark/pkg/config"
	"github.com/pagemarkapp/pagemark/pkg/errcodes"
	"github.com/pagemarkapp/pagemark/pkg/stats"
	"github.com/pagemarkapp/pagemark/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	// An empty allow-list means no cross-origin access; Echo's CORS middleware
	// would turn an empty AllowOrigins into a wildcard.
	if len(cfg.CORSAllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSAllowedOrigins,
		}))
	}
	e.Use(middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitPerSecond)),
	))

	health.RegisterRoutes(e)
	e.GET("/", info)

	books.RegisterRoutes(e, db)
	stats.RegisterRoutes(e, db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Pagemark API",
		"status":  "running",
		"version": version.Version,
	})
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
