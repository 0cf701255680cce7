package stats

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	statsService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.statsService.RetrieveStats(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, s))
}
