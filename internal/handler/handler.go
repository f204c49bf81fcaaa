package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 20

// toHTTPError maps service error kinds onto HTTP statuses.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnsupportedState):
		return echo.NewHTTPError(http.StatusNotImplemented, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}

func actingUser(c echo.Context) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "acting user is required")
	}
	return id, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// parsePage reads from/size, defaulting to 0 and 20.
func parsePage(c echo.Context) (repository.Page, error) {
	page := repository.Page{Offset: 0, Limit: defaultPageSize}

	if raw := c.QueryParam("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return page, echo.NewHTTPError(http.StatusBadRequest, "from must be a non-negative integer")
		}
		page.Offset = from
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return page, echo.NewHTTPError(http.StatusBadRequest, "size must be a positive integer")
		}
		page.Limit = size
	}
	return page, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
