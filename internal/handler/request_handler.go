package handler

import (
	"net/http"

	"github.com/Eursukkul/shareit/internal/dto"
	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	svc        service.RequestService
	userHeader string
}

func NewRequestHandler(svc service.RequestService, userHeader string) *RequestHandler {
	return &RequestHandler{svc: svc, userHeader: userHeader}
}

func (h *RequestHandler) RegisterRoutes(e *echo.Echo) {
	requests := e.Group("/requests", middleware.RequireUser(h.userHeader))
	requests.POST("", h.CreateRequest)
	requests.GET("", h.ListOwn)
	requests.GET("/all", h.ListOthers)
	requests.GET("/:id", h.GetRequest)
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	request, err := h.svc.CreateRequest(c.Request().Context(), userID, req.Description)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToItemRequestResponse(request))
}

func (h *RequestHandler) ListOwn(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponses(requests))
}

func (h *RequestHandler) ListOthers(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.ListOthers(c.Request().Context(), userID, page)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponses(requests))
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	requestID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	request, err := h.svc.GetRequest(c.Request().Context(), requestID, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponse(request))
}
