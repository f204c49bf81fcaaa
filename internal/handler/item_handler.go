package handler

import (
	"net/http"

	"github.com/Eursukkul/shareit/internal/dto"
	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	svc        service.ItemService
	userHeader string
}

func NewItemHandler(svc service.ItemService, userHeader string) *ItemHandler {
	return &ItemHandler{svc: svc, userHeader: userHeader}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/items/search", h.Search)

	items := e.Group("/items", middleware.RequireUser(h.userHeader))
	items.POST("", h.CreateItem)
	items.GET("", h.ListOwnItems)
	items.GET("/:id", h.GetItem)
	items.PATCH("/:id", h.UpdateItem)
	items.DELETE("/:id", h.DeleteItem)
	items.POST("/:id/comment", h.CreateComment)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.svc.CreateItem(c.Request().Context(), userID, service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), itemID, userID, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.svc.GetItem(c.Request().Context(), itemID, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDetailResponse(view))
}

func (h *ItemHandler) ListOwnItems(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	views, err := h.svc.ListByOwner(c.Request().Context(), userID, page)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ItemDetailResponse, len(views))
	for i := range views {
		resp[i] = dto.ToItemDetailResponse(&views[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) Search(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	items, err := h.svc.Search(c.Request().Context(), c.QueryParam("text"), page)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ItemResponse, len(items))
	for i := range items {
		resp[i] = dto.ToItemResponse(&items[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteItem(c.Request().Context(), itemID, userID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) CreateComment(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.svc.CreateComment(c.Request().Context(), itemID, userID, req.Text)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}
