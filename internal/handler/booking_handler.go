package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Eursukkul/shareit/internal/dto"
	"github.com/Eursukkul/shareit/internal/export"
	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BookingHandler struct {
	svc        service.BookingService
	userHeader string
}

func NewBookingHandler(svc service.BookingService, userHeader string) *BookingHandler {
	return &BookingHandler{svc: svc, userHeader: userHeader}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/bookings", middleware.RequireUser(h.userHeader))
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListForBooker)
	bookings.GET("/owner", h.ListForOwner)
	bookings.GET("/owner/export", h.ExportForOwner)
	bookings.GET("/:id", h.GetBooking)
	bookings.PATCH("/:id", h.Approve)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), userID, service.CreateBookingInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Approve(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved must be true or false")
	}

	booking, err := h.svc.Approve(c.Request().Context(), bookingID, userID, approved)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), bookingID, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListForBooker(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListForBooker(c.Request().Context(), userID, c.QueryParam("state"), page)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListForOwner(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListForOwner(c.Request().Context(), userID, c.QueryParam("state"), page)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

// ExportForOwner returns every matching owner booking as an XLSX workbook.
func (h *BookingHandler) ExportForOwner(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListForOwner(c.Request().Context(), userID, c.QueryParam("state"), repository.Page{})
	if err != nil {
		return toHTTPError(err)
	}

	var buf bytes.Buffer
	if err := export.WriteBookings(&buf, bookings); err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="bookings_owner_%d.xlsx"`, userID))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
