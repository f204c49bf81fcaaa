package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/shareit/internal/dto"
	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Handler(t *testing.T) {
	svc := &mockUserService{
		createFn: func(ctx context.Context, name, email string) (*models.User, error) {
			return &models.User{ID: 1, Name: name, Email: email}, nil
		},
	}

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ann","email":"ann@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewUserHandler(svc).CreateUser(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ann@example.com", resp.Email)
}

func TestCreateUser_Handler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"invalid email", `{"name":"Ann","email":"not-an-email"}`, nil, http.StatusBadRequest},
		{"missing name", `{"email":"ann@example.com"}`, nil, http.StatusBadRequest},
		{"duplicate", `{"name":"Ann","email":"ann@example.com"}`, service.ErrEmailTaken, http.StatusConflict},
		{"malformed json", `{"name":`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUserService{
				createFn: func(ctx context.Context, name, email string) (*models.User, error) {
					return nil, tt.svcErr
				},
			}

			e := newEcho()
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := NewUserHandler(svc).CreateUser(c)

			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, he.Code)
		})
	}
}

func TestUpdateUser_Handler_Partial(t *testing.T) {
	var got service.UpdateUserInput
	svc := &mockUserService{
		updateFn: func(ctx context.Context, id uint, in service.UpdateUserInput) (*models.User, error) {
			got = in
			return &models.User{ID: id, Name: *in.Name, Email: "ann@example.com"}, nil
		},
	}

	e := newEcho()
	req := httptest.NewRequest(http.MethodPatch, "/users/1", strings.NewReader(`{"name":"Annie"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := NewUserHandler(svc).UpdateUser(c)

	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Annie", *got.Name)
	assert.Nil(t, got.Email)
}

func TestGetUser_Handler_NotFound(t *testing.T) {
	svc := &mockUserService{
		getFn: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, service.ErrUserNotFound
		},
	}

	e := newEcho()
	NewUserHandler(svc).RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/users/9", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user not found", resp.Message)
}

func TestDeleteUser_Handler(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(ctx context.Context, id uint) error { return nil },
	}

	e := newEcho()
	NewUserHandler(svc).RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
