package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCookies() CookieConfig {
	return CookieConfig{Secure: true, AccessTTL: 15 * time.Minute, RefreshTTL: 240 * time.Hour}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func multipartRegister(t *testing.T, withAvatar bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("fullName", "Alice Liddell"))
	require.NoError(t, writer.WriteField("email", "alice@x.com"))
	require.NoError(t, writer.WriteField("username", "alice"))
	require.NoError(t, writer.WriteField("password", "P@ss1"))
	if withAvatar {
		part, err := writer.CreateFormFile("avatar", "me.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestRegister_Created(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	uploadDir := t.TempDir()
	handler := NewSessionHandler(mockUseCase, testCookies(), uploadDir)

	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	var avatarSeen bool
	mockUseCase.On("Register", mock.Anything, mock.MatchedBy(func(in usecase.RegisterInput) bool {
		return in.Username == "alice" && in.FullName == "Alice Liddell" && in.AvatarPath != "" && in.CoverImagePath == ""
	})).Run(func(args mock.Arguments) {
		_, err := os.Stat(args.Get(1).(usecase.RegisterInput).AvatarPath)
		avatarSeen = err == nil
	}).Return(&entity.PublicUser{ID: "u-1", Username: "alice", WatchHistory: []string{}}, nil)

	body, contentType := multipartRegister(t, true)
	req, _ := http.NewRequest(http.MethodPost, "/users/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, avatarSeen)
	assert.NotContains(t, rec.Body.String(), "password")

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	mockUseCase.AssertExpectations(t)
}

func TestRegister_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Validation("avatar file is required"), http.StatusBadRequest},
		{"conflict", apperr.Conflict("user with email or username already exists"), http.StatusConflict},
		{"upload", apperr.Upload("failed to upload avatar", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockUseCase := new(MockSessionUseCase)
			handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
			router := setupTestRouter()
			router.POST("/users/register", handler.Register)

			mockUseCase.On("Register", mock.Anything, mock.Anything).Return(nil, tc.err)

			body, contentType := multipartRegister(t, false)
			req, _ := http.NewRequest(http.MethodPost, "/users/register", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRegister_RejectsNonImageAvatar(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("avatar", "script.sh")
	require.NoError(t, err)
	_, _ = part.Write([]byte("#!/bin/sh"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/users/register", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogin_SetsCookies(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, usecase.LoginInput{Username: "alice", Password: "P@ss1"}).Return(&entity.Session{
		User:      &entity.PublicUser{ID: "u-1", Username: "alice"},
		TokenPair: entity.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"},
	}, nil)

	reqBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "P@ss1"})
	req, _ := http.NewRequest(http.MethodPost, "/users/login", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	access := findCookie(rec, "accessToken")
	require.NotNil(t, access)
	assert.Equal(t, "access-1", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)

	refresh := findCookie(rec, "refreshToken")
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-1", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.True(t, refresh.Secure)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access-1", resp["access_token"])
	assert.Equal(t, "refresh-1", resp["refresh_token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperr.Auth(apperr.CauseWrongPassword, "invalid user credentials", nil))

	reqBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	req, _ := http.NewRequest(http.MethodPost, "/users/login", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "WrongPassword", resp["cause"])
	assert.Nil(t, findCookie(rec, "accessToken"))
}

func TestLogin_UnknownUser(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, mock.Anything).Return(nil, apperr.NotFound("user does not exist"))

	req, _ := http.NewRequest(http.MethodPost, "/users/login", bytes.NewBufferString(`{"email":"nobody@x.com","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout_ClearsCookies(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/logout", asUser("u-1", handler.Logout))

	mockUseCase.On("Logout", mock.Anything, "u-1").Return(nil)

	req, _ := http.NewRequest(http.MethodPost, "/users/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	access := findCookie(rec, "accessToken")
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.True(t, access.MaxAge < 0)
	mockUseCase.AssertExpectations(t)
}

func TestLogout_Anonymous(t *testing.T) {
	handler := NewSessionHandler(new(MockSessionUseCase), testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/logout", handler.Logout)

	req, _ := http.NewRequest(http.MethodPost, "/users/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshToken_FromCookie(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/refresh-token", handler.RefreshToken)

	mockUseCase.On("RefreshSession", mock.Anything, "refresh-1").
		Return(&entity.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	refresh := findCookie(rec, "refreshToken")
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-2", refresh.Value)
}

func TestRefreshToken_FromBody(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/refresh-token", handler.RefreshToken)

	mockUseCase.On("RefreshSession", mock.Anything, "refresh-body").
		Return(&entity.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/users/refresh-token", bytes.NewBufferString(`{"refreshToken":"refresh-body"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUseCase.AssertExpectations(t)
}

func TestRefreshToken_Missing(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/refresh-token", handler.RefreshToken)

	mockUseCase.On("RefreshSession", mock.Anything, "").
		Return(nil, apperr.Auth(apperr.CauseMissing, "unauthorized request", nil))

	req, _ := http.NewRequest(http.MethodPost, "/users/refresh-token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Missing", resp["cause"])
}

func TestChangePassword_SameAsOld(t *testing.T) {
	mockUseCase := new(MockSessionUseCase)
	handler := NewSessionHandler(mockUseCase, testCookies(), t.TempDir())
	router := setupTestRouter()
	router.POST("/users/change-password", asUser("u-1", handler.ChangePassword))

	mockUseCase.On("ChangePassword", mock.Anything, "u-1", "P@ss1", "P@ss1").
		Return(apperr.Validation("new password must be different from the old password"))

	req, _ := http.NewRequest(http.MethodPost, "/users/change-password", bytes.NewBufferString(`{"old_password":"P@ss1","new_password":"P@ss1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
