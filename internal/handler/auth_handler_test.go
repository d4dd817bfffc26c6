package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name            string
		body            any
		expectedStatus  int
		expectedCode    string
		expectedSession model.Session
	}{
		{
			name:            "Admin credentials",
			body:            credentialsRequest{Username: "admin", Password: "admin"},
			expectedStatus:  http.StatusOK,
			expectedSession: model.Session{IsAuthenticated: true, IsAdmin: true, Username: "admin"},
		},
		{
			name:           "Wrong password",
			body:           credentialsRequest{Username: "admin", Password: "nope"},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeInvalidCredentials,
		},
		{
			name:           "Missing password",
			body:           credentialsRequest{Username: "admin"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeMissingField,
		},
		{
			name:           "Invalid JSON",
			body:           "[",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			h := NewAuthHandler(f.auth, zerolog.Nop())

			w := httptest.NewRecorder()
			h.Login(w, newRequest(t, http.MethodPost, "/api/auth/login", tt.body, "", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeBody[model.ErrorResponse](t, w).Error)
				assert.False(t, f.auth.Session().IsAuthenticated)
				return
			}
			assert.Equal(t, tt.expectedSession, decodeBody[model.Session](t, w))
		})
	}
}

func TestAuthHandler_RegisterAndLogout(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth, zerolog.Nop())

	w := httptest.NewRecorder()
	h.Register(w, newRequest(t, http.MethodPost, "/api/auth/register", credentialsRequest{Username: "admin", Password: "x"}, "", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, model.ErrCodeUsernameTaken, decodeBody[model.ErrorResponse](t, w).Error)

	w = httptest.NewRecorder()
	h.Register(w, newRequest(t, http.MethodPost, "/api/auth/register", credentialsRequest{Username: "newuser", Password: "pw"}, "", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.Session{IsAuthenticated: true, Username: "newuser"}, decodeBody[model.Session](t, w))

	w = httptest.NewRecorder()
	h.Session(w, newRequest(t, http.MethodGet, "/api/auth/session", nil, "", nil))
	assert.Equal(t, model.Username("newuser"), decodeBody[model.Session](t, w).Username)

	w = httptest.NewRecorder()
	h.Logout(w, newRequest(t, http.MethodPost, "/api/auth/logout", nil, "", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.Session{}, decodeBody[model.Session](t, w))
}
