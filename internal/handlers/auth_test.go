package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "successful signup",
			body:       map[string]interface{}{"email": "alice@example.com", "password": "TestPass123!", "name": "Alice"},
			wantStatus: http.StatusCreated,
			wantMsg:    "User created successfully",
		},
		{
			name:       "missing password",
			body:       map[string]interface{}{"email": "bob@example.com"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email and password are required",
		},
		{
			name:       "missing email",
			body:       map[string]interface{}{"password": "TestPass123!"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email and password are required",
		},
		{
			name:       "duplicate email",
			body:       map[string]interface{}{"email": "alice@example.com", "password": "OtherPass456!"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "User already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", tt.body)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, w)["message"])
		})
	}
}

func TestSignupReturnsUserShape(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"email":    "carol@example.com",
		"password": "TestPass123!",
		"name":     "Carol",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "carol@example.com", user["email"])
	assert.Equal(t, "Carol", user["name"])
}

func TestLogin(t *testing.T) {
	r, conn := setupRouter(t)
	user := createTestUser(t, conn, "Alice", "alice@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email":    "alice@example.com",
			"password": "TestPass123!",
		})

		require.Equal(t, http.StatusOK, w.Code)

		got := decodeBody(t, w)["user"].(map[string]interface{})
		assert.Equal(t, user.ID, got["id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email":    "alice@example.com",
			"password": "WrongPass123!",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "TestPass123!",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
	})
}

func TestMe(t *testing.T) {
	r, conn := setupRouter(t)
	user := createTestUser(t, conn, "Alice", "alice@example.com")

	t.Run("authenticated", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/auth/me", tokenFor(t, user), nil)

		require.Equal(t, http.StatusOK, w.Code)

		got := decodeBody(t, w)["user"].(map[string]interface{})
		assert.Equal(t, user.ID, got["id"])
	})

	t.Run("no token", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/auth/me", "", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
