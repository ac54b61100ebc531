package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/models"
)

func signupBody(email string) map[string]any {
	return map[string]any{
		"email":     email,
		"password":  "secret123",
		"firstName": "Eva",
		"lastName":  "Nagy",
		"username":  email,
	}
}

func TestSignup(t *testing.T) {
	router, db, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPost, "/auth/signup", signupBody("a@x.com"), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["authToken"])

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "a@x.com").Error)
	// The stored username mirrors the email and the password is hashed.
	assert.Equal(t, "a@x.com", user.Username)
	assert.NotEqual(t, "secret123", user.Password)
	assert.False(t, user.IsAdmin)
}

func TestSignupRejectsExistingEmail(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPost, "/auth/signup", signupBody("a@x.com"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/auth/signup", signupBody("a@x.com"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestSignupValidation(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	body := signupBody("a@x.com")
	body["password"] = "short"
	w := performRequest(router, http.MethodPost, "/auth/signup", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = signupBody("not-an-email")
	w = performRequest(router, http.MethodPost, "/auth/signup", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPost, "/auth/signup", signupBody("a@x.com"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/auth/login",
		map[string]any{"username": "a@x.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["authToken"])
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPost, "/auth/signup", signupBody("a@x.com"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown username produce the same response.
	w = performRequest(router, http.MethodPost, "/auth/login",
		map[string]any{"username": "a@x.com", "password": "wrong-password"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])

	w = performRequest(router, http.MethodPost, "/auth/login",
		map[string]any{"username": "ghost@x.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
}

func TestGetUsersIsAdminOnly(t *testing.T) {
	router, db, cfg := setupTestEnv(t)
	staff := staffToken(t, db, cfg, false)
	admin := staffToken(t, db, cfg, true)

	w := performRequest(router, http.MethodGet, "/auth/users", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodGet, "/auth/users", nil, bearer(staff))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(router, http.MethodGet, "/auth/users", nil, bearer(admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}
