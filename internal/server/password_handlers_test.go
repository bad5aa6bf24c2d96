package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetTokenFromMail pulls the raw token out of the reset URL captured by the
// mailer stub.
func resetTokenFromMail(t *testing.T, mail *mailerStub) string {
	t.Helper()
	require.NotEmpty(t, mail.resetURL)
	u, err := url.Parse(mail.resetURL)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func TestSendResetLink(t *testing.T) {
	s, app, mr, mail := newTestServer(t)
	registerUser(t, s, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/password/reset-link", "",
		map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Password reset link sent", body.Message)

	assert.Equal(t, "alice@example.com", mail.to)
	assert.Equal(t, "Alice", mail.name)
	assert.Contains(t, mail.resetURL, "reset-password?token=")

	// Only a hash of the token is stored, never the token itself.
	stored, err := mr.Get("pwreset:alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, resetTokenFromMail(t, mail), stored)
	assert.Len(t, stored, 64)
}

func TestSendResetLink_Errors(t *testing.T) {
	s, app, _, _ := newTestServer(t)
	registerUser(t, s, "Alice", "alice@example.com")

	tests := []struct {
		name           string
		email          string
		expectedStatus int
	}{
		{"unknown email", "nobody@example.com", http.StatusNotFound},
		{"empty email", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/password/reset-link", "",
				map[string]string{"email": tt.email})
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSendResetLink_MailFailure(t *testing.T) {
	s, app, _, mail := newTestServer(t)
	registerUser(t, s, "Alice", "alice@example.com")
	mail.err = assert.AnError

	resp := doJSON(t, app, http.MethodPost, "/api/password/reset-link", "",
		map[string]string{"email": "alice@example.com"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	s, app, _, mail := newTestServer(t)
	registerUser(t, s, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/password/reset-link", "",
		map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
	token := resetTokenFromMail(t, mail)

	resp = doJSON(t, app, http.MethodPost, "/api/password/reset", "", map[string]string{
		"email":                 "alice@example.com",
		"token":                 token,
		"password":              "brand-new-pass",
		"password_confirmation": "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Password has been reset", body.Message)

	// Old password no longer works, new one does.
	resp = doJSON(t, app, http.MethodPost, "/api/authenticate/login", "",
		map[string]string{"email": "alice@example.com", "password": "password123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/authenticate/login", "",
		map[string]string{"email": "alice@example.com", "password": "brand-new-pass"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Tokens are single-use.
	resp = doJSON(t, app, http.MethodPost, "/api/password/reset", "", map[string]string{
		"email":                 "alice@example.com",
		"token":                 token,
		"password":              "another-new-pass",
		"password_confirmation": "another-new-pass",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestResetPassword_Errors(t *testing.T) {
	s, app, _, mail := newTestServer(t)
	registerUser(t, s, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/password/reset-link", "",
		map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
	token := resetTokenFromMail(t, mail)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "wrong token",
			body: map[string]string{
				"email": "alice@example.com", "token": "bogus-token",
				"password": "brand-new-pass", "password_confirmation": "brand-new-pass",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "no token issued for email",
			body: map[string]string{
				"email": "other@example.com", "token": token,
				"password": "brand-new-pass", "password_confirmation": "brand-new-pass",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "confirmation mismatch",
			body: map[string]string{
				"email": "alice@example.com", "token": token,
				"password": "brand-new-pass", "password_confirmation": "different",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "password too short",
			body: map[string]string{
				"email": "alice@example.com", "token": token,
				"password": "short", "password_confirmation": "short",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/password/reset", "", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	// None of the failed attempts consumed the token.
	resp = doJSON(t, app, http.MethodPost, "/api/password/reset", "", map[string]string{
		"email": "alice@example.com", "token": token,
		"password": "brand-new-pass", "password_confirmation": "brand-new-pass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
