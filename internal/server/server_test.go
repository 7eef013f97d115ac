package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsync/fitsync/internal/auth"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppName:        "FitSync",
		AppEnv:         "test",
		Port:           "0",
		LogLevel:       "error",
		JWTSecret:      "test-secret",
		LoginRateLimit: 5,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(testConfig(), nil, nil, logging.Discard())
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.app.Test(req, 5000)
	require.NoError(t, err)

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	}
	return resp, payload
}

func register(t *testing.T, srv *Server, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/register", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterIssuesToken(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "a@x.com", "Abc12345!")
}

func TestRegisterDuplicate(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "a@x.com", "Abc12345!")

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/register", "",
		map[string]string{"email": "a@x.com", "password": "Abc12345!"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email already registered", body["error"])
}

func TestRegisterMissingFields(t *testing.T) {
	srv := newTestServer(t)
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/register", "",
		map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email and password are required", body["error"])
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "a@x.com", "Abc12345!")

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "Abc12345!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, body = doJSON(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	resp, body = doJSON(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "ghost@x.com", "password": "Abc12345!"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestProfileAuthFailures(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access token required", body["error"])

	resp, body = doJSON(t, srv, http.MethodGet, "/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["error"])

	// Structurally valid token signed with a different secret.
	foreign, err := auth.NewTokens("other-secret").Issue("user-1")
	require.NoError(t, err)
	resp, body = doJSON(t, srv, http.MethodGet, "/profile", foreign, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestProfileNotFound(t *testing.T) {
	srv := newTestServer(t)

	// Valid signature, unknown subject: the record does not exist.
	orphan, err := auth.NewTokens("test-secret").Issue("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	resp, body := doJSON(t, srv, http.MethodGet, "/profile", orphan, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Profile not found", body["error"])
}

func TestPutProfileRequiresProfileData(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "a@x.com", "Abc12345!")

	resp, body := doJSON(t, srv, http.MethodPut, "/profile", token,
		map[string]any{"fullName": "Alex"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Profile data required", body["error"])
}

func TestProfileRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "a@x.com", "Abc12345!")

	// login returns a possibly different token string for the same subject
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "Abc12345!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginToken, _ := body["token"].(string)
	require.NotEmpty(t, loginToken)

	profile := map[string]any{
		"weight":      "70",
		"weightPhoto": "file:///photo.jpg",
		"height":      "170",
		"age":         "30",
		"gender":      "Male",
		"location":    "X",
		"state":       "Y",
		"village":     "Z",
	}
	resp, body = doJSON(t, srv, http.MethodPut, "/profile", token,
		map[string]any{"fullName": "Alex Johnson", "phone": "123-456-7890", "profile": profile})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alex Johnson", body["fullName"])
	assert.Nil(t, body["passwordHash"], "password material must never be returned")
	assert.Nil(t, body["password"])

	// Read back through the login-issued token: same subject, same record.
	resp, body = doJSON(t, srv, http.MethodGet, "/profile", loginToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, ok := body["profile"].(map[string]any)
	require.True(t, ok, "body: %v", body)
	for k, v := range profile {
		assert.Equal(t, v, got[k], "profile field %s", k)
	}

	// A second write omitting optional fields clears them (replace, not merge).
	slim := map[string]any{
		"weight": "72", "height": "170", "age": "31",
		"gender": "Male", "location": "X", "state": "Y",
	}
	resp, _ = doJSON(t, srv, http.MethodPut, "/profile", token, map[string]any{"profile": slim})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, ok = body["profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "72", got["weight"])
	assert.Nil(t, got["weightPhoto"])
	assert.Nil(t, got["village"])
	assert.Nil(t, body["fullName"])
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorBodyShape(t *testing.T) {
	srv := newTestServer(t)
	resp, body := doJSON(t, srv, http.MethodGet, "/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Len(t, body, 1, "error responses carry only the error key")
	_, ok := body["error"].(string)
	assert.True(t, ok)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}
