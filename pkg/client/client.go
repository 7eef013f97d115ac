// Package client is the Go SDK for the FitSync API. It holds the session
// token in memory for the life of the process, attaches it as a bearer
// credential on profile calls, and runs the profileEdit validation ruleset
// before any submission so validation failures never reach the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fitsync/fitsync/pkg/validation"
)

var (
	// ErrInvalidCredentials is returned by Login when the email is unknown or
	// the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateAccount is returned by Register when the email already
	// identifies an account.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrMissingToken is returned when a profile call is made without a prior
	// successful Login or Register.
	ErrMissingToken = errors.New("access token required")
	// ErrInvalidToken is returned when the server rejects the bearer token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotFound is returned by GetProfile when no record exists yet.
	ErrNotFound = errors.New("profile not found")
	// ErrNetwork wraps transport-level failures. No automatic retry is
	// attempted; surfacing the failure is the caller's concern.
	ErrNetwork = errors.New("network error")
)

// Profile mirrors the wire shape of the per-account fitness fields.
type Profile struct {
	Weight      string `json:"weight"`
	WeightPhoto string `json:"weightPhoto,omitempty"`
	Height      string `json:"height"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	State       string `json:"state"`
	Village     string `json:"village,omitempty"`
}

// UserData is the profile-update payload. The server replaces stored fields
// wholesale, so callers must always submit the full profile object.
type UserData struct {
	FullName string   `json:"fullName,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Profile  *Profile `json:"profile"`
}

// Account is the server's account record minus the password hash.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Client talks to a FitSync server. It is not safe for concurrent use: each
// form instance owns its own client and token, matching the single-caller
// submission model.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New builds a client against the given base URL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL, httpc: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the in-memory session token, empty before login.
func (c *Client) Token() string {
	return c.token
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and stores the issued session token.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.obtainToken(ctx, "/auth/register", email, password, ErrDuplicateAccount)
}

// Login authenticates and stores the issued session token. A failed login
// leaves no token behind.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.obtainToken(ctx, "/auth/login", email, password, ErrInvalidCredentials)
}

func (c *Client) obtainToken(ctx context.Context, path, email, password string, badRequest error) error {
	c.token = ""
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp, map[int]error{http.StatusBadRequest: badRequest})
	}
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	c.token = tr.Token
	return nil
}

// GetProfile fetches the account record for the current session.
func (c *Client) GetProfile(ctx context.Context) (Account, error) {
	if c.token == "" {
		return Account{}, ErrMissingToken
	}
	resp, err := c.do(ctx, http.MethodGet, "/profile", nil, true)
	if err != nil {
		return Account{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Account{}, apiError(resp, profileErrors)
	}
	var acc Account
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return acc, nil
}

// UpdateProfile replaces the stored profile wholesale and returns the result.
// Most callers want SubmitProfile, which validates first.
func (c *Client) UpdateProfile(ctx context.Context, data UserData) (Account, error) {
	if c.token == "" {
		return Account{}, ErrMissingToken
	}
	body, err := json.Marshal(data)
	if err != nil {
		return Account{}, err
	}
	resp, err := c.do(ctx, http.MethodPut, "/profile", body, true)
	if err != nil {
		return Account{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Account{}, apiError(resp, profileErrors)
	}
	var acc Account
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return acc, nil
}

// SubmitProfile runs the profileEdit ruleset over the payload and submits only
// when every field passes. Field errors are returned as a non-empty map with a
// nil error and no network call is made.
func (c *Client) SubmitProfile(ctx context.Context, data UserData) (map[string]string, Account, error) {
	p := data.Profile
	if p == nil {
		p = &Profile{}
	}
	fieldErrs := validation.Apply(validation.ProfileEdit, validation.Fields{
		"weight":   p.Weight,
		"height":   p.Height,
		"age":      p.Age,
		"gender":   p.Gender,
		"location": p.Location,
		"state":    p.State,
	})
	if len(fieldErrs) > 0 {
		return fieldErrs, Account{}, nil
	}
	acc, err := c.UpdateProfile(ctx, data)
	return nil, acc, err
}

var profileErrors = map[int]error{
	http.StatusUnauthorized: ErrMissingToken,
	http.StatusForbidden:    ErrInvalidToken,
	http.StatusNotFound:     ErrNotFound,
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, withToken bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return resp, nil
}

// apiError decodes the {"error": message} body and wraps the sentinel mapped
// to the status code, if any.
func apiError(resp *http.Response, sentinels map[int]error) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	if sentinel, ok := sentinels[resp.StatusCode]; ok {
		return fmt.Errorf("%w: %s", sentinel, message)
	}
	return fmt.Errorf("%s (status %d)", message, resp.StatusCode)
}
