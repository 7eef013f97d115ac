package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fitsync/fitsync/internal/account"
)

// Handler exposes the registration and login endpoints.
type Handler struct {
	accounts *account.Service
	tokens   *Tokens
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(accounts *account.Service, tokens *Tokens) *Handler {
	return &Handler{accounts: accounts, tokens: tokens}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns a session token.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acc, err := h.accounts.Register(c.UserContext(), account.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateAccount) || errors.Is(err, account.ErrMissingCredentials) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	token, err := h.tokens.Issue(acc.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(tokenResponse{Token: token})
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acc, err := h.accounts.Authenticate(c.UserContext(), account.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusBadRequest, "Invalid credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	token, err := h.tokens.Issue(acc.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(tokenResponse{Token: token})
}
