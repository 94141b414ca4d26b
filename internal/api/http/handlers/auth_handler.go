package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-api/internal/api/dto"
	"github.com/spec-kit/social-api/internal/auth"
	"github.com/spec-kit/social-api/internal/domain"
	"github.com/spec-kit/social-api/internal/service"
)

// AuthHandler exposes registration, login, refresh and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.FullName == "" {
		return fiber.NewError(http.StatusBadRequest, "username, fullName, password required")
	}

	account, token, exp, err := h.auth.Register(c.UserContext(), req.Username, req.FullName, req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": accountResponse(account),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	account, token, exp, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": accountResponse(account),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Refresh handles POST /auth/refresh. The presented bearer token must
// still be valid and belong to the authenticated principal.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	refreshed, exp, err := h.auth.Refresh(c.UserContext(), token, principal.Username)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "refresh denied")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: refreshed, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout. Stateless tokens stay valid until
// expiry; the endpoint exists for audit symmetry with the client.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.auth.Logout(c.UserContext(), principal.Username); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me and returns the current principal.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.AccountResponse{
				ID:        principal.ID,
				Username:  principal.Username,
				FullName:  principal.FullName,
				Email:     principal.Email,
				Avatar:    principal.Avatar,
				Bio:       principal.Bio,
				Role:      string(principal.Role),
				Status:    string(principal.Status),
				Authority: principal.Authority,
			},
		},
	})
}

func accountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:       account.ID,
		Username: account.Username,
		FullName: account.FullName,
		Email:    account.Email,
		Avatar:   account.Avatar,
		Bio:      account.Bio,
		Role:     string(account.Role),
		Status:   string(account.Status),
	}
}
