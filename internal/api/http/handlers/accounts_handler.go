package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-api/internal/repository"
	apperrors "github.com/spec-kit/social-api/pkg/util"
)

// AccountsHandler exposes moderation views over accounts.
type AccountsHandler struct {
	accounts repository.AccountRepository
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts repository.AccountRepository) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Get handles GET /accounts/:username for moderators and admins.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return fiber.NewError(http.StatusBadRequest, "username required")
	}

	account, err := h.accounts.GetByUsername(c.UserContext(), username)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": accountResponse(account),
		},
	})
}
