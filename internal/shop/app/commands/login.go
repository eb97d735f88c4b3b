package commands

import (
	"context"
	"strings"

	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/ports"
)

// LoginCommand carries the credential proof for one login attempt. There is
// no lockout or retry policy, a single round trip per attempt.
type LoginCommand struct {
	Passkey string
}

func (c LoginCommand) Validate() error {
	if strings.TrimSpace(c.Passkey) == "" {
		return &domain.ValidationError{Field: "passkey", Reason: "is required"}
	}
	return nil
}

type LoginHandler interface {
	Handle(ctx context.Context, cmd LoginCommand) error
}

// LoginCommandHandler delegates the passkey check to the authentication
// service and maps an explicit rejection to ErrAuthenticationFailed.
type LoginCommandHandler struct {
	auth ports.AuthService
}

func NewLoginCommandHandler(auth ports.AuthService) *LoginCommandHandler {
	return &LoginCommandHandler{auth: auth}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ok, err := h.auth.Authenticate(ctx, cmd.Passkey)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAuthenticationFailed
	}
	return nil
}
