package rest

import (
	"context"

	"github.com/dejobratic/shoplite/internal/shop/domain"
)

type authRequest struct {
	Passkey string `json:"passkey"`
}

type authResponse struct {
	Success bool `json:"success"`
}

// Authenticate posts the passkey to the authentication service. A false
// return with nil error is an explicit rejection; any transport or status
// failure is a ServiceUnavailableError.
func (c *Client) Authenticate(ctx context.Context, passkey string) (bool, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth", authRequest{Passkey: passkey}, &resp); err != nil {
		return false, &domain.ServiceUnavailableError{Op: "authenticate", Err: err}
	}
	return resp.Success, nil
}
