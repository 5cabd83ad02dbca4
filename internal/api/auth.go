// ABOUTME: Authentication endpoints for the StoreSync API
// ABOUTME: Login returns a bearer token; registration does not authenticate

package api

import (
	"context"
	"net/http"
)

// LoginResult is the successful login response: the bearer token and
// the identity it belongs to.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /auth/login. The caller is responsible for
// persisting the returned credential.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register calls POST /auth/register. A successful registration does
// not log the new user in; no credential is issued.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, registerRequest{Name: name, Email: email, Password: password}, nil)
}
