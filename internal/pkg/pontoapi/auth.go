package pontoapi

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	UserID   string `json:"usuario_id"`
	Password string `json:"senha"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"empresa_nome,omitempty"`
}

// Login exchanges company credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/login", body: req, anonymous: true}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrUnexpectedResponse
	}
	return &resp, nil
}
