package apiclient

import (
	"context"
	"net/http"

	"skyreserva/internal/domain/models"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	var out models.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: req, out: &out, fallback: "Error al iniciar sesión"})
	return out.User, err
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var out models.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/auth/register", body: req, out: &out, fallback: "Error al registrarse"})
	return out.User, err
}
