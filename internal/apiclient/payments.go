package apiclient

import (
	"context"
	"net/http"

	"skyreserva/internal/domain/models"
)

func (c *Client) StartPayment(ctx context.Context, req models.StartPaymentRequest) (models.StartPaymentResponse, error) {
	var out models.StartPaymentResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/pagos/iniciar", body: req, out: &out, fallback: "Error al iniciar el pago"})
	return out, err
}

func (c *Client) VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) (models.VerifyPaymentResponse, error) {
	var out models.VerifyPaymentResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/pagos/verificar", body: req, out: &out, fallback: "Error al verificar el código"})
	return out, err
}

func (c *Client) StartMultiPayment(ctx context.Context, req models.StartMultiPaymentRequest) (models.StartMultiPaymentResponse, error) {
	var out models.StartMultiPaymentResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/pagos/iniciar-multiple", body: req, out: &out, fallback: "Error al iniciar el pago"})
	return out, err
}

func (c *Client) VerifyMultiPayment(ctx context.Context, req models.VerifyMultiPaymentRequest) (models.VerifyMultiPaymentResponse, error) {
	var out models.VerifyMultiPaymentResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/pagos/verificar-multiple", body: req, out: &out, fallback: "Error al verificar el código"})
	return out, err
}
