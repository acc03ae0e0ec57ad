// Package apiclient talks to the remote flight API (auth, flights, orders,
// reservations, passengers, cards, payments, invoices and tickets).
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skyreserva/internal/domain"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody bounds how much of an error response is read looking for "message".
const maxErrorBody = 64 << 10

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type call struct {
	method   string
	path     string
	query    url.Values
	body     any
	out      any
	fallback string
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return domain.InternalError{Msg: "no se pudo serializar la solicitud", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	target := c.BaseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return domain.InternalError{Msg: "solicitud no válida", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.UpstreamError{Fallback: cl.fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.UpstreamError{
			Status:   resp.StatusCode,
			Message:  remoteMessage(raw),
			Fallback: cl.fallback,
			Err:      fmt.Errorf("%s %s: status %d", cl.method, cl.path, resp.StatusCode),
		}
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return domain.UpstreamError{Status: resp.StatusCode, Fallback: cl.fallback, Err: fmt.Errorf("respuesta no válida: %w", err)}
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// remoteMessage extracts the "message" field of an error body (or "error" when
// that is all the API sent).
func remoteMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	if s, ok := payload.Error.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
