package handlers

import (
	"errors"
	"net/http"

	"skyreserva/internal/booking"
	"skyreserva/internal/domain"
	"skyreserva/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var (
		validation domain.ValidationError
		upstream   domain.UpstreamError
		step       *booking.StepError
	)
	switch {
	case errors.As(err, &validation):
		msg := validation.Msg
		if msg == "" {
			msg = validation.Error()
		}
		var details any
		if validation.Index > 0 || validation.Rule != "" || validation.Field != "" {
			details = gin.H{"index": validation.Index, "rule": validation.Rule, "field": validation.Field}
		}
		respondError(c, http.StatusBadRequest, "validation_error", msg, details)
	case errors.As(err, &step) && errors.As(err, &upstream):
		respondError(c, upstreamStatus(upstream.Status), "upstream_error", upstream.Error(),
			gin.H{"step": step.Step, "passenger": step.Passenger})
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.As(err, &upstream):
		respondError(c, upstreamStatus(upstream.Status), "upstream_error", upstream.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "error interno", nil)
	}
}

// upstreamStatus passes remote 4xx answers through; anything else is a bad gateway.
func upstreamStatus(remote int) int {
	if remote >= 400 && remote < 500 && remote != http.StatusUnauthorized {
		return remote
	}
	return http.StatusBadGateway
}
