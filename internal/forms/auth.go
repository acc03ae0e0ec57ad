package forms

import (
	"strings"

	"skyreserva/internal/domain/models"
)

func ValidateLogin(req models.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return formError("required", msgRequired)
	}
	return nil
}

func ValidateRegister(req models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Document) == "" ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return formError("required", msgRequired)
	}
	return nil
}
