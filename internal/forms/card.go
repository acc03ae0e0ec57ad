package forms

import (
	"strings"
	"time"

	"skyreserva/internal/utils"
)

var CardTypes = []string{"Visa", "Mastercard", "American Express", "Diners Club"}

const CardNumberDigits = 16

type Card struct {
	Number string `json:"numero"`
	Holder string `json:"titular"`
	Expiry string `json:"vencimiento"`
	Type   string `json:"tipo"`
}

// Validate checks the card the way the card form does; now decides whether
// the expiry date is in the future.
func (c Card) Validate(now time.Time) error {
	if strings.TrimSpace(c.Number) == "" || strings.TrimSpace(c.Holder) == "" ||
		strings.TrimSpace(c.Expiry) == "" || strings.TrimSpace(c.Type) == "" {
		return formError("required", "Todos los campos son obligatorios")
	}
	number := utils.StripSpaces(c.Number)
	if len(number) != CardNumberDigits || !utils.IsDigits(number) {
		return invalid("numero", "El número de tarjeta debe tener 16 dígitos")
	}
	exp, err := utils.ParseDate(strings.TrimSpace(c.Expiry))
	if err != nil {
		return invalid("vencimiento", "Fecha de vencimiento no válida")
	}
	if !exp.After(now) {
		return invalid("vencimiento", "La fecha de vencimiento debe ser futura")
	}
	if !validCardType(c.Type) {
		return invalid("tipo", "Tipo de tarjeta no válido")
	}
	return nil
}

// CleanNumber returns the card number without spaces, as the API stores it.
func (c Card) CleanNumber() string {
	return utils.StripSpaces(c.Number)
}

func validCardType(t string) bool {
	t = strings.TrimSpace(t)
	for _, ok := range CardTypes {
		if t == ok {
			return true
		}
	}
	return false
}
