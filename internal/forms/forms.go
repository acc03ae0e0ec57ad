// Package forms holds the client-side checks each form applies before anything
// is sent to the flight API.
package forms

import "skyreserva/internal/domain"

const msgRequired = "Completa todos los campos requeridos"

func invalid(field, msg string) error {
	return domain.ValidationError{Field: field, Msg: msg}
}

// formError is reported without the field prefix, the way the forms show it.
func formError(rule, msg string) error {
	return domain.ValidationError{Rule: rule, Msg: msg}
}
