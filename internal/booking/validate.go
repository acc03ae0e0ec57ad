package booking

import (
	"fmt"

	"skyreserva/internal/domain"
	"skyreserva/internal/utils"
)

// Rules reported in domain.ValidationError.Rule, in evaluation order.
const (
	RuleMissingFields    = "missing required fields"
	RuleAgeOutOfRange    = "age out of range"
	RuleCategoryMismatch = "category/age mismatch"
	RuleNameTooShort     = "name too short"
	RuleDocumentTooShort = "document too short"
)

const (
	MinNameLen     = 3
	MinDocumentLen = 5
)

// ValidatePassengers checks every draft in order and returns the first violation
// as a domain.ValidationError with the 1-based passenger index. A nil result means
// the whole batch may be submitted.
func ValidatePassengers(passengers []PassengerDraft) error {
	for i, p := range passengers {
		if err := validatePassenger(i+1, p); err != nil {
			return err
		}
	}
	return nil
}

func validatePassenger(n int, p PassengerDraft) error {
	if p.Name == "" || p.IDDocument == "" || p.AgeYears == "" {
		return passengerError(n, "", RuleMissingFields, "Completa todos los campos obligatorios")
	}

	age, ok := parseAge(p.AgeYears)
	if !ok || age < MinAge || age > MaxAge {
		return passengerError(n, "edad", RuleAgeOutOfRange, "La edad debe estar entre 0 y 120 años")
	}

	if p.Category != Classify(age) {
		return passengerError(n, "tipo", RuleCategoryMismatch, "El tipo no coincide con la edad ingresada")
	}

	if utils.TrimmedLen(p.Name) < MinNameLen {
		return passengerError(n, "nombre", RuleNameTooShort, "El nombre debe tener al menos 3 caracteres")
	}

	if utils.TrimmedLen(p.IDDocument) < MinDocumentLen {
		return passengerError(n, "cedula", RuleDocumentTooShort, "La cédula/pasaporte debe tener al menos 5 caracteres")
	}

	return nil
}

func passengerError(n int, field, rule, msg string) error {
	return domain.ValidationError{
		Field: field,
		Index: n,
		Rule:  rule,
		Msg:   fmt.Sprintf("Pasajero %d: %s", n, msg),
	}
}
