package forms

import (
	"strings"

	"skyreserva/internal/domain/models"
)

const (
	CodeLength = 6

	MsgSelectCard    = "Por favor selecciona una tarjeta"
	MsgCodeLength    = "Por favor ingresa un código de 6 dígitos"
	MsgWrongCode     = "Código incorrecto. Por favor intenta nuevamente."
	MsgNoActiveCards = `No tienes tarjetas activas. Por favor agrega una tarjeta en "Mis Tarjetas".`
	MsgNoCards       = `No tienes tarjetas registradas. Por favor agrega una tarjeta en "Mis Tarjetas".`
)

type StartPayment struct {
	CardID       int64  `json:"tarj_id"`
	DeliveryType string `json:"tipo_entrega"`
}

// Normalize defaults the delivery type to airport pickup.
func (p StartPayment) Normalize() StartPayment {
	p.DeliveryType = strings.TrimSpace(p.DeliveryType)
	if p.DeliveryType == "" {
		p.DeliveryType = models.DeliveryAirportPickup
	}
	return p
}

// Validate checks the card choice against the user's cards.
func (p StartPayment) Validate(cards []models.Card) error {
	p = p.Normalize()
	if p.CardID <= 0 {
		return formError("card_required", MsgSelectCard)
	}
	if err := ValidateDelivery(p.DeliveryType); err != nil {
		return err
	}
	for _, c := range cards {
		if c.ID == p.CardID {
			if !c.Active {
				return invalid("tarj_id", "La tarjeta seleccionada no está activa")
			}
			return nil
		}
	}
	if len(cards) == 0 {
		return formError("no_cards", MsgNoCards)
	}
	return invalid("tarj_id", "Tarjeta no encontrada")
}

func ValidateDelivery(deliveryType string) error {
	switch strings.TrimSpace(deliveryType) {
	case models.DeliveryAirportPickup, models.DeliveryHome:
		return nil
	}
	return invalid("tipo_entrega", "Tipo de entrega no válido")
}

// ValidateCode checks the trimmed code; callers send the trimmed value on.
func ValidateCode(code string) error {
	if len([]rune(strings.TrimSpace(code))) != CodeLength {
		return formError("code_length", MsgCodeLength)
	}
	return nil
}
