package forms

import (
	"strings"

	"skyreserva/internal/utils"
)

const (
	SortByFare     = "tarifas"
	SortBySchedule = "horarios"

	MsgNoFlights = "No se encontraron vuelos para esta búsqueda"
)

// Search is the flight search form. Origin and destination are city ids.
type Search struct {
	Origin      int64  `form:"origen" json:"origen"`
	Destination int64  `form:"destino" json:"destino"`
	Date        string `form:"fecha" json:"fecha"`
	Sort        string `form:"orden" json:"orden"`
}

// Normalize trims the date and defaults the sort mode to fares.
func (s Search) Normalize() Search {
	s.Date = strings.TrimSpace(s.Date)
	s.Sort = strings.ToLower(strings.TrimSpace(s.Sort))
	if s.Sort == "" {
		s.Sort = SortByFare
	}
	return s
}

func (s Search) Validate() error {
	s = s.Normalize()
	if s.Origin <= 0 || s.Destination <= 0 || s.Date == "" {
		return formError("required", msgRequired)
	}
	if s.Origin == s.Destination {
		return invalid("destino", "El destino debe ser distinto del origen")
	}
	if _, err := utils.ParseDate(s.Date); err != nil {
		return invalid("fecha", "Fecha no válida")
	}
	if s.Sort != SortByFare && s.Sort != SortBySchedule {
		return invalid("orden", "Orden no válido")
	}
	return nil
}
