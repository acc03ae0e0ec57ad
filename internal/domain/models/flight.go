package models

type City struct {
	ID          int64  `json:"ciu_id"`
	Name        string `json:"ciu_nom"`
	AirportCode string `json:"ciu_codigo_aeropuerto"`
}

type Airline struct {
	ID   int64  `json:"aero_id,omitempty"`
	Name string `json:"aero_nom"`
	Code string `json:"aero_codigo"`
}

// SeatCategory is a fare class of the airline (economy, business...), not a passenger type.
type SeatCategory struct {
	ID          int64  `json:"cat_id"`
	Name        string `json:"cat_nombre"`
	Description string `json:"cat_descripcion,omitempty"`
}

// FlightCategory is a seat category offered on one flight, with its fare and availability.
type FlightCategory struct {
	ID             int64        `json:"vlcat_id"`
	CategoryID     int64        `json:"cat_id,omitempty"`
	BasePrice      Amount       `json:"vlcat_precio_base"`
	AvailableSeats int          `json:"vlcat_asientos_disponibles"`
	Category       SeatCategory `json:"categoria"`
}

// SeatCategoryID is the cat_id a reservation must carry.
func (c FlightCategory) SeatCategoryID() int64 {
	if c.CategoryID > 0 {
		return c.CategoryID
	}
	return c.Category.ID
}

type Flight struct {
	ID            int64            `json:"vl_id"`
	Number        string           `json:"vl_numero"`
	DepartureDate string           `json:"vl_fecha_salida"`
	DepartureTime string           `json:"vl_hora_salida"`
	ArrivalDate   string           `json:"vl_fecha_llegada,omitempty"`
	ArrivalTime   string           `json:"vl_hora_llegada,omitempty"`
	Status        string           `json:"vl_estado"`
	Airline       Airline          `json:"aerolinea"`
	Origin        City             `json:"origen"`
	Destination   City             `json:"destino"`
	Categories    []FlightCategory `json:"categorias"`
}

// FindCategory looks up an offered category by vlcat_id.
func (f Flight) FindCategory(flightCategoryID int64) (FlightCategory, bool) {
	for _, c := range f.Categories {
		if c.ID == flightCategoryID {
			return c, true
		}
	}
	return FlightCategory{}, false
}
