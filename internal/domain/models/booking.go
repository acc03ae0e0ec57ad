package models

type Order struct {
	ID           int64         `json:"orden_id"`
	UserID       int64         `json:"usu_id,omitempty"`
	Status       string        `json:"orden_estado"`
	Total        Amount        `json:"orden_total"`
	CreatedAt    string        `json:"orden_fecha_creacion,omitempty"`
	DeliveryType string        `json:"orden_tipo_entrega,omitempty"`
	Reservations []Reservation `json:"reservas,omitempty"`
}

const (
	OrderStatusCart      = "carrito"
	OrderStatusPaid      = "pagada"
	OrderStatusCancelled = "cancelada"
)

type Reservation struct {
	ID        int64         `json:"res_id"`
	OrderID   int64         `json:"orden_id,omitempty"`
	Seats     int           `json:"res_cantidad_asientos"`
	UnitPrice Amount        `json:"res_precio_unitario"`
	Subtotal  Amount        `json:"res_subtotal"`
	Flight    *Flight       `json:"vuelo,omitempty"`
	Category  *SeatCategory `json:"categoria,omitempty"`
}

type Passenger struct {
	ID            int64  `json:"pas_id"`
	ReservationID int64  `json:"res_id,omitempty"`
	Name          string `json:"pas_nombre"`
	Document      string `json:"pas_cedula"`
	Age           int    `json:"pas_edad"`
	Type          string `json:"pas_tipo"`
}

type CreateOrderRequest struct {
	UserID int64 `json:"usu_id"`
}

type CreateOrderResponse struct {
	Order Order `json:"orden"`
}

type CreateReservationRequest struct {
	OrderID    int64 `json:"orden_id"`
	FlightID   int64 `json:"vl_id"`
	CategoryID int64 `json:"cat_id"`
	Seats      int   `json:"cantidad_asientos"`
}

type CreateReservationResponse struct {
	Reservation Reservation `json:"reserva"`
}

type AddPassengerRequest struct {
	ReservationID int64  `json:"res_id"`
	Name          string `json:"nombre"`
	Document      string `json:"cedula"`
	Age           int    `json:"edad"`
	Type          string `json:"tipo"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"estado"`
}

type UpdateDeliveryRequest struct {
	DeliveryType string `json:"tipo_entrega"`
}
