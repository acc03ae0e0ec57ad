package models

const (
	DeliveryAirportPickup = "recoger_aeropuerto"
	DeliveryHome          = "domicilio"
)

type Card struct {
	ID           int64  `json:"tarj_id"`
	UserID       int64  `json:"usu_id,omitempty"`
	Number       string `json:"tarj_numero"`
	Holder       string `json:"tarj_titular"`
	Expiry       string `json:"tarj_vencimiento"`
	Type         string `json:"tarj_tipo"`
	Active       bool   `json:"tarj_activa"`
	RegisteredAt string `json:"tarj_fecha_registro,omitempty"`
	// Display is the number grouped in blocks of four; filled by the service.
	Display string `json:"tarj_numero_visible,omitempty"`
}

type AddCardRequest struct {
	UserID int64  `json:"usu_id"`
	Number string `json:"numero"`
	Holder string `json:"titular"`
	Expiry string `json:"vencimiento"`
	Type   string `json:"tipo"`
}

type UpdateCardRequest struct {
	Holder *string `json:"titular,omitempty"`
	Expiry *string `json:"vencimiento,omitempty"`
	Active *bool   `json:"activa,omitempty"`
}

type StartPaymentRequest struct {
	OrderID      int64  `json:"orden_id"`
	CardID       int64  `json:"tarj_id"`
	DeliveryType string `json:"tipo_entrega,omitempty"`
}

type StartPaymentResponse struct {
	PaymentID int64  `json:"pago_id"`
	Email     string `json:"correo"`
	DevCode   string `json:"codigo_desarrollo,omitempty"`
}

type VerifyPaymentRequest struct {
	PaymentID int64  `json:"pago_id"`
	Code      string `json:"codigo"`
}

type VerifyPaymentResponse struct {
	Invoice       Invoice `json:"factura"`
	TicketsIssued int     `json:"billetes_emitidos"`
}

type StartMultiPaymentRequest struct {
	OrderIDs     []int64 `json:"ordenes_ids"`
	CardID       int64   `json:"tarj_id"`
	DeliveryType string  `json:"tipo_entrega,omitempty"`
}

type StartMultiPaymentResponse struct {
	VerificationHandle string `json:"codigo_verificacion"`
	Email              string `json:"correo"`
	DevCode            string `json:"codigo_desarrollo,omitempty"`
	OrderCount         int    `json:"ordenes_count"`
	Total              Amount `json:"monto_total"`
}

type VerifyMultiPaymentRequest struct {
	VerificationHandle string `json:"codigo_verificacion"`
	Code               string `json:"codigo"`
}

type VerifyMultiPaymentResponse struct {
	OrdersProcessed   int    `json:"ordenes_procesadas"`
	InvoicesGenerated int    `json:"facturas_generadas"`
	TicketsIssued     int    `json:"billetes_emitidos"`
	Total             Amount `json:"monto_total"`
}

type Invoice struct {
	ID       int64  `json:"fac_id,omitempty"`
	Number   string `json:"fac_numero"`
	IssuedAt string `json:"fac_fecha_emision,omitempty"`
	Subtotal Amount `json:"fac_subtotal,omitempty"`
	Taxes    Amount `json:"fac_impuestos,omitempty"`
	Total    Amount `json:"fac_total,omitempty"`
}

type Ticket struct {
	ID          int64       `json:"bill_id"`
	Code        string      `json:"bill_codigo"`
	Status      string      `json:"bill_estado"`
	IssuedAt    string      `json:"bill_fecha_emision"`
	Reservation Reservation `json:"reserva"`
	Passenger   Passenger   `json:"pasajero"`
	Invoice     *Invoice    `json:"factura,omitempty"`
}
