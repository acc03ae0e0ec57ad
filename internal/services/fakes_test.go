package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"skyreserva/internal/apiclient"
	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
)

// fakeAPI stands in for *apiclient.Client.
type fakeAPI struct {
	mu sync.Mutex

	user     models.User
	loginErr error

	cities        []models.City
	flights       map[int64]models.Flight
	searchResults []models.Flight
	calls         []string

	orders      map[int64]models.Order
	nextID      int64
	statusSet   map[int64]string
	deliverySet map[int64]string
	passengers  map[int64][]models.Passenger
	// orderDetail overrides what Order returns for an id, for detail
	// responses that differ from the list.
	orderDetail map[int64]models.Order

	cards    []models.Card
	cardsErr error
	added    []models.AddCardRequest
	updates  map[int64]models.UpdateCardRequest
	deleted  []int64

	startReq    []models.StartPaymentRequest
	verifyReq   []models.VerifyPaymentRequest
	multiReq    []models.StartMultiPaymentRequest
	multiVerify []models.VerifyMultiPaymentRequest
	goodCode    string

	tickets  []models.Ticket
	invoices []models.Invoice
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		user:        models.User{ID: 7, Name: "Ana Ruiz", Email: "ana@example.com"},
		flights:     map[int64]models.Flight{},
		orders:      map[int64]models.Order{},
		statusSet:   map[int64]string{},
		deliverySet: map[int64]string{},
		passengers:  map[int64][]models.Passenger{},
		updates:     map[int64]models.UpdateCardRequest{},
		nextID:      100,
		goodCode:    "123456",
	}
}

func (f *fakeAPI) record(c string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) callCount(c string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, x := range f.calls {
		if x == c {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if f.loginErr != nil {
		return models.User{}, f.loginErr
	}
	return f.user, nil
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return models.User{ID: 8, Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAPI) Cities(ctx context.Context) ([]models.City, error) {
	f.record("cities")
	return f.cities, nil
}

func (f *fakeAPI) Flight(ctx context.Context, id int64) (models.Flight, error) {
	fl, ok := f.flights[id]
	if !ok {
		return models.Flight{}, domain.UpstreamError{Status: http.StatusNotFound, Message: "Vuelo no encontrado"}
	}
	return fl, nil
}

func (f *fakeAPI) FlightsByFare(ctx context.Context, q apiclient.FlightQuery) ([]models.Flight, error) {
	f.record("tarifas")
	return f.searchResults, nil
}

func (f *fakeAPI) FlightsBySchedule(ctx context.Context, q apiclient.FlightQuery) ([]models.Flight, error) {
	f.record("horarios")
	return f.searchResults, nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o := models.Order{ID: f.nextID, UserID: req.UserID, Status: models.OrderStatusCart}
	f.orders[o.ID] = o
	f.calls = append(f.calls, "order")
	return o, nil
}

func (f *fakeAPI) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.calls = append(f.calls, "reservation")
	return models.Reservation{ID: f.nextID, OrderID: req.OrderID, Seats: req.Seats}, nil
}

func (f *fakeAPI) AddPassenger(ctx context.Context, req models.AddPassengerRequest) (models.Passenger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := models.Passenger{ID: f.nextID, ReservationID: req.ReservationID, Name: req.Name, Document: req.Document, Age: req.Age, Type: req.Type}
	f.passengers[req.ReservationID] = append(f.passengers[req.ReservationID], p)
	f.calls = append(f.calls, "passenger")
	return p, nil
}

func (f *fakeAPI) OrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for id := int64(0); id <= f.nextID; id++ {
		if o, ok := f.orders[id]; ok && o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeAPI) Order(ctx context.Context, id int64) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orderDetail[id]; ok {
		return o, nil
	}
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, domain.UpstreamError{Status: http.StatusNotFound, Message: "Orden no encontrada"}
	}
	return o, nil
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusSet[id] = status
	o := f.orders[id]
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeAPI) UpdateOrderDelivery(ctx context.Context, id int64, deliveryType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliverySet[id] = deliveryType
	return nil
}

func (f *fakeAPI) PassengersByReservation(ctx context.Context, reservationID int64) ([]models.Passenger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passengers[reservationID], nil
}

func (f *fakeAPI) CardsByUser(ctx context.Context, userID int64) ([]models.Card, error) {
	if f.cardsErr != nil {
		return nil, f.cardsErr
	}
	return f.cards, nil
}

func (f *fakeAPI) AddCard(ctx context.Context, req models.AddCardRequest) (models.Card, error) {
	f.added = append(f.added, req)
	return models.Card{ID: 55, Number: req.Number, Holder: req.Holder, Expiry: req.Expiry, Type: req.Type, Active: true}, nil
}

func (f *fakeAPI) UpdateCard(ctx context.Context, id int64, req models.UpdateCardRequest) error {
	f.updates[id] = req
	return nil
}

func (f *fakeAPI) DeleteCard(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) wrongCode() error {
	return domain.UpstreamError{Status: http.StatusUnauthorized, Message: "Código inválido"}
}

func (f *fakeAPI) StartPayment(ctx context.Context, req models.StartPaymentRequest) (models.StartPaymentResponse, error) {
	f.startReq = append(f.startReq, req)
	return models.StartPaymentResponse{PaymentID: 900 + req.OrderID, Email: "ana@example.com"}, nil
}

func (f *fakeAPI) VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) (models.VerifyPaymentResponse, error) {
	f.verifyReq = append(f.verifyReq, req)
	if req.Code != f.goodCode {
		return models.VerifyPaymentResponse{}, f.wrongCode()
	}
	return models.VerifyPaymentResponse{Invoice: models.Invoice{Number: "FAC-1"}, TicketsIssued: 2}, nil
}

func (f *fakeAPI) StartMultiPayment(ctx context.Context, req models.StartMultiPaymentRequest) (models.StartMultiPaymentResponse, error) {
	f.multiReq = append(f.multiReq, req)
	return models.StartMultiPaymentResponse{VerificationHandle: "VH-1", OrderCount: len(req.OrderIDs)}, nil
}

func (f *fakeAPI) VerifyMultiPayment(ctx context.Context, req models.VerifyMultiPaymentRequest) (models.VerifyMultiPaymentResponse, error) {
	f.multiVerify = append(f.multiVerify, req)
	if req.Code != f.goodCode {
		return models.VerifyMultiPaymentResponse{}, f.wrongCode()
	}
	return models.VerifyMultiPaymentResponse{OrdersProcessed: 2, InvoicesGenerated: 2, TicketsIssued: 3}, nil
}

func (f *fakeAPI) TicketsByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	return f.tickets, nil
}

func (f *fakeAPI) InvoicesByUser(ctx context.Context, userID int64) ([]models.Invoice, error) {
	return f.invoices, nil
}

// memStore is an in-memory SessionStore.
type memStore struct {
	mu       sync.Mutex
	sessions  map[string]models.Session
	revokeErr error
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]models.Session{}}
}

func (m *memStore) Create(ctx context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.Session{}, domain.NotFoundError{Resource: "sesión"}
	}
	return s, nil
}

func (m *memStore) GetBySelector(ctx context.Context, selector string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Selector == selector {
			return s, nil
		}
	}
	return models.Session{}, domain.NotFoundError{Resource: "sesión"}
}

func (m *memStore) Rotate(ctx context.Context, id, oldSelector, newSelector, newHash string, expiresAt, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Selector != oldSelector || s.RevokedAt != nil {
		return domain.UnauthorizedError{Msg: "sesión expirada"}
	}
	s.Selector, s.VerifierHash, s.ExpiresAt = newSelector, newHash, expiresAt
	m.sessions[id] = s
	return nil
}

func (m *memStore) Revoke(ctx context.Context, id string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revokeErr != nil {
		return m.revokeErr
	}
	if s, ok := m.sessions[id]; ok && s.RevokedAt == nil {
		s.RevokedAt = &now
		m.sessions[id] = s
	}
	return nil
}

func (m *memStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if !s.Active(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
