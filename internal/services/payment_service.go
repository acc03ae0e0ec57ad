package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/forms"
	"skyreserva/internal/utils"
)

const (
	pendingSingle = "single"
	pendingMulti  = "multiple"
)

type pendingPayment struct {
	paymentID int64
	handle    string
	orderIDs  []int64
	startedAt time.Time
}

// PendingPayments remembers the payment each session started and has not yet
// verified, so a verify request can only complete its own session's payment.
type PendingPayments struct {
	mu      sync.Mutex
	entries map[string]pendingPayment
	ttl     time.Duration
	now     func() time.Time
}

func NewPendingPayments(ttl time.Duration) *PendingPayments {
	return &PendingPayments{entries: map[string]pendingPayment{}, ttl: ttl, now: time.Now}
}

func pendingKey(sessionID, kind string) string {
	return sessionID + "|" + kind
}

func (p *PendingPayments) put(sessionID, kind string, v pendingPayment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v.startedAt = p.now()
	p.entries[pendingKey(sessionID, kind)] = v
}

func (p *PendingPayments) get(sessionID, kind string) (pendingPayment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := pendingKey(sessionID, kind)
	v, ok := p.entries[key]
	if ok && p.ttl > 0 && p.now().Sub(v.startedAt) > p.ttl {
		delete(p.entries, key)
		return pendingPayment{}, false
	}
	return v, ok
}

func (p *PendingPayments) remove(sessionID, kind string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, pendingKey(sessionID, kind))
}

// Prune drops payments started more than ttl ago.
func (p *PendingPayments) Prune() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ttl <= 0 {
		return 0
	}
	n := 0
	for k, v := range p.entries {
		if p.now().Sub(v.startedAt) > p.ttl {
			delete(p.entries, k)
			n++
		}
	}
	return n
}

// PaymentService runs the two-step (start, verify e-mailed code) payment of one
// order or of several cart orders at once.
type PaymentService struct {
	API       PaymentAPI
	Orders    OrderService
	Cards     CardService
	Pending   *PendingPayments
	RequestID string
}

var errNoPending = domain.NotFoundError{Resource: "pago pendiente"}

func (s PaymentService) Start(ctx context.Context, rc domain.RequestContext, orderID int64, form forms.StartPayment) (models.StartPaymentResponse, error) {
	order, err := s.Orders.owned(ctx, rc.UserID, orderID)
	if err != nil {
		return models.StartPaymentResponse{}, err
	}
	if order.Status != models.OrderStatusCart {
		return models.StartPaymentResponse{}, domain.ConflictError{Resource: "orden", Msg: "La orden ya no está en el carrito"}
	}
	form, err = s.checkCard(ctx, rc.UserID, form)
	if err != nil {
		return models.StartPaymentResponse{}, err
	}

	resp, err := s.API.StartPayment(ctx, models.StartPaymentRequest{OrderID: orderID, CardID: form.CardID, DeliveryType: form.DeliveryType})
	if err != nil {
		utils.LogEvent(s.RequestID, "payments", "start", "failed: "+err.Error())
		return models.StartPaymentResponse{}, err
	}
	s.Pending.put(rc.SessionID, pendingSingle, pendingPayment{paymentID: resp.PaymentID, orderIDs: []int64{orderID}})
	utils.LogEvent(s.RequestID, "payments", "start", fmt.Sprintf("orden_id=%d pago_id=%d", orderID, resp.PaymentID))
	return resp, nil
}

func (s PaymentService) Verify(ctx context.Context, rc domain.RequestContext, code string) (models.VerifyPaymentResponse, error) {
	code = strings.TrimSpace(code)
	if err := forms.ValidateCode(code); err != nil {
		return models.VerifyPaymentResponse{}, err
	}
	p, ok := s.Pending.get(rc.SessionID, pendingSingle)
	if !ok {
		return models.VerifyPaymentResponse{}, errNoPending
	}
	resp, err := s.API.VerifyPayment(ctx, models.VerifyPaymentRequest{PaymentID: p.paymentID, Code: code})
	if err != nil {
		return models.VerifyPaymentResponse{}, s.verifyError(err)
	}
	s.Pending.remove(rc.SessionID, pendingSingle)
	utils.LogEvent(s.RequestID, "payments", "verify", fmt.Sprintf("pago_id=%d factura=%s billetes=%d", p.paymentID, resp.Invoice.Number, resp.TicketsIssued))
	return resp, nil
}

func (s PaymentService) StartMultiple(ctx context.Context, rc domain.RequestContext, orderIDs []int64, form forms.StartPayment) (models.StartMultiPaymentResponse, error) {
	orders, err := s.Orders.RequireCart(ctx, rc.UserID, orderIDs)
	if err != nil {
		return models.StartMultiPaymentResponse{}, err
	}
	form, err = s.checkCard(ctx, rc.UserID, form)
	if err != nil {
		return models.StartMultiPaymentResponse{}, err
	}
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	resp, err := s.API.StartMultiPayment(ctx, models.StartMultiPaymentRequest{OrderIDs: ids, CardID: form.CardID, DeliveryType: form.DeliveryType})
	if err != nil {
		utils.LogEvent(s.RequestID, "payments", "start_multiple", "failed: "+err.Error())
		return models.StartMultiPaymentResponse{}, err
	}
	s.Pending.put(rc.SessionID, pendingMulti, pendingPayment{handle: resp.VerificationHandle, orderIDs: ids})
	utils.LogEvent(s.RequestID, "payments", "start_multiple", fmt.Sprintf("ordenes=%v monto=%s", ids, utils.FormatMoney(resp.Total.Float())))
	return resp, nil
}

func (s PaymentService) VerifyMultiple(ctx context.Context, rc domain.RequestContext, code string) (models.VerifyMultiPaymentResponse, error) {
	code = strings.TrimSpace(code)
	if err := forms.ValidateCode(code); err != nil {
		return models.VerifyMultiPaymentResponse{}, err
	}
	p, ok := s.Pending.get(rc.SessionID, pendingMulti)
	if !ok {
		return models.VerifyMultiPaymentResponse{}, errNoPending
	}
	resp, err := s.API.VerifyMultiPayment(ctx, models.VerifyMultiPaymentRequest{VerificationHandle: p.handle, Code: code})
	if err != nil {
		return models.VerifyMultiPaymentResponse{}, s.verifyError(err)
	}
	s.Pending.remove(rc.SessionID, pendingMulti)
	utils.LogEvent(s.RequestID, "payments", "verify_multiple", fmt.Sprintf("ordenes=%d facturas=%d billetes=%d", resp.OrdersProcessed, resp.InvoicesGenerated, resp.TicketsIssued))
	return resp, nil
}

func (s PaymentService) checkCard(ctx context.Context, userID int64, form forms.StartPayment) (forms.StartPayment, error) {
	form = form.Normalize()
	cards, err := s.Cards.List(ctx, userID)
	if err != nil {
		return form, err
	}
	if err := form.Validate(cards); err != nil {
		return form, err
	}
	return form, nil
}

// verifyError turns a rejected code into a form error; the pending payment is
// kept so the traveler can retry.
func (s PaymentService) verifyError(err error) error {
	if domain.UpstreamStatus(err) == http.StatusUnauthorized {
		utils.LogEvent(s.RequestID, "payments", "verify", "wrong code")
		return domain.ValidationError{Field: "codigo", Rule: "wrong_code", Msg: forms.MsgWrongCode, Err: err}
	}
	utils.LogEvent(s.RequestID, "payments", "verify", "failed: "+err.Error())
	return err
}
