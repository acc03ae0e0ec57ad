package services

import (
	"context"
	"fmt"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/forms"
	"skyreserva/internal/utils"
)

type Cart struct {
	Orders []models.Order `json:"ordenes"`
	Total  string         `json:"total"`
}

type OrderService struct {
	API       OrderAPI
	RequestID string
}

func (s OrderService) List(ctx context.Context, userID int64) ([]models.Order, error) {
	orders, err := s.API.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Cart is the user's orders still in state carrito, with their total.
func (s OrderService) Cart(ctx context.Context, userID int64) (Cart, error) {
	orders, err := s.List(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	out := Cart{Orders: []models.Order{}}
	var total models.Amount
	for _, o := range orders {
		if o.Status == models.OrderStatusCart {
			out.Orders = append(out.Orders, o)
			total += o.Total
		}
	}
	out.Total = utils.FormatMoney(total.Float())
	return out, nil
}

// owned fetches an order and checks it belongs to userID. An order the API
// returns without usu_id only counts when it is in the user's order list.
func (s OrderService) owned(ctx context.Context, userID, orderID int64) (models.Order, error) {
	if orderID <= 0 {
		return models.Order{}, domain.ValidationError{Field: "orden_id", Msg: "id no válido"}
	}
	o, err := s.API.Order(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if o.UserID == userID && userID != 0 {
		return o, nil
	}
	if o.UserID != 0 {
		return models.Order{}, domain.NotFoundError{Resource: "orden"}
	}
	orders, err := s.API.OrdersByUser(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}
	for _, mine := range orders {
		if mine.ID == orderID {
			o.UserID = userID
			return o, nil
		}
	}
	return models.Order{}, domain.NotFoundError{Resource: "orden"}
}

// ownsReservation looks for reservationID among the reservations of the
// user's orders, loading an order's detail when the list omits them.
func (s OrderService) ownsReservation(ctx context.Context, userID, reservationID int64) (bool, error) {
	orders, err := s.API.OrdersByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.UserID != 0 && o.UserID != userID {
			continue
		}
		reservations := o.Reservations
		if len(reservations) == 0 {
			detail, err := s.API.Order(ctx, o.ID)
			if err != nil {
				return false, err
			}
			reservations = detail.Reservations
		}
		for _, r := range reservations {
			if r.ID == reservationID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s OrderService) Cancel(ctx context.Context, userID, orderID int64) error {
	o, err := s.owned(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if o.Status != models.OrderStatusCart {
		return domain.ConflictError{Resource: "orden", Msg: "Solo se pueden cancelar órdenes en el carrito"}
	}
	if err := s.API.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "orders", "cancel", fmt.Sprintf("orden_id=%d user_id=%d", orderID, userID))
	return nil
}

func (s OrderService) SetDelivery(ctx context.Context, userID, orderID int64, deliveryType string) error {
	if err := forms.ValidateDelivery(deliveryType); err != nil {
		return err
	}
	if _, err := s.owned(ctx, userID, orderID); err != nil {
		return err
	}
	return s.API.UpdateOrderDelivery(ctx, orderID, deliveryType)
}

func (s OrderService) ReservationPassengers(ctx context.Context, userID, reservationID int64) ([]models.Passenger, error) {
	if reservationID <= 0 {
		return nil, domain.ValidationError{Field: "res_id", Msg: "id no válido"}
	}
	ok, err := s.ownsReservation(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError{Resource: "reserva"}
	}
	out, err := s.API.PassengersByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Passenger{}
	}
	return out, nil
}

// RequireCart checks every id is one of the user's cart orders and returns them.
func (s OrderService) RequireCart(ctx context.Context, userID int64, orderIDs []int64) ([]models.Order, error) {
	if len(orderIDs) == 0 {
		return nil, domain.ValidationError{Field: "ordenes_ids", Msg: "Selecciona al menos una orden"}
	}
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Order, len(cart.Orders))
	for _, o := range cart.Orders {
		byID[o.ID] = o
	}
	out := make([]models.Order, 0, len(orderIDs))
	seen := map[int64]bool{}
	for _, id := range orderIDs {
		o, ok := byID[id]
		if !ok {
			return nil, domain.ValidationError{Field: "ordenes_ids", Msg: fmt.Sprintf("La orden %d no está en el carrito", id)}
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, o)
	}
	return out, nil
}
