package domain

// ID is used across remote entities (orders, reservations, cards...).
type ID = int64

// RequestContext carries the signed-in traveler for the current request.
type RequestContext struct {
	UserID    ID     `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	SessionID string `json:"sessionId"`
}
