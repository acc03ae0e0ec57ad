package models

import "time"

// Session is one signed-in browser. The refresh selector rotates; ID does not.
type Session struct {
	ID           string
	UserID       int64
	UserName     string
	UserEmail    string
	Selector     string
	VerifierHash string
	ExpiresAt    time.Time
	RevokedAt    *time.Time
	CreatedAt    time.Time
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
