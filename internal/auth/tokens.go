package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what an access token carries about the signed-in traveler.
type Claims struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type Issuer struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

func (i *Issuer) clock() time.Time {
	if i.now != nil {
		return i.now()
	}
	return time.Now()
}

// Issue signs an HS256 access token for userID bound to sessionID.
func (i *Issuer) Issue(userID int64, name, email, sessionID string) (string, time.Time, error) {
	now := i.clock()
	exp := now.Add(i.TTL)
	claims := Claims{
		Name:      name,
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("no se pudo firmar el token: %w", err)
	}
	return signed, exp, nil
}

var ErrInvalidToken = errors.New("token no válido")

func (i *Issuer) Parse(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := claims.UserID(); err != nil || claims.SessionID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
