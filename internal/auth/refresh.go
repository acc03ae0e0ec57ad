package auth

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RefreshToken is "<selector>.<verifier>". The selector is stored in clear to find
// the session row; only a bcrypt hash of the verifier is stored.
type RefreshToken struct {
	Selector string
	Verifier string
}

func (t RefreshToken) String() string {
	return t.Selector + "." + t.Verifier
}

// NewRefreshToken returns a fresh token and the hash to persist for it.
func NewRefreshToken() (RefreshToken, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, "", err
	}
	tok := RefreshToken{
		Selector: uuid.NewString(),
		Verifier: base64.RawURLEncoding.EncodeToString(buf),
	}
	hash, err := HashVerifier(tok.Verifier)
	if err != nil {
		return RefreshToken{}, "", err
	}
	return tok, hash, nil
}

func HashVerifier(verifier string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(verifier), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ParseRefreshToken(raw string) (RefreshToken, bool) {
	selector, verifier, ok := strings.Cut(strings.TrimSpace(raw), ".")
	if !ok || selector == "" || verifier == "" {
		return RefreshToken{}, false
	}
	if _, err := uuid.Parse(selector); err != nil {
		return RefreshToken{}, false
	}
	return RefreshToken{Selector: selector, Verifier: verifier}, true
}

func VerifierMatches(hash, verifier string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(verifier)) == nil
}
