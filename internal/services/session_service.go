package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"skyreserva/internal/auth"
	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/forms"
	"skyreserva/internal/utils"

	"github.com/google/uuid"
)

// SignIn is returned by login, register and refresh.
type SignIn struct {
	AccessToken  string      `json:"access_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"usuario"`
}

// SessionService signs travelers in against the flight API and keeps their
// sessions in MySQL.
type SessionService struct {
	API        AuthAPI
	Store      SessionStore
	Issuer     *auth.Issuer
	SessionTTL time.Duration
	RequestID  string
	Now        func() time.Time
}

func (s SessionService) Login(ctx context.Context, req models.LoginRequest) (SignIn, error) {
	if err := forms.ValidateLogin(req); err != nil {
		return SignIn{}, err
	}
	user, err := s.API.Login(ctx, req)
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "login", "failed: "+err.Error())
		if domain.UpstreamStatus(err) == http.StatusUnauthorized {
			return SignIn{}, domain.UnauthorizedError{Msg: err.Error(), Err: err}
		}
		return SignIn{}, err
	}
	return s.open(ctx, user)
}

func (s SessionService) Register(ctx context.Context, req models.RegisterRequest) (SignIn, error) {
	if err := forms.ValidateRegister(req); err != nil {
		return SignIn{}, err
	}
	user, err := s.API.Register(ctx, req)
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "register", "failed: "+err.Error())
		return SignIn{}, err
	}
	return s.open(ctx, user)
}

func (s SessionService) open(ctx context.Context, user models.User) (SignIn, error) {
	if user.ID <= 0 {
		return SignIn{}, domain.UpstreamError{Fallback: "Respuesta de autenticación sin usuario"}
	}
	tok, hash, err := auth.NewRefreshToken()
	if err != nil {
		return SignIn{}, domain.InternalError{Msg: "no se pudo crear la sesión", Err: err}
	}
	now := clock(s.Now)
	sess := models.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		UserName:     user.Name,
		UserEmail:    user.Email,
		Selector:     tok.Selector,
		VerifierHash: hash,
		ExpiresAt:    now.Add(s.SessionTTL),
		CreatedAt:    now,
	}
	if err := s.Store.Create(ctx, sess); err != nil {
		return SignIn{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "session_open", fmt.Sprintf("user_id=%d session=%s", user.ID, sess.ID))
	return s.issue(user, sess.ID, tok)
}

func (s SessionService) issue(user models.User, sessionID string, tok auth.RefreshToken) (SignIn, error) {
	access, exp, err := s.Issuer.Issue(user.ID, user.Name, user.Email, sessionID)
	if err != nil {
		return SignIn{}, domain.InternalError{Msg: "no se pudo crear la sesión", Err: err}
	}
	return SignIn{AccessToken: access, ExpiresAt: exp, RefreshToken: tok.String(), User: user}, nil
}

// Refresh trades a refresh token for a new pair. A token whose verifier does not
// match revokes the whole session.
func (s SessionService) Refresh(ctx context.Context, raw string) (SignIn, error) {
	old, ok := auth.ParseRefreshToken(raw)
	if !ok {
		return SignIn{}, domain.UnauthorizedError{Msg: "sesión no válida"}
	}
	sess, err := s.Store.GetBySelector(ctx, old.Selector)
	if err != nil {
		if domain.IsNotFound(err) {
			return SignIn{}, domain.UnauthorizedError{Msg: "sesión no válida", Err: err}
		}
		return SignIn{}, err
	}
	now := clock(s.Now)
	if !sess.Active(now) {
		return SignIn{}, domain.UnauthorizedError{Msg: "sesión expirada"}
	}
	if !auth.VerifierMatches(sess.VerifierHash, old.Verifier) {
		utils.LogEvent(s.RequestID, "auth", "refresh", "verifier mismatch, revoking session="+sess.ID)
		if err := s.Store.Revoke(ctx, sess.ID, now); err != nil {
			utils.LogEvent(s.RequestID, "auth", "refresh", "revoke failed session="+sess.ID+": "+err.Error())
		}
		return SignIn{}, domain.UnauthorizedError{Msg: "sesión no válida"}
	}

	next, hash, err := auth.NewRefreshToken()
	if err != nil {
		return SignIn{}, domain.InternalError{Msg: "no se pudo renovar la sesión", Err: err}
	}
	if err := s.Store.Rotate(ctx, sess.ID, old.Selector, next.Selector, hash, now.Add(s.SessionTTL), now); err != nil {
		return SignIn{}, err
	}
	user := models.User{ID: sess.UserID, Name: sess.UserName, Email: sess.UserEmail}
	return s.issue(user, sess.ID, next)
}

func (s SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.Store.Revoke(ctx, sessionID, clock(s.Now)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "logout", "session="+sessionID)
	return nil
}

// Authenticate resolves a bearer access token to the traveler it was issued to.
// The session behind the token must still be open.
func (s SessionService) Authenticate(ctx context.Context, accessToken string) (domain.RequestContext, error) {
	claims, err := s.Issuer.Parse(accessToken)
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "token no válido", Err: err}
	}
	sess, err := s.Store.GetByID(ctx, claims.SessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "sesión no válida", Err: err}
		}
		return domain.RequestContext{}, err
	}
	if !sess.Active(clock(s.Now)) {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "sesión expirada"}
	}
	uid, _ := claims.UserID()
	return domain.RequestContext{UserID: uid, Name: claims.Name, Email: claims.Email, SessionID: sess.ID}, nil
}

// PruneSessions drops expired and revoked sessions.
func (s SessionService) PruneSessions(ctx context.Context) (int64, error) {
	return s.Store.DeleteExpired(ctx, clock(s.Now))
}
