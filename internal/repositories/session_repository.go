package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "skyreserva/internal/config"
	intdb "skyreserva/internal/db"
	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
)

const sessionsTable = "sessions"

type SessionRepository struct {
	DB *sql.DB
}

func (r SessionRepository) db() (*sql.DB, error) {
	if r.DB != nil {
		return r.DB, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, domain.InternalError{Msg: "base de datos no conectada"}
}

// EnsureSchema creates the sessions table, or adds last_seen_at to an older one.
func (r SessionRepository) EnsureSchema(ctx context.Context) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	if !intdb.HasTable(ctx, db, sessionsTable) {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS sessions (
				id            CHAR(36)     NOT NULL PRIMARY KEY,
				user_id       BIGINT       NOT NULL,
				user_name     VARCHAR(150) NOT NULL DEFAULT '',
				user_email    VARCHAR(150) NOT NULL DEFAULT '',
				selector      CHAR(36)     NOT NULL UNIQUE,
				verifier_hash VARCHAR(100) NOT NULL,
				expires_at    DATETIME     NOT NULL,
				revoked_at    DATETIME     NULL,
				created_at    DATETIME     NOT NULL,
				last_seen_at  DATETIME     NULL,
				INDEX idx_sessions_user (user_id)
			)`)
		if err != nil {
			return fmt.Errorf("crear tabla sessions: %w", err)
		}
		return nil
	}
	if !intdb.HasColumn(ctx, db, sessionsTable, "last_seen_at") {
		if _, err := db.ExecContext(ctx, `ALTER TABLE sessions ADD COLUMN last_seen_at DATETIME NULL`); err != nil {
			return fmt.Errorf("migrar tabla sessions: %w", err)
		}
	}
	return nil
}

func (r SessionRepository) Create(ctx context.Context, s models.Session) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, user_name, user_email, selector, verifier_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.UserName, s.UserEmail, s.Selector, s.VerifierHash, s.ExpiresAt, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

const sessionColumns = `id, user_id, user_name, user_email, selector, verifier_hash, expires_at, revoked_at, created_at`

func scanSession(row *sql.Row) (models.Session, error) {
	var (
		s       models.Session
		revoked sql.NullTime
	)
	err := row.Scan(&s.ID, &s.UserID, &s.UserName, &s.UserEmail, &s.Selector, &s.VerifierHash, &s.ExpiresAt, &revoked, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, domain.NotFoundError{Resource: "sesión"}
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("leer sesión: %w", err)
	}
	if revoked.Valid {
		t := revoked.Time
		s.RevokedAt = &t
	}
	return s, nil
}

func (r SessionRepository) GetByID(ctx context.Context, id string) (models.Session, error) {
	db, err := r.db()
	if err != nil {
		return models.Session{}, err
	}
	return scanSession(db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ? LIMIT 1`, id))
}

func (r SessionRepository) GetBySelector(ctx context.Context, selector string) (models.Session, error) {
	db, err := r.db()
	if err != nil {
		return models.Session{}, err
	}
	return scanSession(db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE selector = ? LIMIT 1`, selector))
}

// Rotate swaps the refresh selector and verifier. It only succeeds while the
// old selector is still current, so a replayed refresh token loses the race.
func (r SessionRepository) Rotate(ctx context.Context, id, oldSelector, newSelector, newHash string, expiresAt, now time.Time) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE sessions
		SET selector = ?, verifier_hash = ?, expires_at = ?, last_seen_at = ?
		WHERE id = ? AND selector = ? AND revoked_at IS NULL`,
		newSelector, newHash, expiresAt, now, id, oldSelector,
	)
	if err != nil {
		return fmt.Errorf("rotar sesión: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.UnauthorizedError{Msg: "sesión expirada"}
	}
	return nil
}

func (r SessionRepository) Revoke(ctx context.Context, id string, now time.Time) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`, now, id); err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	return nil
}

func (r SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ? OR revoked_at IS NOT NULL`, now)
	if err != nil {
		return 0, fmt.Errorf("limpiar sesiones: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
