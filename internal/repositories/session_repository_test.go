package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return SessionRepository{DB: db}, mock
}

func TestEnsureSchemaCreatesMissingTable(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("sessions").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaAddsLastSeenColumn(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("sessions").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("sessions"))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("sessions", "last_seen_at").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("ALTER TABLE sessions ADD COLUMN last_seen_at").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndGetBySelector(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := models.Session{
		ID: "sess-1", UserID: 7, UserName: "Ana", UserEmail: "ana@example.com",
		Selector: "sel-1", VerifierHash: "hash", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(s.ID, s.UserID, s.UserName, s.UserEmail, s.Selector, s.VerifierHash, s.ExpiresAt, s.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), s))

	rows := sqlmock.NewRows([]string{"id", "user_id", "user_name", "user_email", "selector", "verifier_hash", "expires_at", "revoked_at", "created_at"}).
		AddRow(s.ID, s.UserID, s.UserName, s.UserEmail, s.Selector, s.VerifierHash, s.ExpiresAt, nil, s.CreatedAt)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE selector = ?")).
		WithArgs("sel-1").
		WillReturnRows(rows)

	got, err := repo.GetBySelector(context.Background(), "sel-1")
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.True(t, got.Active(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissingIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE id = ?")).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestGetByIDScansRevokedAt(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "user_name", "user_email", "selector", "verifier_hash", "expires_at", "revoked_at", "created_at"}).
		AddRow("sess-1", 7, "Ana", "ana@example.com", "sel", "hash", now.Add(time.Hour), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE id = ?")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	assert.False(t, got.Active(now))
}

func TestRotateStaleSelectorIsUnauthorized(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectExec("UPDATE sessions").
		WithArgs("new-sel", "new-hash", now.Add(time.Hour), now, "sess-1", "old-sel").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Rotate(context.Background(), "sess-1", "old-sel", "new-sel", "new-hash", now.Add(time.Hour), now)
	assert.True(t, domain.IsUnauthorized(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeAndDeleteExpired(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectExec("UPDATE sessions SET revoked_at").
		WithArgs(now, "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Revoke(context.Background(), "sess-1", now))
	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoWithoutDatabase(t *testing.T) {
	_, err := SessionRepository{}.GetByID(context.Background(), "x")
	assert.True(t, domain.IsInternal(err))
}
