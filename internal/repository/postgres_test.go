package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	store := NewPostgres(db)
	cleanup := func() {
		db.Close()
	}
	return store, mock, cleanup
}

func TestPostgresGet_Success(t *testing.T) {
	store, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_blobs WHERE key = $1`)).
		WithArgs("journalEntries_p1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("blob")))

	got, err := store.Get(context.Background(), "journalEntries_p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "blob" {
		t.Errorf("expected blob, got %q", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	store, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_blobs WHERE key = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresGet_QueryError(t *testing.T) {
	store, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_blobs WHERE key = $1`)).
		WithArgs("k").
		WillReturnError(errors.New("query fail"))

	_, err := store.Get(context.Background(), "k")
	if err == nil || !regexp.MustCompile(`get k`).MatchString(err.Error()) {
		t.Errorf("expected wrapped get error, got %v", err)
	}
}

func TestPostgresSet_Success(t *testing.T) {
	store, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresSet_ExecError(t *testing.T) {
	store, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_blobs`)).
		WithArgs("k", []byte("v")).
		WillReturnError(errors.New("exec fail"))

	err := store.Set(context.Background(), "k", []byte("v"))
	if err == nil || !regexp.MustCompile(`set k`).MatchString(err.Error()) {
		t.Errorf("expected wrapped set error, got %v", err)
	}
}

func TestPostgresDelete_Success(t *testing.T) {
	store, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_blobs WHERE key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
