package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s := storage.NewFileStorage(path)
	ctx := context.Background()

	// пустое хранилище - файла еще нет
	_, err := s.Get(ctx, storage.KeyToken)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Set(ctx, storage.KeyToken, "t1"))
	require.NoError(t, s.Set(ctx, storage.KeyRememberMe, "true"))

	v, err := s.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "t1", v)

	// значения переживают пересоздание объекта (новый запуск процесса)
	reopened := storage.NewFileStorage(path)
	v, err = reopened.Get(ctx, storage.KeyRememberMe)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, reopened.Remove(ctx, storage.KeyToken))
	require.NoError(t, reopened.Remove(ctx, storage.KeyToken), "removing a missing key is not an error")

	_, err = s.Get(ctx, storage.KeyToken)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := storage.NewFileStorage(path).Get(context.Background(), storage.KeyToken)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrNotFound))
}

func TestLookup(t *testing.T) {
	s := storage.NewFileStorage(filepath.Join(t.TempDir(), "storage.json"))
	ctx := context.Background()

	v, ok, err := storage.Lookup(ctx, s, storage.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)

	require.NoError(t, s.Set(ctx, storage.KeyToken, "abc"))
	v, ok, err = storage.Lookup(ctx, s, storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestMemoryStorage(t *testing.T) {
	s := storage.NewMemoryStorage()
	ctx := context.Background()

	_, err := s.Get(ctx, storage.KeyRememberMe)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.KeyRememberMe, "true"))
	v, err := s.Get(ctx, storage.KeyRememberMe)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, s.Remove(ctx, storage.KeyRememberMe))
	_, err = s.Get(ctx, storage.KeyRememberMe)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostgresStorage_Get_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresStorage(db, "kiosk-1")
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"value"}).AddRow("t1")
	query := regexp.QuoteMeta("SELECT value FROM client_storage WHERE profile = $1 AND key = $2")
	mock.ExpectQuery(query).WithArgs("kiosk-1", storage.KeyToken).WillReturnRows(rows)

	v, err := repo.Get(ctx, storage.KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, "t1", v)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresStorage(db, "default")

	// Эмулируем ситуацию, когда запрос возвращает 0 строк.
	query := regexp.QuoteMeta("SELECT value FROM client_storage WHERE profile = $1 AND key = $2")
	mock.ExpectQuery(query).WithArgs("default", storage.KeyRememberMe).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := repo.Get(context.Background(), storage.KeyRememberMe)
	assert.Empty(t, v)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Get_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresStorage(db, "default")

	query := regexp.QuoteMeta("SELECT value FROM client_storage WHERE profile = $1 AND key = $2")
	mock.ExpectQuery(query).WithArgs("default", storage.KeyToken).WillReturnError(errors.New("db error"))

	_, err = repo.Get(context.Background(), storage.KeyToken)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Set_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresStorage(db, "default")

	mock.ExpectExec("INSERT INTO client_storage \\(profile, key, value, updated_at\\)").
		WithArgs("default", storage.KeyToken, "t2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Set(context.Background(), storage.KeyToken, "t2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresStorage(db, "default")

	query := regexp.QuoteMeta("DELETE FROM client_storage WHERE profile = $1 AND key = $2")
	// удаление отсутствующего ключа - 0 строк, но не ошибка
	mock.ExpectExec(query).WithArgs("default", storage.KeyToken).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Remove(context.Background(), storage.KeyToken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Remove_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresStorage(db, "default")

	query := regexp.QuoteMeta("DELETE FROM client_storage WHERE profile = $1 AND key = $2")
	mock.ExpectExec(query).WithArgs("default", storage.KeyRememberMe).WillReturnError(errors.New("conn lost"))

	assert.Error(t, repo.Remove(context.Background(), storage.KeyRememberMe))
	assert.NoError(t, mock.ExpectationsWereMet())
}
