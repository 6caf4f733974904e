package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func TestMustLoadByPath_Success(t *testing.T) {
	// пароль БД берется только из окружения
	os.Setenv("DB_PASSWORD", "mypassword")
	defer os.Unsetenv("DB_PASSWORD")

	content := `
env: "dev"
api:
  base_url: "http://shop.local/api/v1"
  timeout: "5s"
  rate_limit: 2
  burst: 1
storage:
  driver: "postgres"
  database:
    host: "db"
    port: 5433
    user: "kiosk"
    name: "shop"
ui:
  toast_duration: "2s"
  deposit_close_delay: "500ms"
`
	cfg := config.MustLoadByPath(writeTempConfig(t, content))

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "http://shop.local/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2.0, cfg.API.RateLimit)
	assert.Equal(t, 1, cfg.API.Burst)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "db", cfg.Storage.Database.Host)
	assert.Equal(t, 5433, cfg.Storage.Database.Port)
	assert.Equal(t, "mypassword", cfg.Storage.Database.Password)
	assert.Equal(t, "postgres://kiosk:mypassword@db:5433/shop?sslmode=disable", cfg.Storage.Database.DSN())
	assert.Equal(t, 2*time.Second, cfg.UI.ToastDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.DepositCloseDelay)
	// незаданные значения берутся из env-default
	assert.Equal(t, 100*time.Millisecond, cfg.UI.ToastEnterDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.ModalTransition)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.LoginSuccessDelay)
}

func TestMustLoadByPath_FileNotFound(t *testing.T) {
	// Ожидаем панику, если файла не существует
	assert.Panics(t, func() {
		config.MustLoadByPath("non_existent_config.yaml")
	})
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	os.Unsetenv("CONFIG_PATH")
	os.Setenv("STOREFRONT_API_URL", "http://example.test/api/v1")
	defer os.Unsetenv("STOREFRONT_API_URL")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://example.test/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3*time.Second, cfg.UI.ToastDuration)
	assert.NotEmpty(t, cfg.Storage.StoragePath())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("does_not_exist.yaml")
	assert.Error(t, err)
}

func TestStoragePath_Explicit(t *testing.T) {
	s := config.StorageConfig{Path: "/tmp/sf.json"}
	assert.Equal(t, "/tmp/sf.json", s.StoragePath())
}
