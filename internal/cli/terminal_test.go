package cli_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/linemk/storefront/internal/apitest"
	"github.com/linemk/storefront/internal/app"
	"github.com/linemk/storefront/internal/cli"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/lib/logger"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastUI() config.UIConfig {
	return config.UIConfig{
		ToastEnterDelay:     time.Millisecond,
		ToastDuration:       time.Millisecond,
		ToastExitDuration:   time.Millisecond,
		ModalOpenDelay:      time.Millisecond,
		ModalTransition:     time.Millisecond,
		DepositCloseDelay:   time.Millisecond,
		LoginSuccessDelay:   time.Millisecond,
		RegisterSwitchDelay: time.Millisecond,
		PasswordCloseDelay:  time.Millisecond,
		ForgotPasswordDelay: time.Millisecond,
		ForgotCloseDelay:    time.Millisecond,
	}
}

func newApp(t *testing.T) (*app.App, *apitest.Backend, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	log := logger.Discard()
	backend := apitest.Start(t, log)
	cfg := &config.Config{
		Env:     "local",
		API:     config.APIConfig{BaseURL: backend.URL, Timeout: 5 * time.Second},
		Storage: config.StorageConfig{Driver: app.StorageMemory},
		UI:      fastUI(),
	}

	var out bytes.Buffer
	a, err := app.NewApp(log, cfg, cli.NewTerminal(&out).Views(), app.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, backend, &out
}

func TestTerminal_LoginAndDeposit(t *testing.T) {
	a, backend, out := newApp(t)
	backend.AddUser("Ann", "ann@example.com", "secret123", 500000)
	ctx := context.Background()

	require.NoError(t, a.Modals.Open(modal.Auth))
	require.NoError(t, a.Flows.Login.Submit(ctx, validation.LoginForm{
		Email:    "ann@example.com",
		Password: "secret123",
		Remember: true,
	}))
	a.Wait()

	text := out.String()
	assert.Contains(t, text, "[auth]")
	assert.Contains(t, text, "Đăng nhập thành công!")
	assert.Contains(t, text, "Chào mừng Ann trở lại")
	assert.Contains(t, text, "A  Ann  500.000đ")

	out.Reset()
	require.NoError(t, a.Flows.Deposit.Open())
	require.NoError(t, a.Flows.Deposit.Submit(ctx, validation.DepositForm{
		CardNumber: "1234567890",
		CardSerial: "12345",
		Amount:     "100000",
		CardType:   "viettel",
	}))
	a.Wait()

	text = out.String()
	assert.Contains(t, text, "✔ Nạp thành công 100.000đ vào tài khoản")
	assert.Contains(t, text, "Số dư: 600.000đ")
	assert.Contains(t, text, "+100.000đ")
	assert.Equal(t, int64(600000), a.Session.Store().Balance())
}

func TestTerminal_LoginFieldErrors(t *testing.T) {
	a, backend, out := newApp(t)

	err := a.Flows.Login.Submit(context.Background(), validation.LoginForm{Email: "nope", Password: "1"})
	require.Error(t, err)
	a.Wait()

	assert.Contains(t, out.String(), "  email: ")
	assert.Contains(t, out.String(), "  password: ")
	assert.Zero(t, backend.TotalCalls())
}

func TestTerminal_LogoutPrintsLoggedOutHeader(t *testing.T) {
	a, backend, out := newApp(t)
	backend.AddUser("Ann", "ann@example.com", "secret123", 0)
	ctx := context.Background()

	_, err := a.Session.Login(ctx, "ann@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, a.Flows.Logout.Run(ctx))
	a.Wait()

	assert.Contains(t, out.String(), "Đăng Nhập")
	assert.Contains(t, out.String(), "✔ Bạn đã đăng xuất thành công")
}
