package flows_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/flows"
	"github.com/linemk/storefront/internal/lib/logger"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_OnlyDeposits(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, "Ann", "ann@example.com", 0)
	created := time.Date(2024, 3, 5, 2, 4, 5, 0, time.UTC)
	h.backend.AddTransaction(user.ID, models.Transaction{
		Type: models.TransactionTypeDeposit, Amount: 50000, CardType: "mobifone",
		CardNumber: "99998888777766", CreatedAt: created,
	})
	h.backend.AddTransaction(user.ID, models.Transaction{Type: "purchase", Amount: 20000, CreatedAt: created})

	view := newFakeView()
	require.NoError(t, flows.NewHistory(logger.Discard(), h.client, view).Load(context.Background()))

	assert.Equal(t, []flows.HistoryRow{{
		Amount:     "+50.000đ",
		Date:       "09:04:05 5/3/2024",
		CardType:   "Thẻ mobifone",
		CardNumber: "••••7766",
		Status:     flows.MsgHistorySuccess,
	}}, view.rows)
}

func TestHistory_Empty(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, "Ann", "ann@example.com", 0)
	view := newFakeView()
	history := flows.NewHistory(logger.Discard(), h.client, view)

	require.NoError(t, history.Load(context.Background()))
	assert.Equal(t, flows.MsgHistoryEmpty, view.historyMsg)

	h.backend.AddTransaction(user.ID, models.Transaction{Type: "purchase", Amount: 1})
	require.NoError(t, history.Load(context.Background()))
	assert.Equal(t, flows.MsgHistoryEmpty, view.historyMsg)
}

func TestHistory_Failure(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Ann", "ann@example.com", 0)
	h.backend.Fail(http.MethodGet, "/users/transactions", http.StatusInternalServerError, "")

	view := newFakeView()
	err := flows.NewHistory(logger.Discard(), h.client, view).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, flows.MsgHistoryFailed, view.historyMsg)
}

func newAccount(h *harness, view *fakeView) *flows.Account {
	history := flows.NewHistory(h.deps.Log, h.client, view)
	deposit := flows.NewDeposit(h.deps, h.client, view, history)
	password := flows.NewChangePassword(h.deps, h.client, view)
	logout := flows.NewLogout(h.deps, view)
	return flows.NewAccount(h.deps, view, history, deposit, password, logout)
}

func TestAccount_Open(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, "ann", "ann@example.com", 400000)
	view := newFakeView()
	account := newAccount(h, view)

	require.NoError(t, account.Open(context.Background()))
	require.NotNil(t, view.account)
	assert.Equal(t, flows.AccountInfo{
		Avatar:  "A",
		Name:    "ann",
		Email:   "ann@example.com",
		Balance: "400.000",
		ID:      "ID: " + user.ID,
	}, *view.account)
	assert.Equal(t, flows.MsgHistoryEmpty, view.historyMsg)
	assert.Equal(t, modal.Opening, h.state(t, modal.Account))
}

func TestAccount_OpenFailureStillOpensModal(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Ann", "ann@example.com", 0)
	h.backend.Fail(http.MethodGet, "/users/me", http.StatusInternalServerError, "")

	view := newFakeView()
	err := newAccount(h, view).Open(context.Background())
	require.Error(t, err)
	assert.Nil(t, view.account)
	assert.Equal(t, []toast{{Message: flows.MsgAccountLoadFailed, Kind: notify.Error}}, h.toasts.All())
	assert.Equal(t, modal.Opening, h.state(t, modal.Account))
}

func TestAccount_OpenDepositAfterClose(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Ann", "ann@example.com", 0)
	account := newAccount(h, newFakeView())

	require.NoError(t, account.Open(context.Background()))
	h.clk.Advance(10 * time.Millisecond)

	require.NoError(t, account.OpenDeposit())
	assert.Equal(t, modal.Closing, h.state(t, modal.Account))
	assert.Equal(t, modal.Hidden, h.state(t, modal.Deposit))

	h.clk.Advance(300 * time.Millisecond)
	assert.Equal(t, modal.Hidden, h.state(t, modal.Account))
	assert.Equal(t, modal.Opening, h.state(t, modal.Deposit))
}

func TestAccount_Logout(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "Ann", "ann@example.com", 0)
	view := newFakeView()
	account := newAccount(h, view)

	require.NoError(t, account.Open(context.Background()))
	h.clk.Advance(10 * time.Millisecond)
	require.NoError(t, account.Logout(context.Background()))
	assert.True(t, h.deps.Session.Store().LoggedIn(), "logout waits for the modal to close")

	h.clk.Advance(300 * time.Millisecond)
	assert.False(t, h.deps.Session.Store().LoggedIn())
	assert.Equal(t, 1, view.loggedOut)
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name    string
		form    validation.ChangePasswordForm
		message string
		kind    notify.Kind
	}{
		{
			name:    "mismatch",
			form:    validation.ChangePasswordForm{CurrentPassword: "secret1", NewPassword: "abcdef", ConfirmNewPassword: "abcdeg"},
			message: validation.MsgNewPasswordMatch,
			kind:    notify.Error,
		},
		{
			name:    "too short",
			form:    validation.ChangePasswordForm{CurrentPassword: "secret1", NewPassword: "abc", ConfirmNewPassword: "abc"},
			message: validation.MsgPasswordShort,
			kind:    notify.Error,
		},
		{
			name:    "wrong current password",
			form:    validation.ChangePasswordForm{CurrentPassword: "nope123", NewPassword: "newpass", ConfirmNewPassword: "newpass"},
			message: "Your current password is wrong.",
			kind:    notify.Error,
		},
		{
			name:    "success",
			form:    validation.ChangePasswordForm{CurrentPassword: "secret1", NewPassword: "newpass", ConfirmNewPassword: "newpass"},
			message: flows.MsgPasswordChanged,
			kind:    notify.Success,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.signIn(t, "Ann", "ann@example.com", 0)
			view := newFakeView()
			change := flows.NewChangePassword(h.deps, h.client, view)

			require.NoError(t, change.Open())
			h.clk.Advance(10 * time.Millisecond)

			err := change.Submit(context.Background(), tc.form)
			assert.Equal(t, []toast{{Message: tc.message, Kind: tc.kind}}, h.toasts.All())

			if tc.kind == notify.Error {
				assert.Error(t, err)
				h.clk.Advance(2 * time.Second)
				assert.Equal(t, modal.Shown, h.state(t, modal.ChangePassword))
				return
			}

			require.NoError(t, err)
			h.clk.Advance(time.Second)
			assert.Equal(t, modal.Closing, h.state(t, modal.ChangePassword))
			h.clk.Advance(300 * time.Millisecond)
			assert.Equal(t, modal.Hidden, h.state(t, modal.ChangePassword))
			assert.Equal(t, 1, view.resets)

			_, err = h.deps.Session.Login(context.Background(), "ann@example.com", "newpass")
			assert.NoError(t, err)
		})
	}
}

func TestComingSoon(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, flows.NewComingSoon(h.modals).Open())
	assert.Equal(t, modal.Opening, h.state(t, modal.ComingSoon))
}

func TestCatalog(t *testing.T) {
	h := newHarness(t)
	phone := h.backend.AddProduct(models.Product{Name: "Phone", Price: 5000000, Category: "mobile"})
	h.backend.AddProduct(models.Product{Name: "Tablet", Price: 7000000, Category: "mobile"})
	catalog := flows.NewCatalog(logger.Discard(), h.client)
	ctx := context.Background()

	assert.Len(t, catalog.List(ctx), 2)
	require.NotNil(t, catalog.Get(ctx, phone.ID))
	assert.Equal(t, "Phone", catalog.Get(ctx, phone.ID).Name)
	assert.Len(t, catalog.Related(ctx, phone.ID), 1)

	assert.Nil(t, catalog.Get(ctx, "missing"))
	assert.Empty(t, catalog.Related(ctx, "missing"))

	h.backend.Fail(http.MethodGet, "/products", http.StatusInternalServerError, "")
	products := catalog.List(ctx)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
