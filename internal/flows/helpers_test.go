package flows_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/api"
	"github.com/linemk/storefront/internal/apitest"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/flows"
	"github.com/linemk/storefront/internal/lib/clock"
	"github.com/linemk/storefront/internal/lib/logger"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/session"
	"github.com/linemk/storefront/internal/storage"
	"github.com/stretchr/testify/require"
)

type toast struct {
	Message string
	Kind    notify.Kind
}

// fakeNotifier запоминает показанные тосты
type fakeNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *fakeNotifier) Notify(message string, kind notify.Kind) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{Message: message, Kind: kind})
	return uint64(len(n.toasts))
}

func (n *fakeNotifier) All() []toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]toast(nil), n.toasts...)
}

// fakeView реализует все представления сценариев
type fakeView struct {
	mu           sync.Mutex
	loading      []bool
	fieldErrors  map[string]string
	resets       int
	balance      string
	success      string
	successShown bool
	switchedTo   string
	rows         []flows.HistoryRow
	historyMsg   string
	account      *flows.AccountInfo
	user         *models.User
	userBalance  int64
	loggedOut    int
}

func newFakeView() *fakeView {
	return &fakeView{fieldErrors: make(map[string]string)}
}

func (v *fakeView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *fakeView) ShowFieldError(field, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrors[field] = message
}

func (v *fakeView) ClearErrors() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrors = make(map[string]string)
}

func (v *fakeView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *fakeView) ShowBalance(balance string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance = balance
}

func (v *fakeView) ShowLoginSuccess(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.success = message
	v.successShown = true
}

func (v *fakeView) HideLoginSuccess() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.successShown = false
}

func (v *fakeView) SwitchToLogin(email string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.switchedTo = email
}

func (v *fakeView) ShowHistory(rows []flows.HistoryRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
	v.historyMsg = ""
}

func (v *fakeView) ShowHistoryMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = nil
	v.historyMsg = message
}

func (v *fakeView) ShowAccount(info flows.AccountInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.account = &info
}

func (v *fakeView) ShowUser(user models.User, balance int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.user = &user
	v.userBalance = balance
}

func (v *fakeView) ShowLoggedOut() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.user = nil
	v.loggedOut++
}

// modalView - отображение окна, которое ничего не рисует
type modalView struct{}

func (modalView) SetDisplay(bool) {}
func (modalView) SetVisible(bool) {}

type harness struct {
	backend *apitest.Backend
	client  *api.Client
	tokens  storage.Storage
	clk     *clock.Manual
	modals  *modal.Manager
	toasts  *fakeNotifier
	deps    flows.Deps
}

func uiConfig() config.UIConfig {
	return config.UIConfig{
		ToastEnterDelay:     100 * time.Millisecond,
		ToastDuration:       3 * time.Second,
		ToastExitDuration:   300 * time.Millisecond,
		ModalOpenDelay:      10 * time.Millisecond,
		ModalTransition:     300 * time.Millisecond,
		DepositCloseDelay:   time.Second,
		LoginSuccessDelay:   1500 * time.Millisecond,
		RegisterSwitchDelay: time.Second,
		PasswordCloseDelay:  time.Second,
		ForgotPasswordDelay: 1500 * time.Millisecond,
		ForgotCloseDelay:    time.Second,
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.Discard()
	backend := apitest.Start(t, log)
	tokens := storage.NewMemoryStorage()
	client := api.New(log, config.APIConfig{BaseURL: backend.URL, Timeout: 5 * time.Second}, tokens, nil)
	svc := session.NewService(log, client, tokens, session.NewStore())

	ui := uiConfig()
	clk := clock.NewManual()
	modals := modal.NewManager(log, modal.NewTimed(clk, ui.ModalOpenDelay, ui.ModalTransition), modal.NewScrollLock(nil))
	for _, name := range []string{modal.Account, modal.Deposit, modal.ChangePassword, modal.ComingSoon} {
		modals.Register(name, modalView{}, "")
	}
	modals.Register(modal.Auth, modalView{}, modal.FamilyAuth)
	modals.Register(modal.ForgotPassword, modalView{}, modal.FamilyAuth)

	toasts := &fakeNotifier{}
	return &harness{
		backend: backend,
		client:  client,
		tokens:  tokens,
		clk:     clk,
		modals:  modals,
		toasts:  toasts,
		deps: flows.Deps{
			Log:      log,
			Session:  svc,
			Modals:   modals,
			Notifier: toasts,
			Sched:    clk,
			UI:       ui,
		},
	}
}

// signIn заводит пользователя и входит под ним
func (h *harness) signIn(t *testing.T, name, email string, balance int64) models.User {
	t.Helper()

	user := h.backend.AddUser(name, email, "secret1", balance)
	ctx := context.Background()
	_, err := h.deps.Session.Login(ctx, email, "secret1")
	require.NoError(t, err)
	require.NoError(t, h.deps.Session.Refresh(ctx))
	return user
}

func (h *harness) openModal(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, h.modals.Open(name))
	h.clk.Advance(10 * time.Millisecond)
}

func (h *harness) state(t *testing.T, name string) modal.State {
	t.Helper()
	st, err := h.modals.State(name)
	require.NoError(t, err)
	return st
}
