package flows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/lib/format"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/pandodao/generic"
)

// TransactionsClient - история операций через API
type TransactionsClient interface {
	Transactions(ctx context.Context) ([]models.Transaction, error)
}

// HistoryRow - строка истории пополнений, готовая к выводу
type HistoryRow struct {
	Amount     string // "+100.000đ"
	Date       string
	CardType   string // "Thẻ viettel"
	CardNumber string // "••••7890"
	Status     string
}

// HistoryView - список пополнений либо сообщение вместо него
type HistoryView interface {
	ShowHistory(rows []HistoryRow)
	ShowHistoryMessage(message string)
}

type History struct {
	log    *slog.Logger
	client TransactionsClient
	view   HistoryView
}

func NewHistory(log *slog.Logger, client TransactionsClient, view HistoryView) *History {
	return &History{log: log, client: client, view: view}
}

// Load загружает историю и выводит только пополнения, новые сверху
func (h *History) Load(ctx context.Context) error {
	const op = "flows.History.Load"

	txs, err := h.client.Transactions(ctx)
	if err != nil {
		h.log.With(slog.String("op", op)).Error("failed to load transaction history", slog.Any("error", err))
		h.view.ShowHistoryMessage(MsgHistoryFailed)
		return fmt.Errorf("%s: %w", op, err)
	}

	deposits := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsDeposit() {
			deposits = append(deposits, tx)
		}
	}
	if len(deposits) == 0 {
		h.view.ShowHistoryMessage(MsgHistoryEmpty)
		return nil
	}

	h.view.ShowHistory(generic.MapSlice(deposits, historyRow))
	return nil
}

func historyRow(tx models.Transaction) HistoryRow {
	return HistoryRow{
		Amount:     "+" + format.VND(tx.Amount),
		Date:       format.DateTime(tx.CreatedAt),
		CardType:   "Thẻ " + tx.CardType,
		CardNumber: format.MaskCard(tx.CardNumber),
		Status:     MsgHistorySuccess,
	}
}

// AccountInfo - данные кабинета, готовые к выводу
type AccountInfo struct {
	Avatar  string
	Name    string
	Email   string
	Balance string
	ID      string // "ID: ..."
}

type AccountView interface {
	ShowAccount(info AccountInfo)
}

// Account - кабинет пользователя и переходы из него
type Account struct {
	busy
	deps     Deps
	view     AccountView
	history  *History
	deposit  *Deposit
	password *ChangePassword
	logout   *Logout
}

func NewAccount(deps Deps, view AccountView, history *History, deposit *Deposit, password *ChangePassword, logout *Logout) *Account {
	return &Account{
		deps:     deps,
		view:     view,
		history:  history,
		deposit:  deposit,
		password: password,
		logout:   logout,
	}
}

// Open обновляет данные пользователя и открывает кабинет. Окно открывается
// и при ошибке загрузки, тогда показывается тост.
func (a *Account) Open(ctx context.Context) error {
	const op = "flows.Account.Open"
	log := a.deps.Log.With(slog.String("op", op))

	if !a.acquire() {
		return ErrBusy
	}
	defer a.release()

	var loadErr error
	if err := a.deps.Session.Refresh(ctx); err != nil {
		log.Error("failed to load account data", slog.Any("error", err))
		a.deps.Notifier.Notify(MsgAccountLoadFailed, notify.Error)
		loadErr = fmt.Errorf("%s: %w", op, err)
	} else {
		store := a.deps.Session.Store()
		user := store.User()
		a.view.ShowAccount(AccountInfo{
			Avatar:  user.Avatar(),
			Name:    user.Name,
			Email:   user.Email,
			Balance: format.Price(store.Balance()),
			ID:      "ID: " + user.ID,
		})
		if a.history != nil {
			_ = a.history.Load(ctx)
		}
	}

	if err := a.deps.Modals.Open(modal.Account); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return loadErr
}

// Close закрывает кабинет
func (a *Account) Close() error {
	return a.deps.Modals.Close(modal.Account)
}

// OpenDeposit закрывает кабинет и после этого открывает пополнение
func (a *Account) OpenDeposit() error {
	return a.deps.Modals.CloseThen(modal.Account, func() {
		if err := a.deposit.Open(); err != nil {
			a.deps.Log.Error("failed to open deposit modal", slog.Any("error", err))
		}
	})
}

// ChangePassword открывает смену пароля поверх кабинета
func (a *Account) ChangePassword() error {
	return a.password.Open()
}

// Logout закрывает кабинет и выходит из аккаунта
func (a *Account) Logout(ctx context.Context) error {
	bg := detached(ctx)
	return a.deps.Modals.CloseThen(modal.Account, func() {
		_ = a.logout.Run(bg)
	})
}

// ComingSoon - окно-заглушка для разделов в разработке (избранное, корзина)
type ComingSoon struct {
	modals Modals
}

func NewComingSoon(modals Modals) *ComingSoon {
	return &ComingSoon{modals: modals}
}

func (c *ComingSoon) Open() error {
	return c.modals.Open(modal.ComingSoon)
}
