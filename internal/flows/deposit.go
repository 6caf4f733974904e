package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/linemk/storefront/internal/api"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/lib/format"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/validation"
)

// DepositClient - пополнение через API
type DepositClient interface {
	Deposit(ctx context.Context, deposit models.Deposit) (int64, error)
}

// DepositView - форма пополнения и отображение баланса
type DepositView interface {
	ResettableFormView
	// ShowBalance выводит отформатированный баланс (без знака валюты)
	ShowBalance(balance string)
}

type Deposit struct {
	busy
	deps    Deps
	client  DepositClient
	view    DepositView
	history *History
}

func NewDeposit(deps Deps, client DepositClient, view DepositView, history *History) *Deposit {
	return &Deposit{deps: deps, client: client, view: view, history: history}
}

func (d *Deposit) Open() error {
	return d.deps.Modals.Open(modal.Deposit)
}

// Submit проверяет карту и пополняет баланс. После успеха окно закрывается с задержкой,
// затем форма очищается, выводится новый баланс и обновляется история. Повторов нет.
func (d *Deposit) Submit(ctx context.Context, form validation.DepositForm) error {
	const op = "flows.Deposit.Submit"
	log := d.deps.Log.With(slog.String("op", op))

	d.view.ClearErrors()
	form.CardNumber = strings.TrimSpace(form.CardNumber)
	form.CardSerial = strings.TrimSpace(form.CardSerial)

	if err := validation.Struct(form); err != nil {
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%s: %w", op, err)
		}
		for _, fe := range verrs {
			// у выбора типа карты нет места под сообщение, поэтому тост
			if fe.Field == validation.FieldCardType {
				d.deps.Notifier.Notify(fe.Message, notify.Error)
				continue
			}
			d.view.ShowFieldError(fe.Field, fe.Message)
		}
		return verrs
	}

	amount, err := strconv.ParseInt(form.Amount, 10, 64)
	if err != nil {
		d.view.ShowFieldError(validation.FieldAmount, validation.MsgAmountRequired)
		return fmt.Errorf("%s: invalid amount: %w", op, err)
	}

	if !d.acquire() {
		return ErrBusy
	}
	d.view.SetLoading(true)
	defer func() {
		d.view.SetLoading(false)
		d.release()
	}()

	balance, err := d.client.Deposit(ctx, models.Deposit{
		CardNumber: form.CardNumber,
		CardSerial: form.CardSerial,
		CardType:   form.CardType,
		Amount:     amount,
	})
	if err != nil {
		log.Warn("deposit failed", slog.Any("error", err))
		d.deps.Notifier.Notify(api.MessageOf(err, MsgDepositFailed), notify.Error)
		return fmt.Errorf("%s: %w", op, err)
	}

	d.deps.Session.Store().SetBalance(balance)
	log.Info("deposit completed", slog.Int64("amount", amount), slog.Int64("balance", balance))
	d.deps.Notifier.Notify(fmt.Sprintf(MsgDepositSuccess, format.Price(amount)), notify.Success)

	bg := detached(ctx)
	d.deps.Sched.AfterFunc(d.deps.UI.DepositCloseDelay, func() {
		err := d.deps.Modals.CloseThen(modal.Deposit, func() {
			d.view.Reset()
			d.view.ShowBalance(format.Price(balance))
			if d.history != nil {
				_ = d.history.Load(bg)
			}
		})
		if err != nil {
			log.Error("failed to close deposit modal", slog.Any("error", err))
		}
	})
	return nil
}
