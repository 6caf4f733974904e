package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/api"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/validation"
)

// PasswordClient - смена пароля через API
type PasswordClient interface {
	UpdatePassword(ctx context.Context, req api.UpdatePasswordRequest) error
}

// ResettableView - форма без сообщений под полями, ошибки идут тостами
type ResettableView interface {
	SetLoading(loading bool)
	Reset()
}

type ChangePassword struct {
	busy
	deps   Deps
	client PasswordClient
	view   ResettableView
}

func NewChangePassword(deps Deps, client PasswordClient, view ResettableView) *ChangePassword {
	return &ChangePassword{deps: deps, client: client, view: view}
}

func (c *ChangePassword) Open() error {
	return c.deps.Modals.Open(modal.ChangePassword)
}

// Submit меняет пароль; сначала проверяется совпадение нового пароля, затем длина
func (c *ChangePassword) Submit(ctx context.Context, form validation.ChangePasswordForm) error {
	const op = "flows.ChangePassword.Submit"
	log := c.deps.Log.With(slog.String("op", op))

	if err := validation.Struct(form); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.deps.Notifier.Notify(verrs[0].Message, notify.Error)
			return verrs
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if !c.acquire() {
		return ErrBusy
	}
	c.view.SetLoading(true)
	defer func() {
		c.view.SetLoading(false)
		c.release()
	}()

	err := c.client.UpdatePassword(ctx, api.UpdatePasswordRequest{
		PasswordCurrent: form.CurrentPassword,
		Password:        form.NewPassword,
		PasswordConfirm: form.ConfirmNewPassword,
	})
	if err != nil {
		log.Warn("password change failed", slog.Any("error", err))
		c.deps.Notifier.Notify(api.MessageOf(err, MsgPasswordFailed), notify.Error)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.deps.Notifier.Notify(MsgPasswordChanged, notify.Success)
	c.deps.Sched.AfterFunc(c.deps.UI.PasswordCloseDelay, func() {
		if err := c.deps.Modals.CloseThen(modal.ChangePassword, c.view.Reset); err != nil {
			log.Error("failed to close change password modal", slog.Any("error", err))
		}
	})
	return nil
}
