package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/storefront/internal/api"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/validation"
)

// FormView - форма с кнопкой отправки и сообщениями под полями
type FormView interface {
	SetLoading(loading bool)
	ShowFieldError(field, message string)
	ClearErrors()
}

// LoginView - форма входа
type LoginView interface {
	FormView
	ShowLoginSuccess(message string)
	HideLoginSuccess()
}

// RegisterView - форма регистрации
type RegisterView interface {
	FormView
	// SwitchToLogin переключает на вкладку входа с заполненным email и очищает регистрацию
	SwitchToLogin(email string)
}

// ResettableFormView - форма, которую очищают после закрытия окна
type ResettableFormView interface {
	FormView
	Reset()
}

// showErrors выводит ошибки проверки под полями; возвращает err, если это не ошибки полей
func showErrors(view FormView, err error) error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		view.ShowFieldError(fe.Field, fe.Message)
	}
	return verrs
}

type Login struct {
	busy
	deps   Deps
	view   LoginView
	header HeaderView
}

func NewLogin(deps Deps, view LoginView, header HeaderView) *Login {
	return &Login{deps: deps, view: view, header: header}
}

// Submit проверяет форму и входит. После показа приветствия окно входа закрывается
// с задержкой, а сессия и шапка обновляются.
func (l *Login) Submit(ctx context.Context, form validation.LoginForm) error {
	const op = "flows.Login.Submit"
	log := l.deps.Log.With(slog.String("op", op))

	l.view.ClearErrors()
	if err := validation.Struct(form); err != nil {
		return showErrors(l.view, err)
	}

	if !l.acquire() {
		return ErrBusy
	}
	l.view.SetLoading(true)
	defer func() {
		l.view.SetLoading(false)
		l.release()
	}()

	user, err := l.deps.Session.Login(ctx, form.Email, form.Password)
	if err != nil {
		l.view.ShowFieldError(validation.FieldPassword, MsgInvalidCredentials)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := l.deps.Session.SetRemember(ctx, form.Remember); err != nil {
		log.Warn("failed to save remember flag", slog.Any("error", err))
	}

	l.view.ShowLoginSuccess(fmt.Sprintf(MsgLoginWelcome, user.Name))

	bg := detached(ctx)
	l.deps.Sched.AfterFunc(l.deps.UI.LoginSuccessDelay, func() {
		if err := l.deps.Modals.Close(modal.Auth); err != nil {
			log.Error("failed to close auth modal", slog.Any("error", err))
		}
		refreshHeader(bg, log, l.deps, l.header)
		l.view.HideLoginSuccess()
	})
	return nil
}

// refreshHeader перечитывает пользователя и баланс и обновляет шапку
func refreshHeader(ctx context.Context, log *slog.Logger, deps Deps, header HeaderView) {
	if err := deps.Session.Refresh(ctx); err != nil {
		log.Error("failed to update header after login", slog.Any("error", err))
		return
	}
	store := deps.Session.Store()
	if user := store.User(); user != nil {
		header.ShowUser(*user, store.Balance())
	}
}

type Register struct {
	busy
	deps Deps
	view RegisterView
}

func NewRegister(deps Deps, view RegisterView) *Register {
	return &Register{deps: deps, view: view}
}

// Submit регистрирует пользователя; ошибка сервера показывается под полем email
func (r *Register) Submit(ctx context.Context, form validation.RegisterForm) error {
	const op = "flows.Register.Submit"

	r.view.ClearErrors()
	if err := validation.Struct(form); err != nil {
		return showErrors(r.view, err)
	}

	if !r.acquire() {
		return ErrBusy
	}
	r.view.SetLoading(true)
	defer func() {
		r.view.SetLoading(false)
		r.release()
	}()

	if _, err := r.deps.Session.Register(ctx, form.Name, form.Email, form.Password, form.Confirm); err != nil {
		r.view.ShowFieldError(validation.FieldEmail, api.MessageOf(err, MsgRegisterFailed))
		return fmt.Errorf("%s: %w", op, err)
	}

	r.deps.Notifier.Notify(MsgRegisterSuccess, notify.Success)
	email := form.Email
	r.deps.Sched.AfterFunc(r.deps.UI.RegisterSwitchDelay, func() {
		r.view.SwitchToLogin(email)
	})
	return nil
}

// ForgotPassword - восстановление пароля. Отдельного API нет, запрос имитируется задержкой.
type ForgotPassword struct {
	busy
	deps Deps
	view ResettableFormView
}

func NewForgotPassword(deps Deps, view ResettableFormView) *ForgotPassword {
	return &ForgotPassword{deps: deps, view: view}
}

// Open показывает окно восстановления вместо окна входа
func (f *ForgotPassword) Open() error {
	return f.deps.Modals.Open(modal.ForgotPassword)
}

func (f *ForgotPassword) Submit(ctx context.Context, form validation.ForgotPasswordForm) error {
	const op = "flows.ForgotPassword.Submit"
	log := f.deps.Log.With(slog.String("op", op))

	f.view.ClearErrors()
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Struct(form); err != nil {
		return showErrors(f.view, err)
	}

	if !f.acquire() {
		return ErrBusy
	}
	f.view.SetLoading(true)
	log.Info("password reset requested")

	f.deps.Sched.AfterFunc(f.deps.UI.ForgotPasswordDelay, func() {
		f.view.SetLoading(false)
		f.release()
		f.deps.Notifier.Notify(MsgForgotPasswordSent, notify.Success)

		f.deps.Sched.AfterFunc(f.deps.UI.ForgotCloseDelay, func() {
			if err := f.deps.Modals.CloseThen(modal.ForgotPassword, f.view.Reset); err != nil {
				log.Error("failed to close forgot password modal", slog.Any("error", err))
			}
		})
	})
	return nil
}

type Logout struct {
	busy
	deps   Deps
	header HeaderView
}

func NewLogout(deps Deps, header HeaderView) *Logout {
	return &Logout{deps: deps, header: header}
}

// Run выходит из аккаунта. Локальная сессия очищается в любом случае,
// при ошибке сервера показывается тост об ошибке.
func (l *Logout) Run(ctx context.Context) error {
	const op = "flows.Logout.Run"

	if !l.acquire() {
		return ErrBusy
	}
	defer l.release()

	err := l.deps.Session.Logout(ctx)
	l.header.ShowLoggedOut()
	if err != nil {
		l.deps.Notifier.Notify(MsgLogoutFailed, notify.Error)
		return fmt.Errorf("%s: %w", op, err)
	}

	l.deps.Notifier.Notify(MsgLogoutSuccess, notify.Success)
	return nil
}

// Restore восстанавливает сессию при запуске и рисует шапку
func Restore(ctx context.Context, deps Deps, header HeaderView) error {
	const op = "flows.Restore"

	err := deps.Session.RestoreFromStorage(ctx)
	store := deps.Session.Store()
	if user := store.User(); user != nil {
		header.ShowUser(*user, store.Balance())
	} else {
		header.ShowLoggedOut()
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
