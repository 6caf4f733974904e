// Package flows - пользовательские сценарии клиента: вход, регистрация, пополнение, смена пароля,
// кабинет. Каждый сценарий работает с сессией, API, окнами и уведомлениями через интерфейсы
// и выводит результат в свое представление (View).
package flows

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/lib/clock"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/session"
)

// ErrBusy - сценарий уже выполняется, повторная отправка отклонена
var ErrBusy = errors.New("operation already in progress")

// Modals - управление модальными окнами
type Modals interface {
	Open(name string) error
	Close(name string) error
	CloseThen(name string, fn func()) error
}

// Notifier показывает тосты
type Notifier interface {
	Notify(message string, kind notify.Kind) uint64
}

// HeaderView - шапка страницы: пользователь с балансом или кнопка входа
type HeaderView interface {
	ShowUser(user models.User, balance int64)
	ShowLoggedOut()
}

// Deps - общие зависимости сценариев
type Deps struct {
	Log      *slog.Logger
	Session  *session.Service
	Modals   Modals
	Notifier Notifier
	Sched    clock.Scheduler
	UI       config.UIConfig
}

// busy - флаг выполнения сценария, защищает от двойной отправки формы
type busy struct {
	flag atomic.Bool
}

func (b *busy) acquire() bool {
	return b.flag.CompareAndSwap(false, true)
}

func (b *busy) release() {
	b.flag.Store(false)
}

// Busy - выполняется ли сценарий
func (b *busy) Busy() bool {
	return b.flag.Load()
}

// detached - контекст для отложенных действий, переживающий отмену запроса
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
