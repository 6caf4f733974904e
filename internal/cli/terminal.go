// Package cli - представления сценариев для терминала.
package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/linemk/storefront/internal/app"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/flows"
	"github.com/linemk/storefront/internal/lib/format"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
)

// Terminal печатает результаты сценариев в out. Вывод из таймеров и команды
// сериализуется мьютексом.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	success *color.Color
	failure *color.Color
	info    *color.Color
	muted   *color.Color
	bold    *color.Color
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
		muted:   color.New(color.FgHiBlack),
		bold:    color.New(color.Bold),
	}
}

// Views собирает представления всех сценариев на этом терминале
func (t *Terminal) Views() app.Views {
	return app.Views{
		Toasts:         toasts{t},
		Page:           page{},
		Modal:          func(name string) modal.View { return modalView{t: t, name: name} },
		Header:         header{t},
		Login:          loginForm{form{t}},
		Register:       registerForm{form{t}},
		ForgotPassword: form{t},
		Deposit:        depositForm{form{t}},
		ChangePassword: form{t},
		History:        history{t},
		Account:        account{t},
	}
}

func (t *Terminal) println(c *color.Color, format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c == nil {
		fmt.Fprintf(t.out, format+"\n", args...)
		return
	}
	c.Fprintf(t.out, format+"\n", args...)
}

type toasts struct{ t *Terminal }

func (r toasts) Mount(toast notify.Toast) {
	switch toast.Kind {
	case notify.Error:
		r.t.println(r.t.failure, "✖ %s", toast.Message)
	case notify.Success:
		r.t.println(r.t.success, "✔ %s", toast.Message)
	default:
		r.t.println(r.t.info, "• %s", toast.Message)
	}
}

// в терминале тост виден с момента монтирования
func (toasts) Show(uint64)    {}
func (toasts) Hide(uint64)    {}
func (toasts) Unmount(uint64) {}

type page struct{}

func (page) SetScrollable(bool) {}

type modalView struct {
	t    *Terminal
	name string
}

func (v modalView) SetDisplay(display bool) {
	if display {
		v.t.println(v.t.muted, "[%s]", v.name)
	}
}

func (modalView) SetVisible(bool) {}

type form struct{ t *Terminal }

func (f form) SetLoading(loading bool) {
	if loading {
		f.t.println(f.t.muted, "Đang xử lý...")
	}
}

func (f form) ShowFieldError(field, message string) {
	f.t.println(f.t.failure, "  %s: %s", field, message)
}

func (form) ClearErrors() {}
func (form) Reset()       {}

type loginForm struct{ form }

func (f loginForm) ShowLoginSuccess(message string) {
	f.t.println(f.t.success, "Đăng nhập thành công!")
	f.t.println(nil, "%s", message)
}

func (loginForm) HideLoginSuccess() {}

type registerForm struct{ form }

func (f registerForm) SwitchToLogin(email string) {
	f.t.println(f.t.muted, "Đăng nhập: storefront login --email %s", email)
}

type depositForm struct{ form }

func (f depositForm) ShowBalance(balance string) {
	f.t.println(f.t.bold, "Số dư: %s%s", balance, format.Currency)
}

type header struct{ t *Terminal }

func (h header) ShowUser(user models.User, balance int64) {
	h.t.println(h.t.bold, "%s  %s  %s", user.Avatar(), user.Name, format.VND(balance))
}

func (h header) ShowLoggedOut() {
	h.t.println(h.t.muted, "Đăng Nhập")
}

type history struct{ t *Terminal }

func (h history) ShowHistory(rows []flows.HistoryRow) {
	for _, row := range rows {
		h.t.println(h.t.success, "%-12s %s", row.Amount, row.Status)
		h.t.println(h.t.muted, "  %s  %s  %s", row.Date, row.CardType, row.CardNumber)
	}
}

func (h history) ShowHistoryMessage(message string) {
	h.t.println(h.t.muted, "%s", message)
}

type account struct{ t *Terminal }

func (a account) ShowAccount(info flows.AccountInfo) {
	a.t.println(a.t.bold, "(%s) %s", info.Avatar, info.Name)
	a.t.println(nil, "%s", info.Email)
	a.t.println(nil, "Số dư: %s%s", info.Balance, format.Currency)
	a.t.println(a.t.muted, "%s", info.ID)
}
