// Package modal - состояние модальных окон: появление и скрытие с анимацией,
// блокировка прокрутки и взаимоисключающие окна входа.
package modal

import (
	"log/slog"
	"sync"

	"github.com/linemk/storefront/internal/lib/clock"
)

// View - отображение окна
type View interface {
	// SetDisplay показывает или убирает окно из разметки
	SetDisplay(display bool)
	// SetVisible включает видимое состояние (запускает переход)
	SetVisible(visible bool)
}

// Modal - машина состояний одного окна: hidden -> opening -> shown -> closing -> hidden.
type Modal struct {
	name     string
	log      *slog.Logger
	view     View
	animator Animator
	scroll   *ScrollLock

	mu        sync.Mutex
	state     State
	gen       uint64
	timer     clock.Timer
	displayed bool
	onClosed  []func()
	onHidden  []func() // одноразовые, см. closeThen
	onChange  []func(from, to State)
}

func newModal(log *slog.Logger, name string, view View, animator Animator, scroll *ScrollLock) *Modal {
	return &Modal{
		name:     name,
		log:      log.With(slog.String("modal", name)),
		view:     view,
		animator: animator,
		scroll:   scroll,
	}
}

func (m *Modal) Name() string {
	return m.name
}

func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnClosed регистрирует действие после полного скрытия окна (сброс формы и т.п.)
func (m *Modal) OnClosed(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClosed = append(m.onClosed, fn)
}

// OnStateChange регистрирует наблюдателя переходов
func (m *Modal) OnStateChange(fn func(from, to State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// Open показывает окно. Повторный вызов для открытого окна ничего не делает,
// вызов во время скрытия отменяет его.
func (m *Modal) Open() {
	m.mu.Lock()
	if m.state == Opening || m.state == Shown {
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	// переоткрытие отменяет ожидавшие скрытия действия
	m.onHidden = nil
	needDisplay := !m.displayed
	m.displayed = true
	from := m.transitionToLocked(Opening)
	gen := m.gen
	listeners := m.onChange
	m.mu.Unlock()

	notify(listeners, from, Opening)
	if needDisplay {
		m.view.SetDisplay(true)
		m.scroll.Acquire()
	}

	t := m.animator.Enter(func() { m.entered(gen) })
	m.setTimer(gen, t)
}

// Close скрывает окно; для скрытого или уже скрывающегося окна ничего не делает.
func (m *Modal) Close() {
	m.closeThen(nil)
}

// closeThen скрывает окно и вызывает fn, когда оно полностью скрыто
func (m *Modal) closeThen(fn func()) {
	m.mu.Lock()
	if m.state == Hidden {
		m.mu.Unlock()
		if fn != nil {
			fn()
		}
		return
	}
	if fn != nil {
		m.onHidden = append(m.onHidden, fn)
	}
	if m.state == Closing {
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	from := m.transitionToLocked(Closing)
	gen := m.gen
	listeners := m.onChange
	m.mu.Unlock()

	notify(listeners, from, Closing)
	m.view.SetVisible(false)

	t := m.animator.Exit(func() { m.exited(gen) })
	m.setTimer(gen, t)
}

func (m *Modal) entered(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != Opening {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	from := m.transitionToLocked(Shown)
	listeners := m.onChange
	m.mu.Unlock()

	m.view.SetVisible(true)
	notify(listeners, from, Shown)
}

func (m *Modal) exited(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != Closing {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.displayed = false
	from := m.transitionToLocked(Hidden)
	listeners := m.onChange
	closed := m.onClosed
	hidden := m.onHidden
	m.onHidden = nil
	m.mu.Unlock()

	m.view.SetDisplay(false)
	m.scroll.Release()
	notify(listeners, from, Hidden)
	for _, fn := range closed {
		fn()
	}
	for _, fn := range hidden {
		fn()
	}
}

// setTimer запоминает таймер, если за это время не было нового перехода
func (m *Modal) setTimer(gen uint64, t clock.Timer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen && (m.state == Opening || m.state == Closing) {
		m.timer = t
	}
}

func (m *Modal) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Modal) transitionToLocked(to State) State {
	from := m.state
	m.state = to
	m.gen++
	m.log.Debug("modal state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	return from
}

func notify(listeners []func(from, to State), from, to State) {
	for _, fn := range listeners {
		fn(from, to)
	}
}
