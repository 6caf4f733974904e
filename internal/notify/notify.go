// Package notify показывает всплывающие уведомления (тосты) с задержками появления и скрытия.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/lib/clock"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Toast - одно уведомление
type Toast struct {
	ID      uint64
	Message string
	Kind    Kind
}

// Renderer отображает тосты. Mount добавляет элемент, Show делает его видимым,
// Hide запускает переход скрытия, Unmount удаляет элемент.
type Renderer interface {
	Mount(t Toast)
	Show(id uint64)
	Hide(id uint64)
	Unmount(id uint64)
}

// Notifier - независимые тосты без очереди и склейки одинаковых
type Notifier struct {
	log      *slog.Logger
	sched    clock.Scheduler
	renderer Renderer

	enterDelay   time.Duration
	duration     time.Duration
	exitDuration time.Duration

	mu     sync.Mutex
	nextID uint64
	active map[uint64]*entry
}

type entry struct {
	exiting bool
	timers  []clock.Timer
}

func New(log *slog.Logger, sched clock.Scheduler, renderer Renderer, cfg config.UIConfig) *Notifier {
	return &Notifier{
		log:          log,
		sched:        sched,
		renderer:     renderer,
		enterDelay:   cfg.ToastEnterDelay,
		duration:     cfg.ToastDuration,
		exitDuration: cfg.ToastExitDuration,
		active:       make(map[uint64]*entry),
	}
}

// Notify монтирует тост и планирует его появление и автоматическое скрытие
func (n *Notifier) Notify(message string, kind Kind) uint64 {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	e := &entry{}
	n.active[id] = e
	n.mu.Unlock()

	n.log.Debug("toast", slog.Uint64("id", id), slog.String("kind", string(kind)), slog.String("message", message))
	n.renderer.Mount(Toast{ID: id, Message: message, Kind: kind})

	show := n.sched.AfterFunc(n.enterDelay, func() { n.show(id) })
	hide := n.sched.AfterFunc(n.duration, func() { n.Dismiss(id) })

	n.mu.Lock()
	if cur, ok := n.active[id]; ok && !cur.exiting {
		cur.timers = append(cur.timers, show, hide)
	}
	n.mu.Unlock()
	return id
}

func (n *Notifier) Success(message string) uint64 {
	return n.Notify(message, Success)
}

func (n *Notifier) Error(message string) uint64 {
	return n.Notify(message, Error)
}

// Dismiss начинает скрытие раньше срока. false - тоста уже нет или он скрывается.
func (n *Notifier) Dismiss(id uint64) bool {
	n.mu.Lock()
	e, ok := n.active[id]
	if !ok || e.exiting {
		n.mu.Unlock()
		return false
	}
	e.exiting = true
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
	n.mu.Unlock()

	n.renderer.Hide(id)
	n.sched.AfterFunc(n.exitDuration, func() { n.unmount(id) })
	return true
}

// Active - число тостов на экране
func (n *Notifier) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.active)
}

func (n *Notifier) show(id uint64) {
	n.mu.Lock()
	e, ok := n.active[id]
	visible := ok && !e.exiting
	n.mu.Unlock()

	if visible {
		n.renderer.Show(id)
	}
}

func (n *Notifier) unmount(id uint64) {
	n.mu.Lock()
	_, ok := n.active[id]
	delete(n.active, id)
	n.mu.Unlock()

	if ok {
		n.renderer.Unmount(id)
	}
}
