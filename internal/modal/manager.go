package modal

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Имена окон клиента
const (
	Auth           = "auth"
	ForgotPassword = "forgot-password"
	Account        = "account"
	Deposit        = "deposit"
	ChangePassword = "change-password"
	ComingSoon     = "coming-soon"
)

// FamilyAuth - окна входа: одновременно видно не больше одного
const FamilyAuth = "auth"

var ErrUnknownModal = errors.New("unknown modal")

type entry struct {
	modal  *Modal
	family string
}

// Manager хранит окна по именам и следит за взаимоисключением внутри семейства
type Manager struct {
	log      *slog.Logger
	animator Animator
	scroll   *ScrollLock

	mu      sync.RWMutex
	entries map[string]entry
}

func NewManager(log *slog.Logger, animator Animator, scroll *ScrollLock) *Manager {
	return &Manager{
		log:      log,
		animator: animator,
		scroll:   scroll,
		entries:  make(map[string]entry),
	}
}

// Register добавляет окно. family пустой - окно ни с кем не конфликтует.
func (m *Manager) Register(name string, view View, family string) *Modal {
	mod := newModal(m.log, name, view, m.animator, m.scroll)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = entry{modal: mod, family: family}
	return mod
}

func (m *Manager) Get(name string) (*Modal, error) {
	const op = "modal.Manager.Get"

	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", op, name, ErrUnknownModal)
	}
	return e.modal, nil
}

// Open открывает окно; открытые окна того же семейства сначала закрываются,
// и окно появляется только после их полного скрытия.
func (m *Manager) Open(name string) error {
	const op = "modal.Manager.Open"

	m.mu.RLock()
	target, ok := m.entries[name]
	var siblings []*Modal
	if ok && target.family != "" {
		for n, e := range m.entries {
			if n != name && e.family == target.family && e.modal.State().Visible() {
				siblings = append(siblings, e.modal)
			}
		}
	}
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%s: %s: %w", op, name, ErrUnknownModal)
	}
	if len(siblings) == 0 {
		target.modal.Open()
		return nil
	}

	var (
		mu      sync.Mutex
		pending = len(siblings)
	)
	for _, sib := range siblings {
		sib.closeThen(func() {
			mu.Lock()
			pending--
			last := pending == 0
			mu.Unlock()
			if last {
				target.modal.Open()
			}
		})
	}
	return nil
}

func (m *Manager) Close(name string) error {
	mod, err := m.Get(name)
	if err != nil {
		return err
	}
	mod.Close()
	return nil
}

// CloseThen закрывает окно и вызывает fn после полного скрытия
func (m *Manager) CloseThen(name string, fn func()) error {
	mod, err := m.Get(name)
	if err != nil {
		return err
	}
	mod.closeThen(fn)
	return nil
}

// BackdropClick - клик по фону вокруг окна, равносилен закрытию
func (m *Manager) BackdropClick(name string) error {
	return m.Close(name)
}

func (m *Manager) State(name string) (State, error) {
	mod, err := m.Get(name)
	if err != nil {
		return Hidden, err
	}
	return mod.State(), nil
}

// ScrollLocked - заблокирована ли прокрутка страницы
func (m *Manager) ScrollLocked() bool {
	return m.scroll.Locked()
}
