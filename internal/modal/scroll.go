package modal

import "sync"

// Page - страница под модальными окнами
type Page interface {
	SetScrollable(scrollable bool)
}

// ScrollLock блокирует прокрутку страницы, пока открыто хотя бы одно окно
type ScrollLock struct {
	mu    sync.Mutex
	page  Page
	count int
}

func NewScrollLock(page Page) *ScrollLock {
	return &ScrollLock{page: page}
}

func (l *ScrollLock) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
	if l.count == 1 && l.page != nil {
		l.page.SetScrollable(false)
	}
}

func (l *ScrollLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == 0 {
		return
	}
	l.count--
	if l.count == 0 && l.page != nil {
		l.page.SetScrollable(true)
	}
}

// Locked - заблокирована ли прокрутка
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count > 0
}
