// Package clock отложенный запуск функций: задержки тостов, анимаций модалок и сценариев.
package clock

import (
	"sync"
	"time"
)

// Timer - отменяемый отложенный вызов
type Timer interface {
	// Stop отменяет вызов, false - если он уже выполнен или отменен
	Stop() bool
}

// Scheduler планирует вызов f через d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real - планировщик поверх time.AfterFunc
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Tracked оборачивает планировщик и позволяет дождаться всех запланированных вызовов.
// CLI ждет завершения сценария (закрытие модалки, обновление баланса) перед выходом.
type Tracked struct {
	next Scheduler
	wg   sync.WaitGroup
}

func NewTracked(next Scheduler) *Tracked {
	return &Tracked{next: next}
}

func (t *Tracked) AfterFunc(d time.Duration, f func()) Timer {
	t.wg.Add(1)
	var once sync.Once
	done := func() { once.Do(t.wg.Done) }

	timer := t.next.AfterFunc(d, func() {
		defer done()
		f()
	})
	return trackedTimer{timer: timer, done: done}
}

// Wait блокируется, пока не выполнятся (или не будут отменены) все вызовы,
// включая запланированные изнутри других вызовов.
func (t *Tracked) Wait() {
	t.wg.Wait()
}

type trackedTimer struct {
	timer Timer
	done  func()
}

func (t trackedTimer) Stop() bool {
	stopped := t.timer.Stop()
	if stopped {
		t.done()
	}
	return stopped
}
