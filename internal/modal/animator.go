package modal

import (
	"time"

	"github.com/linemk/storefront/internal/lib/clock"
)

// Animator сообщает о завершении анимаций появления и скрытия.
// done вызывается не более одного раза; возвращенный Timer отменяет вызов.
type Animator interface {
	Enter(done func()) clock.Timer
	Exit(done func()) clock.Timer
}

// Timed завершает анимации по таймеру
type Timed struct {
	sched clock.Scheduler
	enter time.Duration
	exit  time.Duration
}

func NewTimed(sched clock.Scheduler, enter, exit time.Duration) *Timed {
	return &Timed{sched: sched, enter: enter, exit: exit}
}

func (t *Timed) Enter(done func()) clock.Timer {
	return t.sched.AfterFunc(t.enter, done)
}

func (t *Timed) Exit(done func()) clock.Timer {
	return t.sched.AfterFunc(t.exit, done)
}

// Instant завершает анимации сразу, в вызывающей горутине
type Instant struct{}

func (Instant) Enter(done func()) clock.Timer {
	done()
	return firedTimer{}
}

func (Instant) Exit(done func()) clock.Timer {
	done()
	return firedTimer{}
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }
