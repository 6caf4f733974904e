package modal

// State - фаза жизненного цикла модального окна
type State int

const (
	// Hidden окно не отображается
	Hidden State = iota
	// Opening окно отображено, ждем окончания анимации появления
	Opening
	// Shown окно видно полностью
	Shown
	// Closing идет анимация скрытия
	Closing
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Opening:
		return "opening"
	case Shown:
		return "shown"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Visible - окно занимает экран (в любой фазе, кроме Hidden)
func (s State) Visible() bool {
	return s != Hidden
}
