package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

type pointerState struct {
	X, Y    float32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Input tracks pointer state across frames and turns raw changes into
// events on a bus. Only the left button drives page gestures.
type Input struct {
	bus      *EventBus
	current  pointerState
	previous pointerState
}

func NewInput(bus *EventBus) *Input {
	return &Input{bus: bus}
}

// Update copies the current state into the previous one. Call once per frame.
func (in *Input) Update() {
	in.previous = in.current
}

func (in *Input) IsButtonDown(button Button) bool {
	return in.current.Buttons[button]
}

func (in *Input) WasButtonDown(button Button) bool {
	return in.previous.Buttons[button]
}

func (in *Input) Position() (float32, float32) {
	return in.current.X, in.current.Y
}

func (in *Input) PreviousPosition() (float32, float32) {
	return in.previous.X, in.previous.Y
}

// ProcessButton records a press or release at (x, y). durationMs is
// forwarded with a release so the flip animation can use it.
func (in *Input) ProcessButton(button Button, pressed bool, x, y float32, durationMs int) bool {
	in.current.X = x
	in.current.Y = y
	// If the state did not change there is nothing to fire.
	if in.current.Buttons[button] == pressed {
		return false
	}
	in.current.Buttons[button] = pressed
	if button != BUTTON_LEFT {
		return false
	}

	code := EVENT_CODE_POINTER_RELEASED
	if pressed {
		code = EVENT_CODE_POINTER_PRESSED
	}
	return in.bus.Fire(EventContext{
		Type: code,
		Data: &PointerEvent{X: x, Y: y, Duration: durationMs},
	})
}

// ProcessMove records a pointer move; only a drag with the left button
// down fires an event.
func (in *Input) ProcessMove(x, y float32) bool {
	// Only process if actually different
	if in.current.X == x && in.current.Y == y {
		return false
	}
	in.current.X = x
	in.current.Y = y
	if !in.current.Buttons[BUTTON_LEFT] {
		return false
	}
	return in.bus.Fire(EventContext{
		Type: EVENT_CODE_POINTER_MOVED,
		Data: &PointerEvent{X: x, Y: y},
	})
}
