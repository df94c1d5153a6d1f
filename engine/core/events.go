package core

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Pointer pressed.
	/* Context usage:
	 * data := context.Data.(*PointerEvent)
	 */
	EVENT_CODE_POINTER_PRESSED EventCode = 0x02

	// Pointer moved while pressed.
	/* Context usage:
	 * data := context.Data.(*PointerEvent)
	 */
	EVENT_CODE_POINTER_MOVED EventCode = 0x03

	// Pointer released. PointerEvent.Duration holds the animation duration in ms.
	EVENT_CODE_POINTER_RELEASED EventCode = 0x04

	// Surface resized.
	/* Context usage:
	 * data := context.Data.(*ResizeEvent)
	 */
	EVENT_CODE_RESIZED EventCode = 0x05

	// A flip animation reached a terminal state.
	/* Context usage:
	 * state := context.Data.(int)
	 */
	EVENT_CODE_FLIP_FINISHED EventCode = 0x06

	// A watched asset changed on disk.
	/* Context usage:
	 * path := context.Data.(string)
	 */
	EVENT_CODE_ASSET_RELOADED EventCode = 0x07

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type PointerEvent struct {
	X, Y     float32
	Duration int
}

type ResizeEvent struct {
	Width, Height int
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events synchronously on the caller's goroutine.
type EventBus struct {
	registered map[EventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener combos will not be registered again and will cause this to return false.
 * @param code The event code to listen for.
 * @param listener A listener instance. Can be nil.
 * @param onEvent The callback function to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (b *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	for _, e := range b.registered[code] {
		if listener != nil && e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns false.
 */
func (b *EventBus) Unregister(code EventCode, listener interface{}) bool {
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (b *EventBus) Fire(context EventContext) bool {
	for _, e := range b.registered[context.Type] {
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (b *EventBus) Shutdown() {
	b.registered = make(map[EventCode][]*registeredEvent)
}
