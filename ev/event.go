package ev

import (
	evbus "github.com/asaskevich/EventBus"
)

// Event identifies one point in a Parser's lifecycle that diag
// publishes to subscribers, independent of the mimeparse package
// itself (which has no event-bus dependency of its own).
type Event int

const (
	// MessageStart fires when a Recorder.Wrap call begins wrapping a
	// fresh Parser's Sinks, which in mimeflowd happens once per
	// message right before NewParser is constructed.
	MessageStart Event = iota
	// MessageEnd fires when the Parser handles its end-of-message
	// record (normally inside Parser.Close), via the wrapped BodyEnd sink.
	MessageEnd
	// HeaderParsed fires once per header emitted through HeadOut.
	HeaderParsed
	// BoundaryPushed fires when a multipart boundary is successfully
	// pushed, carrying the resulting stack depth.
	BoundaryPushed
	// BoundaryPopped fires when a multipart boundary is popped,
	// whether by its own closing delimiter or by an enclosing one,
	// carrying the resulting stack depth.
	BoundaryPopped
	// EncodingDowngraded fires when a caller reports, through
	// Recorder.NoteDowngrade, that a body part was routed through the
	// quoted-printable downgrader; the parser never raises it itself.
	EncodingDowngraded
	// ParseErrorRaised fires when a Recorder.NoteErrors call carries a
	// bit that no earlier call reported.
	ParseErrorRaised
)

var eventList = [...]string{
	"message:start",
	"message:end",
	"header:parsed",
	"boundary:pushed",
	"boundary:popped",
	"encoding:downgraded",
	"parse:error",
}

func (e Event) String() string {
	if int(e) < 0 || int(e) >= len(eventList) {
		return "event(?)"
	}
	return eventList[e]
}

// EventHandler is a thin typed wrapper around EventBus, grounded on
// the teacher's config/server change bus but retargeted at parser
// lifecycle events instead of daemon configuration changes.
type EventHandler struct {
	*evbus.EventBus
}

func NewEventHandler() *EventHandler {
	return &EventHandler{EventBus: evbus.New()}
}

func (h *EventHandler) Subscribe(topic Event, fn interface{}) error {
	if h.EventBus == nil {
		h.EventBus = evbus.New()
	}
	return h.EventBus.Subscribe(topic.String(), fn)
}

func (h *EventHandler) Publish(topic Event, args ...interface{}) {
	if h.EventBus == nil {
		return
	}
	h.EventBus.Publish(topic.String(), args...)
}

func (h *EventHandler) Unsubscribe(topic Event, handler interface{}) error {
	return h.EventBus.Unsubscribe(topic.String(), handler)
}
