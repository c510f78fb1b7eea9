// Package diag wires a mimeparse.Parser's Sinks to the module's
// logging and event-bus ambient stack. mimeparse itself stays free of
// both dependencies; a caller that wants structured logs and lifecycle
// events for its parser (mimeflowd does) wraps its real Sinks with
// Recorder.Wrap instead of passing them to NewParser directly.
package diag

import (
	"github.com/mailchannels/mimeflow/ev"
	"github.com/mailchannels/mimeflow/log"
	"github.com/mailchannels/mimeflow/mimeparse"
)

// Recorder publishes parser lifecycle events to an EventHandler and
// logs them through a Logger, then forwards to the wrapped Sinks.
type Recorder struct {
	Logger log.Logger
	Bus    *ev.EventHandler

	seenErrs mimeparse.ErrBits
}

// Wrap returns a Sinks that records through r before calling through
// to next. A nil field on next is simply never invoked, same as a
// bare mimeparse.Sinks.
func (r *Recorder) Wrap(next mimeparse.Sinks) mimeparse.Sinks {
	if r.Bus != nil {
		r.Bus.Publish(ev.MessageStart)
	}
	return mimeparse.Sinks{
		HeadOut: func(class mimeparse.HeaderClass, desc *mimeparse.HeaderDesc, buf []byte) {
			if r.Logger != nil {
				r.Logger.WithField("class", class.String()).Debug("header: " + string(buf))
			}
			if r.Bus != nil {
				r.Bus.Publish(ev.HeaderParsed, class, desc, buf)
			}
			if next.HeadOut != nil {
				next.HeadOut(class, desc, buf)
			}
		},
		HeadEnd: func() {
			if next.HeadEnd != nil {
				next.HeadEnd()
			}
		},
		BodyOut: func(rec mimeparse.RecordType, buf []byte) {
			if next.BodyOut != nil {
				next.BodyOut(rec, buf)
			}
		},
		BodyEnd: func() {
			if r.Bus != nil {
				r.Bus.Publish(ev.MessageEnd)
			}
			if next.BodyEnd != nil {
				next.BodyEnd()
			}
		},
		BoundaryPushed: func(depth int) {
			if r.Bus != nil {
				r.Bus.Publish(ev.BoundaryPushed, depth)
			}
			if next.BoundaryPushed != nil {
				next.BoundaryPushed(depth)
			}
		},
		BoundaryPopped: func(depth int) {
			if r.Bus != nil {
				r.Bus.Publish(ev.BoundaryPopped, depth)
			}
			if next.BoundaryPopped != nil {
				next.BoundaryPopped(depth)
			}
		},
	}
}

// NoteDowngrade publishes ev.EncodingDowngraded. Call it the first
// time a body record is routed through the downgrader for a message;
// mimeparse itself raises no such event, since it has no event-bus
// dependency, so the caller driving the Parser is responsible for
// calling this when it cares.
func (r *Recorder) NoteDowngrade() {
	if r.Bus != nil {
		r.Bus.Publish(ev.EncodingDowngraded)
	}
}

// NoteErrors publishes ev.ParseErrorRaised for any bit present in bits
// that wasn't already reported by an earlier call, and logs one warning
// carrying the error string of those newly-seen bits.
func (r *Recorder) NoteErrors(bits mimeparse.ErrBits) {
	newBits := bits &^ r.seenErrs
	if newBits == 0 {
		return
	}
	r.seenErrs |= newBits
	err := &mimeparse.Error{Bits: newBits}
	if r.Logger != nil {
		r.Logger.WithError(err).Warn("mime parse error")
	}
	if r.Bus != nil {
		r.Bus.Publish(ev.ParseErrorRaised, err)
	}
}

// NewEventHandler is a convenience constructor so callers that only
// need the bus (no logging) don't have to import ev directly.
func NewEventHandler() *ev.EventHandler {
	return ev.NewEventHandler()
}
