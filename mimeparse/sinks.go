package mimeparse

// Sinks bundles the four output callbacks with their bound context,
// per spec.md §9's design note: "Polymorphism over sinks is a
// four-method capability set... Represent as a small interface or as
// four function values with a shared context handle." A nil callback
// is simply not invoked (HeadEnd and BodyEnd are documented as
// optional in spec.md §3).
//
// HeadOut is permitted to mutate buf, but must not retain it past the
// call: the Parser reuses the same backing array for the next header
// (spec.md §4.5 note, §5).
type Sinks struct {
	HeadOut func(class HeaderClass, desc *HeaderDesc, buf []byte)
	HeadEnd func()
	BodyOut func(rec RecordType, buf []byte)
	BodyEnd func()

	// BoundaryPushed and BoundaryPopped are optional lifecycle hooks
	// fired when the boundary stack changes depth, each passed the
	// resulting depth. Neither is part of spec.md's four-sink design
	// note; they exist solely so a caller like diag.Recorder can
	// observe nesting changes without mimeparse depending on an event
	// bus itself.
	BoundaryPushed func(depth int)
	BoundaryPopped func(depth int)
}

func (s Sinks) headOut(class HeaderClass, desc *HeaderDesc, buf []byte) {
	if s.HeadOut != nil {
		s.HeadOut(class, desc, buf)
	}
}

func (s Sinks) headEnd() {
	if s.HeadEnd != nil {
		s.HeadEnd()
	}
}

func (s Sinks) bodyOut(rec RecordType, buf []byte) {
	if s.BodyOut != nil {
		s.BodyOut(rec, buf)
	}
}

func (s Sinks) bodyEnd() {
	if s.BodyEnd != nil {
		s.BodyEnd()
	}
}

func (s Sinks) boundaryPushed(depth int) {
	if s.BoundaryPushed != nil {
		s.BoundaryPushed(depth)
	}
}

func (s Sinks) boundaryPopped(depth int) {
	if s.BoundaryPopped != nil {
		s.BoundaryPopped(depth)
	}
}
