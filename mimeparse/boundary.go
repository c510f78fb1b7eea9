package mimeparse

// boundaryEntry is one active multipart delimiter (spec.md §3
// "Boundary Stack Entry"). The Parser owns entries exclusively; they
// are pushed at multipart Content-Type parse time and popped on
// closing delimiters or on Parser.Close.
type boundaryEntry struct {
	boundary string
	innerCT  ContentType
	innerST  ContentSubtype
}

// boundaryStack is a bounded LIFO of boundaryEntry, equivalent to the
// teacher's linked structures (mail/mime/mime.go's Parts tree
// bookkeeping) but expressed as a plain slice, per spec.md §9's note
// that a growable sequence with an explicit depth cap is equivalent
// to a linked list in a memory-safe language.
type boundaryStack struct {
	entries []boundaryEntry
	maxLen  int
}

func newBoundaryStack(maxBoundaryLen int) boundaryStack {
	return boundaryStack{maxLen: maxBoundaryLen}
}

func (s *boundaryStack) depth() int { return len(s.entries) }

// push copies at most maxLen bytes of boundary into a new entry and
// links it at the top. A push is only refused once depth is already
// greater than MaxDepth (mime_state.c:356's `nesting_level >
// var_mime_maxdepth`), so depth can legitimately reach MaxDepth+1
// before an ErrNesting is raised; in that case it sets ErrNesting on p
// and does nothing else (spec.md §4.1).
func (p *Parser) pushBoundary(boundary string, innerCT ContentType, innerST ContentSubtype) {
	if p.boundaries.depth() > p.tunables.MaxDepth {
		p.errs |= ErrNesting
		return
	}
	if len(boundary) > p.boundaries.maxLen {
		boundary = boundary[:p.boundaries.maxLen]
	}
	p.boundaries.entries = append(p.boundaries.entries, boundaryEntry{
		boundary: boundary,
		innerCT:  innerCT,
		innerST:  innerST,
	})
	p.nestingLevel = p.boundaries.depth()
	if p.nestingLevel > p.maxNestingSeen {
		p.maxNestingSeen = p.nestingLevel
	}
	p.sinks.boundaryPushed(p.nestingLevel)
}

// popBoundary requires a non-empty stack; an empty stack here is a
// bug in the driver, not input corruption (spec.md §7 "Fatal").
func (p *Parser) popBoundary() boundaryEntry {
	n := len(p.boundaries.entries)
	if n == 0 {
		panic("mimeparse: pop of empty boundary stack")
	}
	top := p.boundaries.entries[n-1]
	p.boundaries.entries = p.boundaries.entries[:n-1]
	p.nestingLevel = p.boundaries.depth()
	p.sinks.boundaryPopped(p.nestingLevel)
	return top
}

func (p *Parser) topBoundary() *boundaryEntry {
	n := len(p.boundaries.entries)
	if n == 0 {
		return nil
	}
	return &p.boundaries.entries[n-1]
}

// matchBoundary searches the stack top to bottom for the first entry
// whose stored boundary is a prefix of tail (spec.md §4.1's tie-break
// rule). It returns the matched index (position from the bottom, so
// entries[idx] is the match) and whether any match was found. Any
// entries above the match are the caller's responsibility to pop
// before processing (an enclosing delimiter implicitly closes
// unterminated inner parts).
func (s *boundaryStack) matchBoundary(tail []byte) (idx int, ok bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		b := s.entries[i].boundary
		if len(b) <= len(tail) && string(tail[:len(b)]) == b {
			return i, true
		}
	}
	return -1, false
}

// unwindAbove pops every entry above idx (exclusive), leaving
// entries[idx] at the top.
func (p *Parser) unwindAbove(idx int) {
	for len(p.boundaries.entries)-1 > idx {
		p.popBoundary()
	}
}
