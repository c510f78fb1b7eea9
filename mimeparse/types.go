// Package mimeparse implements a streaming MIME message parser and an
// optional 8-bit-to-7-bit (quoted-printable) downgrade transformer,
// intended to sit inside a mail transfer agent's message pipeline.
//
// The parser is record-driven: the caller feeds it one record at a
// time (a logical line, or a fragment of one when folded across
// several physical lines) via Parser.Update, and the parser tracks
// header/body state, multipart nesting, and Content-Type /
// Content-Transfer-Encoding, emitting parsed headers and body bytes
// to caller-supplied sinks as it goes.
package mimeparse

// State is one of the parser's four record-dispatch states.
type State int

const (
	PrimaryHdr State = iota
	MultipartHdr
	NestedHdr
	Body
)

var stateNames = [...]string{"PrimaryHdr", "MultipartHdr", "NestedHdr", "Body"}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

// ContentType is the coarse Content-Type super-type.
type ContentType int

const (
	CTOther ContentType = iota
	CTText
	CTMessage
	CTMultipart
)

// ContentSubtype is the recognized subtype, conditioned on ContentType.
type ContentSubtype int

const (
	STOther ContentSubtype = iota
	STPlain
	STRfc822
	STPartial
	STExternBody
)

// Encoding is the Content-Transfer-Encoding value.
type Encoding int

const (
	EncSevenBit Encoding = iota
	EncEightBit
	EncBinary
	EncQuotedPrintable
	EncBase64
)

// Domain is the byte-range domain of the content: always one of these
// three, even when Encoding names a reversible transformation.
type Domain int

const (
	DomSevenBit Domain = iota
	DomEightBit
	DomBinary
)

// RecordType classifies one unit of input handed to Parser.Update.
// Any value other than Normal or Continuation signals end-of-text /
// end-of-message for the current input stream.
type RecordType int

const (
	Normal RecordType = iota
	Continuation
	EndOfMessage
)

// HeaderClass identifies which state a header was parsed in, passed
// to the HeadOut sink.
type HeaderClass int

const (
	ClassPrimary HeaderClass = iota
	ClassMultipart
	ClassNested
)

func (c HeaderClass) String() string {
	switch c {
	case ClassPrimary:
		return "Primary"
	case ClassMultipart:
		return "Multipart"
	case ClassNested:
		return "Nested"
	default:
		return "HeaderClass(?)"
	}
}

// Options are construction-time bit flags (spec.md §6).
type Options uint32

const (
	DisableMime Options = 1 << iota
	ReportTruncHeader
	Report8bitInHeader
	Report8bitIn7bitBody
	ReportEncodingDomain
	RecurseAllMessage
	Downgrade
)

func (o Options) has(f Options) bool { return o&f != 0 }

// Tunables bound the parser's resource usage (spec.md §6, §7 DoS
// mitigations).
type Tunables struct {
	// HeaderLimit caps the number of bytes buffered for one logical
	// header before truncation.
	HeaderLimit int
	// MaxDepth caps multipart nesting (the depth of the boundary
	// stack); message/* nesting is not counted.
	MaxDepth int
	// MaxBoundaryLen caps the number of bytes copied from a
	// boundary= parameter into the boundary stack.
	MaxBoundaryLen int
}

// DefaultTunables mirrors conservative values used by mail transfer
// agents: long enough for a real header, short enough to bound memory
// against adversarial input.
var DefaultTunables = Tunables{
	HeaderLimit:    65536,
	MaxDepth:       100,
	MaxBoundaryLen: 80,
}
