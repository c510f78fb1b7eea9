package mimeparse

// DescKind tags a recognized header name with the analyzer that
// should handle it, matching spec.md §6's descriptor type tag.
type DescKind int

const (
	DescOther DescKind = iota
	DescContentType
	DescContentTransferEncoding
)

// HeaderDesc is the descriptor returned by a HeaderIndex lookup.
type HeaderDesc struct {
	Name string
	Kind DescKind
}

// HeaderIndex is the external collaborator described at interface
// level in spec.md §6: is_header(bytes) returns the length of a valid
// header-name prefix (including the colon position) or 0, and the
// descriptor lookup maps a recognized name to a DescKind. Out of
// scope for this package's correctness per spec.md §1 ("header name
// recognition tables"), but a default table ships so the parser is
// usable standalone.
type HeaderIndex interface {
	// IsHeader returns the length of a valid header-name prefix of
	// buf (including the trailing colon), or 0 if buf does not begin
	// a header.
	IsHeader(buf []byte) int
	// Lookup returns the descriptor for a fully-accumulated header
	// buffer (e.g. "Content-Type: text/plain"), or nil if the header
	// name isn't one this index recognizes specially.
	Lookup(buf []byte) *HeaderDesc
}

// DefaultHeaderIndex recognizes RFC 822 "name:" header syntax and the
// two MIME headers the CORE analyzers care about. Adapted from
// mail/mime/mime.go's header() state-0 name scan (any printable,
// non-colon byte is a legal name character; a lone SP before the
// colon is tolerated per the obsolete "name SP :" form).
type defaultHeaderIndex struct{}

var DefaultHeaderIndex HeaderIndex = defaultHeaderIndex{}

func (defaultHeaderIndex) IsHeader(buf []byte) int {
	i := 0
	n := len(buf)
	for i < n && buf[i] >= 33 && buf[i] <= 126 && buf[i] != ':' {
		i++
	}
	if i == 0 {
		return 0
	}
	if i < n && buf[i] == ':' {
		return i + 1
	}
	// tolerate a single SP before the colon (obsolete "name SP :")
	if i < n && buf[i] == ' ' && i+1 < n && buf[i+1] == ':' {
		return i + 2
	}
	return 0
}

func (defaultHeaderIndex) Lookup(buf []byte) *HeaderDesc {
	name, _ := splitHeaderName(buf)
	switch {
	case equalFoldASCII(name, "Content-Type"):
		return &HeaderDesc{Name: "Content-Type", Kind: DescContentType}
	case equalFoldASCII(name, "Content-Transfer-Encoding"):
		return &HeaderDesc{Name: "Content-Transfer-Encoding", Kind: DescContentTransferEncoding}
	default:
		return nil
	}
}

// splitHeaderName splits an accumulated "Name: value..." header
// buffer into the name and the byte offset where the value begins.
func splitHeaderName(buf []byte) (name string, valueStart int) {
	for i, b := range buf {
		if b == ':' {
			return string(buf[:i]), i + 1
		}
	}
	return string(buf), len(buf)
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 32
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 32
		}
		if ca != cb {
			return false
		}
	}
	return true
}
