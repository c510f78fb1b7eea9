// Package recordfeed turns an io.Reader into the (RecordType, []byte)
// record pairs mimeparse.Parser.Update expects, one physical line at a
// time, grounded on derat-rendmail's messageReader.readLine (the same
// bufio.Reader.ReadString('\n') technique). Like Postfix's own callers
// (qmgr/cleanup), each physical line becomes exactly one Normal
// record; there is no line-length based continuation splitting here,
// since REC_TYPE_NORM records are already complete logical lines and
// Continuation only exists for a caller that folds long lines itself.
// This package is ambient plumbing: the CORE parser is defined purely
// in terms of records and never imports it.
package recordfeed

import (
	"bufio"
	"io"

	"github.com/mailchannels/mimeflow/mimeparse"
)

// Record is one unit produced by Reader.Next.
type Record struct {
	Type mimeparse.RecordType
	Data []byte
}

// Reader splits lines of an underlying io.Reader into Records.
type Reader struct {
	r   *bufio.Reader
	eof bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next record. It returns io.EOF once the underlying
// reader is exhausted.
func (rd *Reader) Next() (Record, error) {
	if rd.eof {
		return Record{}, io.EOF
	}

	line, err := rd.r.ReadBytes('\n')
	if len(line) == 0 {
		if err != nil {
			return Record{}, err
		}
	}
	if err == io.EOF {
		rd.eof = true
	} else if err != nil {
		return Record{}, err
	}

	return Record{Type: mimeparse.Normal, Data: trimCRLF(line)}, nil
}

func trimCRLF(ln []byte) []byte {
	if n := len(ln); n > 0 && ln[n-1] == '\n' {
		ln = ln[:n-1]
		if n := len(ln); n > 0 && ln[n-1] == '\r' {
			ln = ln[:n-1]
		}
	}
	return ln
}

// Drive reads every record from r and feeds it to p, finishing with
// p.Close. It's a convenience wrapper for callers that don't need
// fine-grained control over the feed loop (e.g. cmd/mimeflowd).
func Drive(r io.Reader, p *mimeparse.Parser) error {
	rd := NewReader(r)
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		p.Update(rec.Type, rec.Data)
	}
	return p.Close()
}
