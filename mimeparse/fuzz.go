// +build gofuzz

package mimeparse

import "bytes"

// Fuzz drives a Parser with every Options flag set at once, over
// data split into Normal records on '\n'. It never panics on
// well-formed or malformed input; a panic is the only failure mode
// go-fuzz can detect here, since every other outcome (including a
// non-zero ErrBits) is a valid parse result.
func Fuzz(data []byte) int {
	opts := DisableMime | ReportTruncHeader | Report8bitInHeader |
		Report8bitIn7bitBody | ReportEncodingDomain | RecurseAllMessage | Downgrade

	p := NewParser(Sinks{}, opts, DefaultTunables, nil, nil)
	for _, line := range bytes.Split(data, []byte("\n")) {
		p.Update(Normal, line)
	}
	p.Close()
	return 1
}
