package mimeparse

// qpSoftLimit is the column at which the downgrader forces a soft
// line break (spec.md §4.7 step 1).
const qpSoftLimit = 72

var hexDigits = "0123456789ABCDEF"

func appendHex(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0f])
}

// downgradeQP implements spec.md §4.7. It is stateless-per-record
// except for the soft-line buffer (p.qpBuf), which carries across
// Continuation records without emitting; a terminating Normal record
// flushes the buffer as one body record, after applying trailing-
// whitespace protection.
func (p *Parser) downgradeQP(rec RecordType, data []byte) {
	var lastLiteral byte
	var hadLiteral bool

	for _, b := range data {
		if len(p.qpBuf) > qpSoftLimit {
			p.qpBuf = append(p.qpBuf, '=')
			p.sinks.bodyOut(Normal, p.qpBuf)
			p.qpBuf = p.qpBuf[:0]
		}
		if (b < 32 && b != 0x09) || b == '=' || b > 126 {
			p.qpBuf = append(p.qpBuf, '=')
			p.qpBuf = appendHex(p.qpBuf, b)
			hadLiteral = false
		} else {
			p.qpBuf = append(p.qpBuf, b)
			lastLiteral = b
			hadLiteral = true
		}
	}

	if rec == Continuation {
		return
	}

	if hadLiteral && (lastLiteral == ' ' || lastLiteral == '\t') {
		p.qpBuf = p.qpBuf[:len(p.qpBuf)-1]
		p.qpBuf = append(p.qpBuf, '=')
		p.qpBuf = appendHex(p.qpBuf, lastLiteral)
	}
	p.sinks.bodyOut(Normal, p.qpBuf)
	p.qpBuf = p.qpBuf[:0]
}
