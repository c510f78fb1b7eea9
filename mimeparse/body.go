package mimeparse

// handleBody implements the Body branch of spec.md §4.6: 8-bit
// detection, boundary recognition with unwind-to-match, and routing
// to either the raw sink or the quoted-printable downgrader.
func (p *Parser) handleBody(rec RecordType, text []byte) {
	if rec != Normal && rec != Continuation {
		p.sinks.bodyEnd()
		return
	}

	if p.opts.has(Report8bitIn7bitBody) && p.curEnc == EncSevenBit && p.errs&Err8bitIn7bitBody == 0 {
		for _, b := range text {
			if b&0x80 != 0 {
				p.errs |= Err8bitIn7bitBody
				break
			}
		}
	}

	if p.boundaries.depth() > 0 && rec != Continuation &&
		len(text) >= 2 && text[0] == '-' && text[1] == '-' {
		tail := text[2:]
		if idx, ok := p.boundaries.matchBoundary(tail); ok {
			p.unwindAbove(idx)
			entry := p.boundaries.entries[idx]
			rest := tail[len(entry.boundary):]
			if len(rest) >= 2 && rest[0] == '-' && rest[1] == '-' {
				// closing delimiter: pop the matched entry
				p.popBoundary()
				p.state = Body
				p.curCT, p.curST = CTOther, STOther
				p.curEnc, p.curDom = EncSevenBit, DomSevenBit
			} else {
				// opening delimiter for a sibling part: matched
				// entry stays on the stack
				p.state = MultipartHdr
				p.curCT, p.curST = entry.innerCT, entry.innerST
				p.curEnc, p.curDom = EncSevenBit, DomSevenBit
			}
			return
		}
		// starts with "--" but matches no stack boundary: emitted as
		// body content verbatim, per spec.md §9 (explicitly
		// undiagnosed).
	}

	if p.opts.has(Downgrade) && p.curDom != DomSevenBit {
		p.downgradeQP(rec, text)
	} else {
		p.sinks.bodyOut(rec, text)
	}
}
