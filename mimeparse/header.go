package mimeparse

// appendHeaderBytes appends s to the header buffer, honoring the
// HEADER_LIMIT cap (spec.md §4.4 rules 1-2, §7 DoS mitigation). Any
// overflow is silently discarded; ERR_TRUNC_HEADER is set only when
// ReportTruncHeader is enabled.
func (p *Parser) appendHeaderBytes(s []byte) {
	remaining := p.tunables.HeaderLimit - len(p.headerBuf)
	if remaining <= 0 {
		if p.opts.has(ReportTruncHeader) {
			p.errs |= ErrTruncHeader
		}
		return
	}
	if len(s) > remaining {
		s = s[:remaining]
		if p.opts.has(ReportTruncHeader) {
			p.errs |= ErrTruncHeader
		}
	}
	p.headerBuf = append(p.headerBuf, s...)
}

// continueHeader attempts to fold rec/text into the in-progress
// header per spec.md §4.4 rules 1-2. It reports whether the record
// was consumed as a continuation; when false, the caller must flush
// the in-progress header and evaluate text as something new.
func (p *Parser) continueHeader(rec RecordType, text []byte) bool {
	if len(p.headerBuf) == 0 {
		return false
	}
	switch {
	case rec == Continuation:
		// rule 1: raw append, no newline
		p.appendHeaderBytes(text)
		return true
	case rec == Normal && len(text) > 0 && isWSP(text[0]):
		// rule 2: folded continuation, newline preserved
		p.appendHeaderBytes([]byte{'\n'})
		p.appendHeaderBytes(text)
		return true
	default:
		return false
	}
}

// seedHeader establishes a new partial header from a Normal record
// that is_header recognizes as starting a header name (spec.md §4.4
// "Determining start of a header"). It normalizes the obsolete
// "name SP :" form to "name:" and skips the single space typically
// following the colon.
func (p *Parser) seedHeader(text []byte) bool {
	nameLen := p.headerIndex.IsHeader(text)
	if nameLen == 0 {
		return false
	}
	name := trimTrailingWSP(text[:nameLen-1])
	value := text[nameLen:]
	if len(value) > 0 && isWSP(value[0]) {
		value = value[1:]
	}
	p.headerBuf = p.headerBuf[:0]
	p.appendHeaderBytes(name)
	p.appendHeaderBytes([]byte{':'})
	p.appendHeaderBytes(value)
	return true
}

func trimTrailingWSP(b []byte) []byte {
	i := len(b)
	for i > 0 && isWSP(b[i-1]) {
		i--
	}
	return b[:i]
}

// flushHeader implements spec.md §4.5: dispatch to the Content-Type /
// Content-Transfer-Encoding analyzer, scan for 8-bit bytes, emit the
// header (unless it's a CTE header being replaced by a synthesized
// one under Downgrade), then reset the buffer.
func (p *Parser) flushHeader() {
	if len(p.headerBuf) == 0 {
		return
	}

	var desc *HeaderDesc
	if !p.opts.has(DisableMime) {
		desc = p.headerIndex.Lookup(p.headerBuf)
		if desc != nil {
			_, valueStart := splitHeaderName(p.headerBuf)
			switch desc.Kind {
			case DescContentType:
				p.analyzeContentType(p.headerBuf, valueStart)
			case DescContentTransferEncoding:
				p.analyzeTransferEncoding(p.headerBuf, valueStart)
			}
		}
	}

	if p.opts.has(Report8bitInHeader) && p.errs&Err8bitInHeader == 0 {
		for _, b := range p.headerBuf {
			if b&0x80 != 0 {
				p.errs |= Err8bitInHeader
				break
			}
		}
	}

	suppress := desc != nil && desc.Kind == DescContentTransferEncoding &&
		p.opts.has(Downgrade) && p.curDom != DomSevenBit
	if !suppress {
		p.sinks.headOut(p.headerClass(), desc, p.headerBuf)
	}

	p.headerBuf = p.headerBuf[:0]
}

// headerClass maps the current driver state to the HeaderClass passed
// to HeadOut.
func (p *Parser) headerClass() HeaderClass {
	switch p.state {
	case MultipartHdr:
		return ClassMultipart
	case NestedHdr:
		return ClassNested
	default:
		return ClassPrimary
	}
}
