package mimeparse

// Parser drives the record-by-record state machine described in
// spec.md §4. It holds no I/O of its own: the caller feeds records in
// through Update and receives output through the Sinks supplied at
// construction.
type Parser struct {
	state  State
	curCT  ContentType
	curST  ContentSubtype
	curEnc Encoding
	curDom Domain

	headerBuf []byte
	qpBuf     []byte

	prevRecType RecordType

	nestingLevel   int
	maxNestingSeen int
	boundaries     boundaryStack

	lexer       HeaderLexer
	headerIndex HeaderIndex

	errs ErrBits
	opts Options

	tunables Tunables
	sinks    Sinks

	closed bool
}

// NewParser builds a Parser ready to receive records for one message,
// starting in PrimaryHdr state. A nil lexer or headerIndex falls back
// to the package defaults (spec.md §6).
func NewParser(sinks Sinks, opts Options, tunables Tunables, lexer HeaderLexer, headerIndex HeaderIndex) *Parser {
	if lexer == nil {
		lexer = DefaultLexer
	}
	if headerIndex == nil {
		headerIndex = DefaultHeaderIndex
	}
	p := &Parser{
		lexer:       lexer,
		headerIndex: headerIndex,
		opts:        opts,
		tunables:    tunables,
		sinks:       sinks,
	}
	p.boundaries = newBoundaryStack(tunables.MaxBoundaryLen)
	p.Open()
	return p
}

// Open (re)initializes the Parser for the start of a new message,
// discarding any in-progress header or boundary state. Safe to call on
// a freshly constructed Parser or to recycle one across messages.
func (p *Parser) Open() {
	p.state = PrimaryHdr
	p.curCT = CTOther
	p.curST = STOther
	p.curEnc = EncSevenBit
	p.curDom = DomSevenBit
	p.headerBuf = p.headerBuf[:0]
	p.qpBuf = p.qpBuf[:0]
	p.prevRecType = Normal
	p.nestingLevel = 0
	p.maxNestingSeen = 0
	p.boundaries.entries = nil
	p.errs = 0
	p.closed = false
}

// Close flushes any pending state (a trailing Continuation left
// without a terminating Normal record, and an unclosed header or body)
// by driving a final EndOfMessage record through Update, then reports
// the accumulated errors, if any.
func (p *Parser) Close() error {
	if !p.closed {
		p.closed = true
		p.Update(EndOfMessage, nil)
	}
	if p.errs != 0 {
		return &Error{Bits: p.errs}
	}
	return nil
}

// MaxNestingSeen reports the deepest boundary stack depth reached over
// the lifetime of the Parser, independent of the current depth (which
// falls back to 0 once parts close). Useful for post-hoc tuning of
// Tunables.MaxDepth.
func (p *Parser) MaxNestingSeen() int { return p.maxNestingSeen }

// Update feeds one record to the parser and returns the accumulated
// ErrBits (spec.md §4). rec classifies the record; for Normal and
// Continuation, text holds the record payload. Any other RecordType
// signals end-of-input and carries no payload.
func (p *Parser) Update(rec RecordType, text []byte) ErrBits {
	// A non-text record arriving right after a Continuation never gets
	// a chance to close out a pending quoted-printable soft-line
	// buffer, since downgradeQP only flushes on a Normal record.
	// Synthesize one so Close() and friends don't lose a trailing
	// partial line.
	if rec != Normal && rec != Continuation && p.prevRecType == Continuation {
		p.Update(Normal, nil)
	}

	switch p.state {
	case PrimaryHdr, MultipartHdr, NestedHdr:
		p.dispatchHeader(rec, text)
	case Body:
		p.handleBody(rec, text)
	}

	p.prevRecType = rec
	return p.errs
}

// dispatchHeader implements spec.md §4.4-§4.6: fold or flush the
// in-progress header, recognize the start of a new one, and otherwise
// run the header-block-ending sequence. That sequence chooses the next
// state (Body, or NestedHdr for message/rfc822) and then always also
// runs this same record through the Body-state logic, mirroring the
// unconditional case fallthrough in the reference implementation this
// package's body/header split is grounded on.
func (p *Parser) dispatchHeader(rec RecordType, text []byte) {
	isText := rec == Normal || rec == Continuation

	if len(p.headerBuf) > 0 {
		if isText && p.continueHeader(rec, text) {
			return
		}
		p.flushHeader()
	}

	if isText && p.seedHeader(text) {
		return
	}

	// The in-progress header block just ended. curClass is captured
	// before any state transition below, matching the class the
	// just-finished headers were parsed under.
	curClass := p.headerClass()

	if p.opts.has(Downgrade) && p.curDom != DomSevenBit {
		cte := "quoted-printable"
		if p.curCT == CTMessage || p.curCT == CTMultipart {
			cte = "7bit"
		}
		p.sinks.headOut(curClass, nil, []byte("Content-Transfer-Encoding: "+cte))
	}

	if p.state == PrimaryHdr {
		p.sinks.headEnd()
	}

	if p.opts.has(ReportEncodingDomain) {
		identityMismatch := p.curEnc == EncBase64 || p.curEnc == EncQuotedPrintable
		switch p.curCT {
		case CTMessage:
			if p.curST == STPartial || p.curST == STExternBody {
				if p.curDom != DomSevenBit {
					p.errs |= ErrEncodingDomain
				}
			} else if identityMismatch {
				p.errs |= ErrEncodingDomain
			}
		case CTMultipart:
			if identityMismatch {
				p.errs |= ErrEncodingDomain
			}
		}
	}

	switch {
	case isText && len(text) == 0:
		switch p.curCT {
		case CTMessage:
			if p.curST == STRfc822 || p.opts.has(RecurseAllMessage) {
				p.state = NestedHdr
				p.curCT, p.curST = CTText, STPlain
				p.curEnc, p.curDom = EncSevenBit, DomSevenBit
			} else {
				p.state = Body
			}
		case CTMultipart:
			p.state = Body
			p.curCT, p.curST = CTOther, STOther
			p.curEnc, p.curDom = EncSevenBit, DomSevenBit
		default:
			p.state = Body
		}
	case isText:
		// Not blank, and is_header already rejected it above: this
		// line cannot start a header or continue the block we just
		// closed. Force a blank separator line into the body stream
		// and let the real text fall through to Body processing below.
		p.sinks.bodyOut(Normal, []byte{})
		p.state = Body
	default:
		p.state = Body
	}

	p.handleBody(rec, text)
}
