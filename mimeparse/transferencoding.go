package mimeparse

// analyzeTransferEncoding implements spec.md §4.3: parse exactly one
// token from the reassembled "Content-Transfer-Encoding: <value>"
// header and, if recognized, update the current encoding and domain.
// Unrecognized tokens leave curEnc/curDom unchanged.
func (p *Parser) analyzeTransferEncoding(buf []byte, valueStart int) {
	cursor := valueStart
	toks := p.lexer.Lex(buf, &cursor, tspecials, ';', 1)
	if len(toks) == 0 || toks[0].Kind != TokWord {
		return
	}
	switch tok := toks[0].Value; {
	case equalFoldASCII(tok, "7bit"):
		p.curEnc, p.curDom = EncSevenBit, DomSevenBit
	case equalFoldASCII(tok, "8bit"):
		p.curEnc, p.curDom = EncEightBit, DomEightBit
	case equalFoldASCII(tok, "binary"):
		p.curEnc, p.curDom = EncBinary, DomBinary
	case equalFoldASCII(tok, "base64"):
		p.curEnc, p.curDom = EncBase64, DomSevenBit
	case equalFoldASCII(tok, "quoted-printable"):
		p.curEnc, p.curDom = EncQuotedPrintable, DomSevenBit
	}
}
