package mimeparse

// tspecials is the RFC 2045 special-character set used when lexing
// Content-Type (and Content-Transfer-Encoding) header values.
const tspecials = `()<>@,;:\"/[]?=`

// analyzeContentType implements spec.md §4.2. buf holds the
// reassembled "Content-Type: <value>" header; valueStart is the byte
// offset of the value (past the header name and colon).
func (p *Parser) analyzeContentType(buf []byte, valueStart int) {
	cursor := valueStart

	// first token group: primary type, "/", subtype
	group := p.lexer.Lex(buf, &cursor, tspecials, ';', 3)
	if len(group) < 3 || group[0].Kind != TokWord || group[1].Kind != TokPunct ||
		group[1].Value != "/" || group[2].Kind != TokWord {
		p.curCT = CTOther
		p.curST = STOther
		return
	}
	super := group[0].Value
	sub := group[2].Value

	switch {
	case equalFoldASCII(super, "text"):
		p.curCT = CTText
		if equalFoldASCII(sub, "plain") {
			p.curST = STPlain
		} else {
			p.curST = STOther
		}
		return

	case equalFoldASCII(super, "message"):
		p.curCT = CTMessage
		switch {
		case equalFoldASCII(sub, "rfc822"):
			p.curST = STRfc822
		case equalFoldASCII(sub, "partial"):
			p.curST = STPartial
		case equalFoldASCII(sub, "external-body"):
			p.curST = STExternBody
		default:
			p.curST = STOther
		}
		return

	case equalFoldASCII(super, "multipart"):
		p.curCT = CTMultipart
		p.curST = STOther
		var innerCT ContentType
		var innerST ContentSubtype
		if equalFoldASCII(sub, "digest") {
			innerCT, innerST = CTMessage, STRfc822
		} else {
			innerCT, innerST = CTText, STPlain
		}
		// continue lexing parameters: attribute "=" value groups
		for cursor < len(buf) {
			before := cursor
			pgroup := p.lexer.Lex(buf, &cursor, tspecials, ';', 3)
			if len(pgroup) < 3 || pgroup[0].Kind != TokWord ||
				pgroup[1].Kind != TokPunct || pgroup[1].Value != "=" {
				// an empty group is just a consumed ';' separator; stop
				// only when the lexer made no progress at all
				if cursor == before {
					break
				}
				continue
			}
			attr := pgroup[0].Value
			val := pgroup[2].Value
			if equalFoldASCII(attr, "boundary") {
				// Each boundary= parameter is pushed, even when more
				// than one is present (spec.md §4.2: "Multiple
				// boundary= parameters are each pushed; this is
				// illegal per RFC but accepted defensively").
				p.pushBoundary(val, innerCT, innerST)
			}
		}
		return

	default:
		p.curCT = CTOther
		p.curST = STOther
		return
	}
}
