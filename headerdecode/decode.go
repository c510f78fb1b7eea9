// Package headerdecode decodes RFC 2047 encoded words ("=?charset?
// Q|B?...?=") in header values emitted by mimeparse.Sinks.HeadOut.
// mimeparse hands callers the raw, still-encoded header bytes; this
// package is the optional next stage a caller reaches for when it
// wants human-readable header text instead.
//
// The encoded-word transport (base64 or quoted-printable) is decoded
// with the standard library, since RFC 2047's word framing is not
// something any library in the example pack implements; the charset
// conversion step that follows uses gopkg.in/iconv.v1, which is the
// pack's actual answer to "convert bytes between charsets".
package headerdecode

import (
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"mime/quotedprintable"
	"strings"

	"gopkg.in/iconv.v1"
)

// Decode scans value for RFC 2047 encoded words and replaces each with
// its UTF-8 decoding, leaving everything else untouched. Decoding
// failures (unknown charset, malformed word) fall back to passing the
// original encoded word through verbatim.
func Decode(value string) string {
	var out strings.Builder
	rest := value
	for {
		start := strings.Index(rest, "=?")
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])
		word, n := decodeWord(rest[start:])
		if n == 0 {
			// not a well-formed encoded word after all; emit the "=?"
			// that triggered the scan and keep looking past it.
			out.WriteString("=?")
			rest = rest[start+2:]
			continue
		}
		out.WriteString(word)
		rest = rest[start+n:]
	}
	return out.String()
}

// decodeWord decodes one "=?charset?enc?text?=" token at the start of
// s. It returns the decoded text and the number of bytes of s
// consumed, or ("", 0) if s does not start with a well-formed word.
func decodeWord(s string) (string, int) {
	if !strings.HasPrefix(s, "=?") {
		return "", 0
	}
	fields := strings.SplitN(s, "?", 5)
	if len(fields) < 5 {
		return "", 0
	}
	charset, enc, text := fields[1], fields[2], fields[3]
	// the closing "?=" was split on its '?', so the last field must
	// start with the '='
	if !strings.HasPrefix(fields[4], "=") {
		return "", 0
	}
	consumed := len("=?") + len(charset) + 1 + len(enc) + 1 + len(text) + len("?=")

	var raw []byte
	switch strings.ToUpper(enc) {
	case "B":
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return s[:consumed], consumed
		}
		raw = b
	case "Q":
		// RFC 2047 "Q" encoding is quoted-printable with "_" standing
		// in for a literal space.
		unescaped := strings.ReplaceAll(text, "_", " ")
		b, err := ioutil.ReadAll(quotedprintable.NewReader(strings.NewReader(unescaped)))
		if err != nil {
			return s[:consumed], consumed
		}
		raw = b
	default:
		return s[:consumed], consumed
	}

	decoded, err := toUTF8(charset, raw)
	if err != nil {
		return s[:consumed], consumed
	}
	return decoded, consumed
}

// toUTF8 converts raw from charset to UTF-8 using iconv. US-ASCII and
// UTF-8 are passed through directly, since iconv.Open("UTF-8",
// "UTF-8") is wasted work for the overwhelmingly common case.
func toUTF8(charset string, raw []byte) (string, error) {
	switch strings.ToUpper(charset) {
	case "US-ASCII", "ASCII", "UTF-8", "UTF8":
		return string(raw), nil
	}
	cd, err := iconv.Open("UTF-8", charset)
	if err != nil {
		return "", fmt.Errorf("headerdecode: unsupported charset %q: %w", charset, err)
	}
	defer cd.Close()
	out, err := cd.Conv(string(raw))
	if err != nil {
		return "", fmt.Errorf("headerdecode: conversion from %q failed: %w", charset, err)
	}
	return strings.TrimRight(out, "\x00"), nil
}
