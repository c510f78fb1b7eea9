package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mailchannels/mimeflow/headerdecode"
	"github.com/mailchannels/mimeflow/mimeparse"
)

// writerSinks reconstructs a message onto w from the header and body
// records a Parser emits: a Normal record terminates the logical line
// with CRLF, a Continuation record is written raw since more of the
// same line is still to come.
func writerSinks(w io.Writer) mimeparse.Sinks {
	bw := bufio.NewWriter(w)
	return mimeparse.Sinks{
		HeadOut: func(class mimeparse.HeaderClass, desc *mimeparse.HeaderDesc, buf []byte) {
			bw.Write(buf)
			bw.WriteString("\r\n")
		},
		HeadEnd: func() {},
		BodyOut: func(rec mimeparse.RecordType, buf []byte) {
			bw.Write(buf)
			if rec == mimeparse.Normal {
				bw.WriteString("\r\n")
			}
		},
		BodyEnd: func() {
			bw.Flush()
		},
	}
}

// reportSinks prints a one-line trace of each header and body record
// to w, for the "parse" subcommand's inspection output.
func reportSinks(w io.Writer) mimeparse.Sinks {
	return mimeparse.Sinks{
		HeadOut: func(class mimeparse.HeaderClass, desc *mimeparse.HeaderDesc, buf []byte) {
			kind := "other"
			if desc != nil {
				switch desc.Kind {
				case mimeparse.DescContentType:
					kind = "content-type"
				case mimeparse.DescContentTransferEncoding:
					kind = "content-transfer-encoding"
				}
			}
			fmt.Fprintf(w, "HEADER %-10s %-26s %s\n", class, kind, headerdecode.Decode(string(buf)))
		},
		HeadEnd: func() {
			fmt.Fprintln(w, "HEADEND")
		},
		BodyOut: func(rec mimeparse.RecordType, buf []byte) {
			mark := "N"
			if rec == mimeparse.Continuation {
				mark = "C"
			}
			fmt.Fprintf(w, "BODY   %s %q\n", mark, buf)
		},
		BodyEnd: func() {
			fmt.Fprintln(w, "BODYEND")
		},
	}
}
