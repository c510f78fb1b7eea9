// Package mimeflow is the root of the mimeflow module: a streaming MIME
// parser and quoted-printable downgrade transformer intended to sit
// inside a mail transfer agent's message pipeline. The parsing logic
// itself lives in the mimeparse subpackage; this file only carries
// build-time version metadata for cmd/mimeflowd.
package mimeflow

import "time"

var (
	Version   string
	Commit    string
	BuildTime string

	StartTime time.Time
)

func init() {
	if Version == "" {
		Version = "unknown"
	}
	if Commit == "" {
		Commit = "unknown"
	}
	if BuildTime == "" {
		BuildTime = "unknown"
	}
	StartTime = time.Now()
}
