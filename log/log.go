// Package log wraps logrus with a small factory that caches loggers by
// destination and supports reopening the underlying file on SIGHUP,
// adapted from the teacher's log package with the dashboard hook
// removed (this module has no web dashboard to feed).
package log

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Logger is the interface the rest of the module codes against, so a
// test can substitute a no-op or buffering implementation.
type Logger interface {
	log.FieldLogger
	Reopen() error
	GetLogDest() string
	SetLevel(level string)
	GetLevel() string
	IsDebug() bool
	AddHook(h log.Hook)
}

// HookedLogger implements Logger. It's a logrus logger wrapper holding
// the LoggerHook that actually performs the write.
type HookedLogger struct {
	*log.Logger
	h LoggerHook
}

type loggerCache map[string]Logger

var loggers struct {
	cache loggerCache
	sync.Mutex
}

// GetLogger returns a Logger writing to dest, which may be a file path
// or one of "off", "stdout", "stderr". Loggers are cached by dest, so
// repeated calls for the same destination return the same instance. If
// the hook can't be set up, the returned Logger falls back to stderr
// and the error is also returned.
func GetLogger(dest string) (Logger, error) {
	loggers.Lock()
	defer loggers.Unlock()
	if loggers.cache == nil {
		loggers.cache = make(loggerCache, 1)
	} else if l, ok := loggers.cache[dest]; ok {
		return l, nil
	}

	logrusLogger := log.New()
	logrusLogger.Out = ioutil.Discard

	l := &HookedLogger{Logger: logrusLogger}
	loggers.cache[dest] = l

	h, err := NewLogrusHook(dest)
	if err != nil {
		logrusLogger.Out = os.Stderr
		return l, err
	}
	logrusLogger.Hooks.Add(h)
	l.h = h
	return l, nil
}

func (l *HookedLogger) AddHook(h log.Hook) {
	l.Logger.AddHook(h)
}

func (l *HookedLogger) IsDebug() bool {
	return l.GetLevel() == log.DebugLevel.String()
}

func (l *HookedLogger) SetLevel(level string) {
	lv, err := log.ParseLevel(level)
	if err != nil {
		return
	}
	l.Level = lv
}

func (l *HookedLogger) GetLevel() string {
	return l.Level.String()
}

func (l *HookedLogger) Reopen() error {
	return l.h.Reopen()
}

func (l *HookedLogger) GetLogDest() string {
	return l.h.GetLogDest()
}

// hookMu ensures all io operations are synced. Always taken on
// exported functions.
var hookMu sync.Mutex

// LoggerHook extends the logrus Hook interface with reopen/destination
// introspection, so a process can handle SIGHUP by rotating its log.
type LoggerHook interface {
	log.Hook
	Reopen() error
	GetLogDest() string
}

type LogrusHook struct {
	w     io.Writer
	fd    *os.File
	fname string

	plainTxtFormatter *log.TextFormatter

	mu sync.Mutex
}

// NewLogrusHook creates a new hook. dest can be a file path, or one of
// "stderr", "stdout", "off" (discard), or "" (defaults to stderr).
func NewLogrusHook(dest string) (LoggerHook, error) {
	hookMu.Lock()
	defer hookMu.Unlock()
	hook := LogrusHook{fname: dest}
	err := hook.setup(dest)
	return &hook, err
}

type OutputOption int

const (
	OutputStderr OutputOption = 1 + iota
	OutputStdout
	OutputOff
	OutputNull
	OutputFile
)

var outputOptions = [...]string{"stderr", "stdout", "off", "", "file"}

func (o OutputOption) String() string { return outputOptions[o-1] }

func parseOutputOption(str string) OutputOption {
	switch str {
	case "stderr":
		return OutputStderr
	case "stdout":
		return OutputStdout
	case "off":
		return OutputOff
	case "":
		return OutputNull
	}
	return OutputFile
}

func (hook *LogrusHook) setup(dest string) error {
	switch parseOutputOption(dest) {
	case OutputNull, OutputStderr:
		hook.w = os.Stderr
	case OutputStdout:
		hook.w = os.Stdout
	case OutputOff:
		hook.w = ioutil.Discard
	default:
		if _, err := os.Stat(dest); err == nil {
			if err := hook.openAppend(dest); err != nil {
				return err
			}
		} else if err := hook.openCreate(dest); err != nil {
			return err
		}
	}
	if hook.fd != nil {
		hook.plainTxtFormatter = &log.TextFormatter{DisableColors: true}
	}
	return nil
}

func (hook *LogrusHook) openAppend(dest string) (err error) {
	fd, err := os.OpenFile(dest, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		hook.w = os.Stderr
		hook.fd = nil
		return err
	}
	hook.w = bufio.NewWriter(fd)
	hook.fd = fd
	return nil
}

func (hook *LogrusHook) openCreate(dest string) (err error) {
	fd, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		hook.w = os.Stderr
		hook.fd = nil
		return err
	}
	hook.w = bufio.NewWriter(fd)
	hook.fd = fd
	return nil
}

// Fire implements the logrus Hook interface. It swaps in a
// color-disabled formatter while writing to a file.
func (hook *LogrusHook) Fire(entry *log.Entry) error {
	hookMu.Lock()
	defer hookMu.Unlock()
	if hook.fd != nil {
		oldFormatter := entry.Logger.Formatter
		entry.Logger.Formatter = hook.plainTxtFormatter
		defer func() { entry.Logger.Formatter = oldFormatter }()
	}
	line, err := entry.String()
	if err != nil {
		return err
	}
	if _, err := io.Copy(hook.w, strings.NewReader(line)); err != nil {
		return err
	}
	if wb, ok := hook.w.(*bufio.Writer); ok {
		if err := wb.Flush(); err != nil {
			return err
		}
		if hook.fd != nil {
			hook.fd.Sync()
		}
	}
	return nil
}

func (hook *LogrusHook) GetLogDest() string {
	hookMu.Lock()
	defer hookMu.Unlock()
	return hook.fname
}

func (hook *LogrusHook) Levels() []log.Level {
	return log.AllLevels
}

// Reopen closes and re-opens the log file descriptor, so a log can be
// rotated out from under a running process.
func (hook *LogrusHook) Reopen() error {
	hookMu.Lock()
	defer hookMu.Unlock()
	if hook.fd == nil {
		return nil
	}
	if err := hook.fd.Close(); err != nil {
		return err
	}
	if _, err := os.Stat(hook.fname); err != nil {
		return hook.openCreate(hook.fname)
	}
	return hook.openAppend(hook.fname)
}
