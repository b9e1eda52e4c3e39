package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger our internal wrapper around zerolog. Every Logger, including
// component children, writes through the same shared output so all of
// them can be redirected to a file at once.
type Logger struct {
	zl *zerolog.Logger
}

// swappable writer shared by every logger
type output struct {
	mux sync.RWMutex
	w   io.Writer
}

func (o *output) Write(p []byte) (int, error) {
	o.mux.RLock()
	defer o.mux.RUnlock()
	return o.w.Write(p)
}

func (o *output) set(w io.Writer) {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.w = w
}

var out = &output{w: zerolog.ConsoleWriter{Out: os.Stderr}}

// unexported "singleton" logger
var logger Logger

// init sets the internal "singleton" logger
func init() {
	zl := zerolog.New(out).
		With().
		Caller().
		Timestamp().
		Logger()

	logger = Logger{
		zl: &zl,
	}
}

// New returns the internal "singleton" logger
func New() Logger {
	return logger
}

// GlobalSetOutput set all loggers to log to w
func GlobalSetOutput(w io.Writer) {
	out.set(w)
}

// SetLevel sets the minimum level for every logger
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// Component returns a child logger tagged with a component name
func (l Logger) Component(name string) Logger {
	zl := l.zl.With().Str("component", name).Logger()
	return Logger{zl: &zl}
}

// With returns a child logger carrying an additional string field
func (l Logger) With(key, value string) Logger {
	zl := l.zl.With().Str(key, value).Logger()
	return Logger{zl: &zl}
}

// Info wrapper around zerolog Info
func (l Logger) Info() *zerolog.Event {
	return l.zl.Info()
}

// Debug wrapper around zerolog Debug
func (l Logger) Debug() *zerolog.Event {
	return l.zl.Debug()
}

// Warn wrapper around zerolog Warn
func (l Logger) Warn() *zerolog.Event {
	return l.zl.Warn()
}

// Error wrapper around zerolog Error
func (l Logger) Error() *zerolog.Event {
	return l.zl.Error()
}

// Fatal wrapper around zerolog Fatal
func (l Logger) Fatal() *zerolog.Event {
	return l.zl.Fatal()
}

// Writer returns an io.Writer that logs each write as a single message
func (l Logger) Writer() io.Writer {
	return l.zl
}
