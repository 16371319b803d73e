package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	scierrors "github.com/YuminosukeSato/mleval/pkg/errors"
)

// levelVar is shared by every logger derived from one provider so that
// SetLevel also affects loggers handed out earlier.
type levelVar struct {
	v atomic.Int64
}

func newLevelVar(l Level) *levelVar {
	lv := &levelVar{}
	lv.v.Store(int64(l))
	return lv
}

func (lv *levelVar) get() Level  { return Level(lv.v.Load()) }
func (lv *levelVar) set(l Level) { lv.v.Store(int64(l)) }

// zerologLogger implements Logger on top of zerolog.
type zerologLogger struct {
	zl    zerolog.Logger
	level *levelVar
}

// NewZerologLogger returns a Logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) Logger {
	return newZerologLogger(w, newLevelVar(level))
}

func newZerologLogger(w io.Writer, lv *levelVar) *zerologLogger {
	zl := zerolog.New(w).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &zerologLogger{zl: zl, level: lv}
}

func toZerologLevel(l Level) zerolog.Level {
	switch {
	case l <= LevelDebug:
		return zerolog.DebugLevel
	case l <= LevelInfo:
		return zerolog.InfoLevel
	case l <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (l *zerologLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...any)  { l.log(LevelInfo, msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...any)  { l.log(LevelWarn, msg, fields) }
func (l *zerologLogger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields) }

// With implements Logger.With.
func (l *zerologLogger) With(fields ...any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zerologLogger{
		zl:    l.zl.With().Fields(normalizeFields(fields)).Logger(),
		level: l.level,
	}
}

// Enabled implements Logger.Enabled.
func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= l.level.get()
}

func (l *zerologLogger) log(level Level, msg string, fields []any) {
	if !l.Enabled(context.Background(), level) {
		return
	}
	e := l.zl.WithLevel(toZerologLevel(level))
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Err(err)
			if st := extractStacktrace(err); st != "" {
				e = e.Str(StacktraceKey, st)
			}
			fields = fields[1:]
		}
	}
	if len(fields) > 0 {
		e = e.Fields(normalizeFields(fields))
	}
	e.Msg(msg)
}

// warnObject logs a warning, embedding its structured form when available.
func (l *zerologLogger) warnObject(w error) {
	if !l.Enabled(context.Background(), LevelWarn) {
		return
	}
	e := l.zl.Warn()
	if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
		e = e.EmbedObject(obj)
	}
	e.Str(ErrorTypeKey, fmt.Sprintf("%T", w)).Msg(w.Error())
}

// normalizeFields turns keys into strings and drops a dangling key.
func normalizeFields(fields []any) []any {
	out := make([]any, 0, len(fields))
	for i := 0; i+1 < len(fields); i += 2 {
		out = append(out, fmt.Sprint(fields[i]), fields[i+1])
	}
	return out
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// zerologProvider is the default LoggerProvider.
type zerologProvider struct {
	root  *zerologLogger
	level *levelVar
}

// NewZerologProvider returns a provider whose loggers write to w.
func NewZerologProvider(w io.Writer, level Level) LoggerProvider {
	lv := newLevelVar(level)
	return &zerologProvider{root: newZerologLogger(w, lv), level: lv}
}

func (p *zerologProvider) GetLogger() Logger { return p.root }

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return p.root.With(ComponentKey, name)
}

func (p *zerologProvider) SetLevel(level Level) { p.level.set(level) }

var (
	providerMu      sync.RWMutex
	defaultProvider = NewZerologProvider(os.Stderr, LevelInfo)
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	scierrors.SetZerologWarnFunc(func(w error) {
		l := GetLoggerWithName("warnings")
		if zl, ok := l.(*zerologLogger); ok {
			zl.warnObject(w)
			return
		}
		l.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
	})
}

// SetProvider replaces the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = p
}

// SetOutput replaces the default provider with a zerolog provider writing to w.
func SetOutput(w io.Writer, level Level) {
	SetProvider(NewZerologProvider(w, level))
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with the component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level on the default provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	defaultProvider.SetLevel(level)
}

// WithLevel returns a logger writing to the same destination as l but
// filtering at level. Loggers not backed by zerolog are returned unchanged.
func WithLevel(l Logger, level Level) Logger {
	switch zl := l.(type) {
	case *zerologLogger:
		return &zerologLogger{zl: zl.zl, level: newLevelVar(level)}
	case *TestLogger:
		return &zerologLogger{zl: zl.zerologLogger.zl, level: newLevelVar(level)}
	default:
		return l
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &zerologLogger{zl: zerolog.Nop(), level: newLevelVar(LevelError + 1)}
}
