package log

import (
	"io"
	"os"

	"kassa/internal/errors"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger()

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*logrus.Logger)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *logrus.Logger) {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyLevel: "level",
			},
		})
	}
}

// WithLevel sets the minimum level by name ("debug", "info", "warn", ...).
// Unknown names leave the level unchanged.
func WithLevel(name string) Option {
	return func(l *logrus.Logger) {
		if lvl, err := logrus.ParseLevel(name); err == nil {
			l.SetLevel(lvl)
		}
	}
}

type Logger struct {
	base *logrus.Logger
}

func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	base.SetLevel(logrus.InfoLevel)
	for _, opt := range opts {
		opt(base)
	}
	return &Logger{base: base}
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles debug output on the package logger.
func SetDebug(debug bool) {
	if debug {
		logger.base.SetLevel(logrus.DebugLevel)
		return
	}
	logger.base.SetLevel(logrus.InfoLevel)
}

// With returns an entry carrying the given fields.
func (l *Logger) With(fields ...Field) *logrus.Entry {
	return l.base.WithFields(toLogrus(fields))
}

func (l *Logger) Info(args ...interface{})                  { l.base.Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.base.Infof(format, args...) }
func (l *Logger) Debug(args ...interface{})                 { l.base.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.base.Debugf(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.base.Warn(args...) }
func (l *Logger) Error(args ...interface{})                 { l.base.Error(args...) }

func Info(format string, args ...interface{}) {
	logger.base.Infof(format, args...)
}

// Infof logs a formatted message
func Infof(format string, args ...interface{}) {
	logger.base.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.base.Debug(msg)
		return
	}
	logger.base.Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.base.Debugf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.base.Warn(msg)
		return
	}
	logger.base.Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.base.Warnf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.base.Error(msg)
		return
	}
	logger.base.Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.base.Errorf(format, args...)
}

// LogWithFields returns an entry on the package logger carrying fields.
func LogWithFields(fields ...Field) *logrus.Entry {
	return logger.With(fields...)
}

// LogWithError returns an entry describing err: its message, kind and any
// typed details (request status, failing mode hook, config parameter).
func LogWithError(err error) *logrus.Entry {
	return logger.base.WithFields(errorFields(err))
}

func errorFields(err error) logrus.Fields {
	fields := logrus.Fields{}
	if err == nil {
		return fields
	}
	fields["error"] = err.Error()
	fields["error_kind"] = int(errors.KindOf(err))

	var reqErr *errors.RequestError
	if errors.As(err, &reqErr) {
		fields["op"] = reqErr.Op()
		fields["status"] = reqErr.Status()
	}
	var hookErr *errors.LifecycleError
	if errors.As(err, &hookErr) {
		fields["mode"] = hookErr.Mode()
		fields["hook"] = hookErr.Hook()
	}
	var modeErr *errors.UnknownModeError
	if errors.As(err, &modeErr) {
		fields["mode"] = modeErr.Name()
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Param() != "" {
		fields["param"] = cfgErr.Param()
	}
	return fields
}

func toLogrus(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
