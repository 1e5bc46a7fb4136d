package logx

import "log/slog"

// SlogAdapter bridges a *slog.Logger to the Logger interface so the rest of
// the client never imports slog directly.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps base in the Logger interface. A nil base falls back
// to the no-op logger.
func NewSlogAdapter(base *slog.Logger) Logger {
	if base == nil {
		return Nop()
	}
	return &SlogAdapter{l: base}
}

// Debug logs at debug level; the gateway uses it for per-request traces.
func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.l.Debug(msg, slogArgs(fields)...) }

// Info logs at info level.
func (s *SlogAdapter) Info(msg string, fields ...Field) { s.l.Info(msg, slogArgs(fields)...) }

// Warn logs at warn level; degraded-but-continuing paths land here.
func (s *SlogAdapter) Warn(msg string, fields ...Field) { s.l.Warn(msg, slogArgs(fields)...) }

// Error logs at error level.
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.l.Error(msg, slogArgs(fields)...) }

// With binds fields onto every entry of the returned logger.
func (s *SlogAdapter) With(fields ...Field) Logger {
	return &SlogAdapter{l: s.l.With(slogArgs(fields)...)}
}

// Sync is a no-op; slog handlers write through.
func (s *SlogAdapter) Sync() error { return nil }

func slogArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

var _ Logger = (*SlogAdapter)(nil)
