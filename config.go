package timeline

import "log/slog"

// Sink receives the recoverable-failure events of the extraction pipeline.
// Implementations must not block: the pipeline treats the call as
// fire-and-forget and ignores anything the sink does.
type Sink func(msg string, err error, fields map[string]any)

// SlogSink adapts a slog.Logger into a Sink, logging at warn level.
func SlogSink(l *slog.Logger) Sink {
	return func(msg string, err error, fields map[string]any) {
		attrs := make([]any, 0, 2*(len(fields)+1))
		attrs = append(attrs, slog.Any("error", err))
		for k, v := range fields {
			attrs = append(attrs, slog.Any(k, v))
		}
		l.Warn(msg, attrs...)
	}
}

// Config holds configuration for a Normalizer.
type Config struct {
	// Log receives recoverable per-record failures (unreadable author
	// path, skipped entries). Default: discard.
	Log Sink
}

// defaults fills in zero-value config fields.
func (cfg *Config) defaults() {
	if cfg.Log == nil {
		cfg.Log = func(string, error, map[string]any) {}
	}
}
