package logger

import (
	"log/slog"
	"time"
)

// LogQuery logs a database statement with its duration. Failures go out at
// error level, successes at debug.
func LogQuery(query string, duration time.Duration, err error, attrs ...any) {
	attrs = append([]any{
		slog.String("type", "db"),
		slog.String("query", query),
		slog.Duration("took", duration),
	}, attrs...)

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", attrs...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogClaim logs claim pipeline milestones
func LogClaim(msg string, wallet string, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "claim"),
		slog.String("wallet", wallet),
	}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogChain logs RPC and transaction events
func LogChain(msg string, network string, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "chain"),
		slog.String("network", network),
	}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
