package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeHTTP   LogType = "HTTP"
	TypeDB     LogType = "DB"
	TypeClaim  LogType = "CLAIM"
	TypeChain  LogType = "CHAIN"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

// CustomHandler prints one coloured line per record:
// [CakeClaim] [15:04:05] [INFO] [CLAIM] message key=value ...
type CustomHandler struct {
	app    string
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(app string, level slog.Leveler) *CustomHandler {
	return NewHandlerWithWriter(os.Stdout, app, level)
}

func NewHandlerWithWriter(w io.Writer, app string, level slog.Leveler) *CustomHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &CustomHandler{
		app:    app,
		opts:   &slog.HandlerOptions{Level: level},
		out:    w,
		mu:     &sync.Mutex{},
		attrs:  make([]slog.Attr, 0),
		groups: make([]string, 0),
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CustomHandler{
		app:    h.app,
		opts:   h.opts,
		out:    h.out,
		mu:     h.mu,
		attrs:  merged,
		groups: h.groups,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	return &CustomHandler{
		app:    h.app,
		opts:   h.opts,
		out:    h.out,
		mu:     h.mu,
		attrs:  h.attrs,
		groups: append(groups, name),
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor = colorRed
		levelText = "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor = colorYellow
		levelText = "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor = colorGreen
		levelText = "INFO"
	default:
		levelColor = colorPurple
		levelText = "DEBUG"
	}

	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, a)
		return true
	})

	logType := getLogType(all)
	message := r.Message
	if r.Level >= slog.LevelError {
		if location := getErrorLocation(all); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := lookup(all, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}
	if status := lookup(all, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	var attrsStr strings.Builder
	prefix := strings.Join(h.groups, ".")
	for _, attr := range all {
		if isInternalAttr(attr.Key) {
			continue
		}
		key := attr.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		fmt.Fprintf(&attrsStr, " %s=%v", key, attr.Value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		h.app,
		timestamp.Format("15:04:05"),
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		attrsStr.String(),
		colorReset,
	)
	return err
}

func getLogType(attrs []slog.Attr) LogType {
	switch lookup(attrs, "type") {
	case "http":
		return TypeHTTP
	case "db":
		return TypeDB
	case "claim":
		return TypeClaim
	case "chain":
		return TypeChain
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func lookup(attrs []slog.Attr, key string) string {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == key {
			return attrs[i].Value.String()
		}
	}
	return ""
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "status", "error", "error_location":
		return true
	}
	return false
}

func getErrorLocation(attrs []slog.Attr) string {
	if location := lookup(attrs, "error_location"); location != "" {
		return location
	}
	// slog.Error -> Logger.log -> Handler.Handle -> getErrorLocation
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
