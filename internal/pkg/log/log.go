package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

var (
	debugEnabled atomic.Bool
	output       io.Writer = os.Stdout
)

// SetDebug toggles Debug and DebugStruct output.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// SetOutput redirects all log output. Not safe to call while logging.
func SetOutput(w io.Writer) {
	output = w
}

// WithRequestID adds request ID to context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestID retrieves request ID from context
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// formatLog formats log message with optional request ID
func formatLog(level string, requestID string, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		return fmt.Sprintf("[%s] [req_id=%s] %s", level, requestID, msg)
	}
	return fmt.Sprintf("[%s] %s", level, msg)
}

func write(tag string, attrs []color.Attribute, msg string) {
	label := color.New(attrs...).SprintFunc()
	fmt.Fprintf(output, "%s %s\n", label(tag), msg)
}

// Info log information
func Info(format string, a ...interface{}) {
	write("[INFO] ", []color.Attribute{color.FgWhite, color.BgGreen}, fmt.Sprintf(format, a...))
}

// InfoWithContext logs information with context (includes request ID if available)
func InfoWithContext(ctx context.Context, format string, a ...interface{}) {
	write("[INFO] ", []color.Attribute{color.FgWhite, color.BgGreen}, formatLog("INFO", RequestID(ctx), format, a...))
}

// Warn log warning
func Warn(format string, a ...interface{}) {
	write("[WARN] ", []color.Attribute{color.FgWhite, color.BgYellow}, fmt.Sprintf(format, a...))
}

// WarnWithContext logs warning with context (includes request ID if available)
func WarnWithContext(ctx context.Context, format string, a ...interface{}) {
	write("[WARN] ", []color.Attribute{color.FgWhite, color.BgYellow}, formatLog("WARN", RequestID(ctx), format, a...))
}

// Error log error
func Error(format string, a ...interface{}) {
	write("[Error]", []color.Attribute{color.FgRed}, fmt.Sprintf(format, a...))
}

// ErrorWithContext logs error with context (includes request ID if available)
func ErrorWithContext(ctx context.Context, format string, a ...interface{}) {
	write("[Error]", []color.Attribute{color.FgRed}, formatLog("ERROR", RequestID(ctx), format, a...))
}

// Debug logs only when debug mode is on.
func Debug(format string, a ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	write("[DEBUG]", []color.Attribute{color.FgCyan}, fmt.Sprintf(format, a...))
}

// DebugWithContext logs only when debug mode is on (includes request ID if available)
func DebugWithContext(ctx context.Context, format string, a ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	write("[DEBUG]", []color.Attribute{color.FgCyan}, formatLog("DEBUG", RequestID(ctx), format, a...))
}

// DebugStruct dumps values in debug mode.
func DebugStruct(a ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	fmt.Fprint(output, spew.Sdump(a...))
}

// Fatal logs an error and exits the process.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	os.Exit(1)
}
