package logger

import "github.com/user/timelapse/pkg/ports"

// NoopLogger discards everything. The CLI uses it for --quiet and tests use
// it when log output does not matter.
type NoopLogger struct{}

// NewNoop returns a NoopLogger.
func NewNoop() *NoopLogger { return &NoopLogger{} }

func (*NoopLogger) Debug(string, ...interface{}) {}
func (*NoopLogger) Info(string, ...interface{})  {}
func (*NoopLogger) Warn(string, ...interface{})  {}
func (*NoopLogger) Error(string, ...interface{}) {}

// WithComponent returns the receiver; there is nothing to prefix.
func (l *NoopLogger) WithComponent(string) ports.Logger { return l }

var (
	_ ports.Logger = (*NoopLogger)(nil)
	_ ports.Logger = (*ConsoleLogger)(nil)
)
