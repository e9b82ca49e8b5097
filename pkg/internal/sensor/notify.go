package sensor

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// NotifyLoggers sends a structured log message to all attached loggers.
func (s *Sensor) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := append([]types.Logger(nil), s.loggers...)
	s.loggersLock.Unlock()
	types.Emit(loggers, level, msg, keysAndValues...)
}
