package plug

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// ConnectLogger attaches loggers to the source.
func (s *SyntheticSource) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			s.loggers = append(s.loggers, l)
		}
	}
}

// NotifyLoggers emits a log event to all configured loggers.
func (s *SyntheticSource) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := append([]types.Logger(nil), s.loggers...)
	s.loggersLock.Unlock()
	types.Emit(loggers, level, msg, keysAndValues...)
}
