package parquetstore

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

func (s *Store) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			s.loggers = append(s.loggers, l)
		}
	}
}

func (s *Store) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := append([]types.Logger(nil), s.loggers...)
	s.loggersLock.Unlock()
	types.Emit(loggers, level, msg, keysAndValues...)
}

func (s *Store) GetComponentMetadata() types.ComponentMetadata { return s.componentMetadata }
