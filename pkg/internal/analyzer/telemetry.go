package analyzer

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// ConnectLogger registers loggers for the analyzer.
func (a *Analyzer) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// NotifyLoggers emits a log event to all configured loggers.
func (a *Analyzer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	a.loggersLock.Lock()
	loggers := append([]types.Logger(nil), a.loggers...)
	a.loggersLock.Unlock()
	types.Emit(loggers, level, msg, keysAndValues...)
}
