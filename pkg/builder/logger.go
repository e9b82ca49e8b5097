package builder

import (
	internalLogger "github.com/joeydtaylor/tensilerig/pkg/internal/internallogger"
	"github.com/joeydtaylor/tensilerig/pkg/internal/config"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

type LoggerOption = internalLogger.LoggerOption

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   SinkType = types.FileSink
	StdoutSink SinkType = types.StdoutSink
	StderrSink SinkType = types.StderrSink
)

// NewLogger builds a zap-backed logger writing JSON lines to stderr.
func NewLogger(options ...internalLogger.LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// LoggerWithLevel configures the logger to use the specified log level.
func LoggerWithLevel(levelStr string) LoggerOption {
	return internalLogger.LoggerWithLevel(levelStr)
}

// LoggerWithDevelopment switches to the human-readable console encoder.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return internalLogger.LoggerWithDevelopment(dev)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

func LoggerWithSessionID(sessionID string) LoggerOption {
	return internalLogger.LoggerWithSessionID(sessionID)
}

func LoggerWithoutCaller() LoggerOption {
	return internalLogger.LoggerWithoutCaller()
}

// NewLoggerFromSettings builds the logger described by the log section, adding a
// file sink when log.file is set.
func NewLoggerFromSettings(s config.LogSettings, options ...LoggerOption) (types.Logger, error) {
	opts := append([]LoggerOption{internalLogger.LoggerWithLevel(s.Level)}, options...)
	logger := internalLogger.NewLogger(opts...)
	if s.File != "" {
		if err := logger.AddSink("file", types.SinkConfig{
			Type:   string(types.FileSink),
			Config: map[string]interface{}{"path": s.File},
		}); err != nil {
			return nil, err
		}
	}
	return logger, nil
}
