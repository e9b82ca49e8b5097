package internallogger

import (
	"strings"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// levelTable pairs each rig level with its config name and zap level.
var levelTable = []struct {
	name string
	rig  types.LogLevel
	zap  zapcore.Level
}{
	{"debug", types.DebugLevel, zapcore.DebugLevel},
	{"info", types.InfoLevel, zapcore.InfoLevel},
	{"warn", types.WarnLevel, zapcore.WarnLevel},
	{"error", types.ErrorLevel, zapcore.ErrorLevel},
	{"dpanic", types.DPanicLevel, zapcore.DPanicLevel},
	{"panic", types.PanicLevel, zapcore.PanicLevel},
	{"fatal", types.FatalLevel, zapcore.FatalLevel},
}

// parseLogLevel accepts the log.level config values in any case. Unknown names map to info.
func parseLogLevel(levelStr string) types.LogLevel {
	name := strings.ToLower(strings.TrimSpace(levelStr))
	for _, l := range levelTable {
		if l.name == name {
			return l.rig
		}
	}
	return types.InfoLevel
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	for _, l := range levelTable {
		if l.rig == level {
			return l.zap
		}
	}
	return zapcore.InfoLevel
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	for _, l := range levelTable {
		if l.zap == level {
			return l.rig
		}
	}
	return types.InfoLevel
}
