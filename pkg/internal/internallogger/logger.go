package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the zap config, the initial level and the caller skip before the logger is built.
type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter implements types.Logger on top of zap. The base core writes to
// stderr so stdout stays free for the event stream; extra sinks are teed in.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	baseCore    zapcore.Core
	sinks       map[string]sinkEntry
	encConfig   zapcore.EncoderConfig
	callerDepth int
	callerOn    bool
	baseFields  []zap.Field
}

// NewLogger initializes a new ZapLoggerAdapter with configurable options.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	config := zap.NewProductionConfig()
	config.InitialFields = map[string]interface{}{logschema.FieldSchema: logschema.SchemaID}
	level := zapcore.InfoLevel
	callerDepth := 3

	for _, option := range options {
		option(&config, &level, &callerDepth)
	}

	atomicLevel := zap.NewAtomicLevelAt(level)
	encConfig := standardEncoderConfig()

	var encoder zapcore.Encoder
	if config.Development {
		encoder = zapcore.NewConsoleEncoder(encConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encConfig)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: atomicLevel,
		baseCore:    zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), atomicLevel),
		sinks:       make(map[string]sinkEntry),
		encConfig:   encConfig,
		callerDepth: callerDepth,
		callerOn:    !config.DisableCaller,
		baseFields:  fieldsFromMap(config.InitialFields),
	}

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()

	return z
}
