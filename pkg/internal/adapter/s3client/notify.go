package s3client

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

func (a *S3Client) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

func (a *S3Client) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	types.Emit(a.snapshotLoggers(), level, msg, keysAndValues...)
}

func (a *S3Client) GetComponentMetadata() types.ComponentMetadata { return a.componentMetadata }

func (a *S3Client) SetComponentMetadata(name, id string) {
	a.componentMetadata.Name = name
	if id != "" {
		a.componentMetadata.ID = id
	}
}

func (a *S3Client) snapshotLoggers() []types.Logger {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	if len(a.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(a.loggers))
	copy(out, a.loggers)
	return out
}
