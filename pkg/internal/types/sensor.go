package types

// Sensor fans result events out to registered callbacks. Callbacks run on the
// goroutine that raised the event and must not block.
type Sensor interface {
	RegisterOnStart(callback ...func(c ComponentMetadata))
	RegisterOnStop(callback ...func(c ComponentMetadata))
	RegisterOnBatch(callback ...func(c ComponentMetadata, batch SampleBatch))
	RegisterOnPoint(callback ...func(c ComponentMetadata, p ProcessedPoint))
	RegisterOnOverrun(callback ...func(c ComponentMetadata, total uint64))
	RegisterOnAnalyzed(callback ...func(c ComponentMetadata, result AnalysisResult))
	RegisterOnError(callback ...func(c ComponentMetadata, kind ErrorKind, err error))
	RegisterOnPersisted(callback ...func(c ComponentMetadata, sessionID string))
	RegisterOnStateChange(callback ...func(c ComponentMetadata, from SessionState, to SessionState))

	InvokeOnStart(c ComponentMetadata)
	InvokeOnStop(c ComponentMetadata)
	InvokeOnBatch(c ComponentMetadata, batch SampleBatch)
	InvokeOnPoint(c ComponentMetadata, p ProcessedPoint)
	InvokeOnOverrun(c ComponentMetadata, total uint64)
	InvokeOnAnalyzed(c ComponentMetadata, result AnalysisResult)
	InvokeOnError(c ComponentMetadata, kind ErrorKind, err error)
	InvokeOnPersisted(c ComponentMetadata, sessionID string)
	InvokeOnStateChange(c ComponentMetadata, from SessionState, to SessionState)

	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
}
