package sensor

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// RegisterOnStart appends callbacks for the Start event.
func (s *Sensor) RegisterOnStart(callback ...func(types.ComponentMetadata)) {
	s.callbackLock.Lock()
	s.OnStart = append(s.OnStart, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnStop appends callbacks for the Stop event.
func (s *Sensor) RegisterOnStop(callback ...func(types.ComponentMetadata)) {
	s.callbackLock.Lock()
	s.OnStop = append(s.OnStop, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnBatch appends callbacks for the Batch event.
func (s *Sensor) RegisterOnBatch(callback ...func(types.ComponentMetadata, types.SampleBatch)) {
	s.callbackLock.Lock()
	s.OnBatch = append(s.OnBatch, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnPoint appends callbacks for the Point event.
func (s *Sensor) RegisterOnPoint(callback ...func(types.ComponentMetadata, types.ProcessedPoint)) {
	s.callbackLock.Lock()
	s.OnPoint = append(s.OnPoint, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnOverrun appends callbacks for the Overrun event.
func (s *Sensor) RegisterOnOverrun(callback ...func(types.ComponentMetadata, uint64)) {
	s.callbackLock.Lock()
	s.OnOverrun = append(s.OnOverrun, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnAnalyzed appends callbacks for the Analyzed event.
func (s *Sensor) RegisterOnAnalyzed(callback ...func(types.ComponentMetadata, types.AnalysisResult)) {
	s.callbackLock.Lock()
	s.OnAnalyzed = append(s.OnAnalyzed, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnError appends callbacks for the Error event.
func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, types.ErrorKind, error)) {
	s.callbackLock.Lock()
	s.OnError = append(s.OnError, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnPersisted appends callbacks for the Persisted event.
func (s *Sensor) RegisterOnPersisted(callback ...func(types.ComponentMetadata, string)) {
	s.callbackLock.Lock()
	s.OnPersisted = append(s.OnPersisted, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnStateChange appends callbacks for the StateChange event.
func (s *Sensor) RegisterOnStateChange(callback ...func(types.ComponentMetadata, types.SessionState, types.SessionState)) {
	s.callbackLock.Lock()
	s.OnStateChange = append(s.OnStateChange, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStart runs the Start callbacks outside the lock.
func (s *Sensor) InvokeOnStart(c types.ComponentMetadata) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata){}, s.OnStart...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c)
		}
	}
}

// InvokeOnStop runs the Stop callbacks outside the lock.
func (s *Sensor) InvokeOnStop(c types.ComponentMetadata) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata){}, s.OnStop...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c)
		}
	}
}

// InvokeOnBatch runs the Batch callbacks outside the lock.
func (s *Sensor) InvokeOnBatch(c types.ComponentMetadata, batch types.SampleBatch) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, types.SampleBatch){}, s.OnBatch...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, batch)
		}
	}
}

// InvokeOnPoint runs the Point callbacks outside the lock.
func (s *Sensor) InvokeOnPoint(c types.ComponentMetadata, p types.ProcessedPoint) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, types.ProcessedPoint){}, s.OnPoint...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, p)
		}
	}
}

// InvokeOnOverrun runs the Overrun callbacks outside the lock.
func (s *Sensor) InvokeOnOverrun(c types.ComponentMetadata, total uint64) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, uint64){}, s.OnOverrun...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, total)
		}
	}
}

// InvokeOnAnalyzed runs the Analyzed callbacks outside the lock.
func (s *Sensor) InvokeOnAnalyzed(c types.ComponentMetadata, result types.AnalysisResult) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, types.AnalysisResult){}, s.OnAnalyzed...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, result)
		}
	}
}

// InvokeOnError runs the Error callbacks outside the lock.
func (s *Sensor) InvokeOnError(c types.ComponentMetadata, kind types.ErrorKind, err error) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, types.ErrorKind, error){}, s.OnError...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, kind, err)
		}
	}
}

// InvokeOnPersisted runs the Persisted callbacks outside the lock.
func (s *Sensor) InvokeOnPersisted(c types.ComponentMetadata, sessionID string) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, string){}, s.OnPersisted...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, sessionID)
		}
	}
}

// InvokeOnStateChange runs the StateChange callbacks outside the lock.
func (s *Sensor) InvokeOnStateChange(c types.ComponentMetadata, from types.SessionState, to types.SessionState) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, types.SessionState, types.SessionState){}, s.OnStateChange...)
	s.callbackLock.Unlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(c, from, to)
		}
	}
}
