package internallogger

import (
	"sort"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"go.uber.org/zap"
)

// domainField renders rig values compactly. A *Session logs its identity and size,
// never its points.
func domainField(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentToLogMap(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Any(key, componentToLogMap(*v))
	case *types.Session:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Any(key, map[string]interface{}{
			"id":     v.ID,
			"number": v.Number,
			"points": len(v.Points),
		})
	case *types.AnalysisResult:
		if v == nil {
			return zap.Any(key, nil)
		}
		out := map[string]string{"status": string(v.Status)}
		for _, r := range types.Regions {
			out[string(r)] = string(v.Outcome(r))
		}
		return zap.Any(key, out)
	case types.SessionState:
		return zap.String(key, v.String())
	case types.ErrorKind:
		return zap.String(key, string(v))
	case error:
		return zap.NamedError(key, v)
	}
	return zap.Any(key, value)
}

func componentToLogMap(meta types.ComponentMetadata) map[string]string {
	return map[string]string{
		"id":   meta.ID,
		"type": meta.Type,
		"name": meta.Name,
	}
}

// fieldsFromMap turns the initial fields into a stable, key-sorted list.
func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		out = append(out, domainField(key, fields[key]))
	}
	return out
}

// fieldsFromPairs reads alternating key/value arguments. Non-string keys and a
// trailing key without a value are skipped.
func fieldsFromPairs(keysAndValues []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, domainField(key, keysAndValues[i+1]))
	}
	return fields
}
