package logschema

// Log schema constants for tensilerig structured logs.
const (
	SchemaID    = "tensilerig.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldSessionID = "session_id"
	FieldState     = "state"
	FieldCommand   = "command"
	FieldKind      = "kind"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
