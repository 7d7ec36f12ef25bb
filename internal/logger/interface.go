package logger

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger provides structured logging tagged with the emitting component.
type Logger interface {
	Debug(component, message string, fields Fields)
	Info(component, message string, fields Fields)
	Warning(component, message string, fields Fields)
	Error(component string, err error, fields Fields)
}
