package port

// Logger is the structured logger shared by the application layers.
// Arguments after msg are alternating keys and values.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}
