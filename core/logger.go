package core

// Logger is the application-wide logging contract.
// Extra args are forwarded to the backing service (error values, context maps).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
