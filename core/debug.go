package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// debugPrintln is the global debug print function (can be set by platform code)
var debugPrintln DebugWriter = func(string) {} // No-op by default

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to stderr, a log file, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}
