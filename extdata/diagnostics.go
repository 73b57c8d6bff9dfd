package extdata

// Diagnostics receives visibility events from the store. Key/value pairs
// follow the sugared logger convention. internal/logging.Logger satisfies it.
type Diagnostics interface {
	Warn(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
}

// NopDiagnostics discards everything.
type NopDiagnostics struct{}

func (NopDiagnostics) Warn(string, ...any) {}
func (NopDiagnostics) Info(string, ...any) {}
