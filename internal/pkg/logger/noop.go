package logger

// Noop discards everything. Useful in tests and tools that do not care
// about log output.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) Debug(component, message string, details map[string]interface{}) {}
func (Noop) Info(component, message string, details map[string]interface{})  {}
func (Noop) Warn(component, message string, details map[string]interface{})  {}
func (Noop) Error(component, message string, details map[string]interface{}) {}
func (Noop) Sync() error                                                     { return nil }
func (Noop) GetLogs(level string, limit, offset int) ([]LogEntry, error) {
	return []LogEntry{}, nil
}

var _ ILogger = (*Noop)(nil)
