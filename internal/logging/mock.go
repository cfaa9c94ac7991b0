package logging

import "strings"

// MockLogger is a Logger implementation for tests. It records every entry
// so assertions can be made against what was logged. Loggers derived via
// WithError or WithField record into the same entry list as their parent.
type MockLogger struct {
	entries      *[]LogEntry
	pendingError error
	pendingField []Field
}

// LogEntry is a single captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) sink() *[]LogEntry {
	if m.entries == nil {
		m.entries = &[]LogEntry{}
	}
	return m.entries
}

// Entries returns every recorded entry, oldest first.
func (m *MockLogger) Entries() []LogEntry {
	return *m.sink()
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	sink := m.sink()
	all := append(append([]Field{}, m.pendingField...), fields...)
	*sink = append(*sink, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

// Debug records a debug-level entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info records an info-level entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn records a warn-level entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error records an error-level entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records a fatal-level entry without exiting; tests must keep running.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// Fatalf records a fatal-level entry without exiting.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) { m.record("FATAL", msg, nil) }

// HasEntry reports whether an entry with the given level and message was
// recorded. Level matching is case-insensitive.
func (m *MockLogger) HasEntry(level, msg string) bool {
	for _, e := range m.Entries() {
		if strings.EqualFold(e.Level, level) && e.Message == msg {
			return true
		}
	}
	return false
}

// WithError attaches an error to subsequent entries.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{entries: m.sink(), pendingError: err, pendingField: m.pendingField}
}

// WithField attaches a field to subsequent entries.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &MockLogger{
		entries:      m.sink(),
		pendingError: m.pendingError,
		pendingField: append(append([]Field{}, m.pendingField...), Field{Key: key, Value: value}),
	}
}
