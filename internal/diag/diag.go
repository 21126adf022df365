// Package diag carries non-fatal build events from the transform packages
// to whoever presents them. Transforms never print.
package diag

import "fmt"

// Severity ranks a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic is one recorded event about a configured field.
type Diagnostic struct {
	Severity Severity
	Subject  string // human-facing field, e.g. links["GitHub"].icon
	Message  string
	Cause    error
}

func (d Diagnostic) String() string {
	if d.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", d.Subject, d.Message, d.Cause)
	}
	return fmt.Sprintf("%s: %s", d.Subject, d.Message)
}

// List accumulates diagnostics in the order they were raised.
type List []Diagnostic

func (l *List) Infof(subject, format string, args ...any) {
	*l = append(*l, Diagnostic{Severity: Info, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (l *List) Warn(subject, message string, cause error) {
	*l = append(*l, Diagnostic{Severity: Warning, Subject: subject, Message: message, Cause: cause})
}

// Warnings returns only the warning-level entries.
func (l List) Warnings() List {
	var out List
	for _, d := range l {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}
