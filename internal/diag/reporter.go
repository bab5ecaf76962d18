package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Severity classifies a diagnostic.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Note    Severity = "note"
)

// Location points into the SIRS source document. It is optional: compiler
// stages that work on decoded trees rather than text report without one.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is one accumulated message.
type Diagnostic struct {
	Severity Severity  `json:"severity"`
	Location *Location `json:"location,omitempty"`
	Message  string    `json:"message"`
}

// Reporter accumulates diagnostics across a compiler run. Stages report
// human-readable detail here and signal failure through returned errors;
// callers consult both.
type Reporter struct {
	diags []Diagnostic
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Errorf records an error-severity diagnostic. loc may be nil.
func (r *Reporter) Errorf(loc *Location, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Severity: Error,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warningf records a warning-severity diagnostic. loc may be nil.
func (r *Reporter) Warningf(loc *Location, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Severity: Warning,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns every accumulated diagnostic in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Format renders every diagnostic with colored severity prefixes.
func (r *Reporter) Format(filename string) string {
	var sb strings.Builder
	for _, d := range r.diags {
		sb.WriteString(FormatDiagnostic(filename, d))
	}
	return sb.String()
}

func (d Diagnostic) position(filename string) string {
	if d.Location == nil {
		return filename
	}
	return fmt.Sprintf("%s:%d:%d", filename, d.Location.Line, d.Location.Column)
}

// FormatDiagnostic renders one diagnostic with colored severity prefix.
func FormatDiagnostic(filename string, d Diagnostic) string {
	levelColor := severityColor(d.Severity)
	dim := color.New(color.Faint).SprintFunc()

	return fmt.Sprintf("%s: %s\n  %s %s\n",
		levelColor(string(d.Severity)), d.Message, dim("-->"), d.position(filename))
}

func severityColor(s Severity) func(...interface{}) string {
	switch s {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
