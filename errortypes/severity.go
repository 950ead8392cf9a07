package errortypes

import "errors"

// Severity represents how an error affects device enrichment for the current cycle.
type Severity int

const (
	// SeverityUnknown represents an unknown severity level.
	SeverityUnknown Severity = iota

	// SeverityFatal represents an error which stops enrichment for the current cycle.
	// The bid request still proceeds, without the device fragment.
	SeverityFatal

	// SeverityWarning represents a non-fatal condition which is only reported.
	SeverityWarning
)

// IsWarning returns true if an error is labeled with a Severity of SeverityWarning
func IsWarning(err error) bool {
	var s Coder
	return errors.As(err, &s) && s.Severity() == SeverityWarning
}
