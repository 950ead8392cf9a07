package errortypes

import "errors"

// Defines numeric codes for well-known errors.
const (
	UnknownErrorCode           = 999
	MissingIdentifierErrorCode = iota
	ConflictingIdentifierErrorCode
	ScriptLoadErrorCode
	VendorUnavailableErrorCode
	VendorResponseErrorCode
)

// Defines numeric codes for well-known warnings.
const (
	UnknownWarningCode           = 10999
	MissingDelegateCHWarningCode = iota + 10000
)

// Coder provides an error or warning code with severity.
type Coder interface {
	Code() int
	Severity() Severity
}

// ReadCode returns the error or warning code, or UnknownErrorCode if unavailable.
func ReadCode(err error) int {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return UnknownErrorCode
}
