package errortypes

// ConfigurationError should be used when the submodule parameters are missing or contradict each other.
//
// These errors are logged and the cycle completes without enrichment.
type ConfigurationError struct {
	Message string
	code    int
}

// NewMissingIdentifier reports that neither identifier was configured.
func NewMissingIdentifier(message string) *ConfigurationError {
	return &ConfigurationError{Message: message, code: MissingIdentifierErrorCode}
}

// NewConflictingIdentifier reports that both identifiers were configured.
func NewConflictingIdentifier(message string) *ConfigurationError {
	return &ConfigurationError{Message: message, code: ConflictingIdentifierErrorCode}
}

func (err *ConfigurationError) Error() string {
	return err.Message
}

func (err *ConfigurationError) Code() int {
	if err.code == 0 {
		return MissingIdentifierErrorCode
	}
	return err.code
}

func (err *ConfigurationError) Severity() Severity {
	return SeverityFatal
}

// ScriptLoadError should be used when the device detection script could not be fetched or appended
// to the document.
type ScriptLoadError struct {
	URL   string
	Cause error
}

func (err *ScriptLoadError) Error() string {
	if err.Cause == nil {
		return "failed to load script " + err.URL
	}
	return "failed to load script " + err.URL + ": " + err.Cause.Error()
}

func (err *ScriptLoadError) Unwrap() error {
	return err.Cause
}

func (err *ScriptLoadError) Code() int {
	return ScriptLoadErrorCode
}

func (err *ScriptLoadError) Severity() Severity {
	return SeverityFatal
}

// VendorError should be used when the loaded script does not expose a usable completion API
// or the vendor endpoint answers with an error.
type VendorError struct {
	Message string
	code    int
}

// NewVendorUnavailable reports a missing or unusable vendor global.
func NewVendorUnavailable(message string) *VendorError {
	return &VendorError{Message: message, code: VendorUnavailableErrorCode}
}

// NewVendorResponse reports an error returned by the vendor endpoint.
func NewVendorResponse(message string) *VendorError {
	return &VendorError{Message: message, code: VendorResponseErrorCode}
}

func (err *VendorError) Error() string {
	return err.Message
}

func (err *VendorError) Code() int {
	if err.code == 0 {
		return VendorUnavailableErrorCode
	}
	return err.code
}

func (err *VendorError) Severity() Severity {
	return SeverityFatal
}

// Warning is a generic non-fatal error. Throughout the codebase, an error can
// only be a warning if it's of the type defined below
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	if err.WarningCode == 0 {
		return UnknownWarningCode
	}
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
