package data

import "fmt"

// OracleError represents a failed price lookup.
type OracleError struct {
	Code    string
	Message string
	Err     error
}

func (e *OracleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *OracleError) Unwrap() error { return e.Err }

const (
	CodeMissingProvider = "MISSING_PROVIDER"
	CodeDialFailed      = "DIAL_FAILED"
	CodeUnknownToken    = "UNKNOWN_TOKEN"
	CodeQuoteFailed     = "QUOTE_FAILED"
	CodeEmptyQuote      = "EMPTY_QUOTE"
	CodeUnsupported     = "UNSUPPORTED"
)
