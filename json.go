package guard

import (
	"encoding/json"
)

// ErrorReport represents the JSON structure for error responses. It provides
// a flat, serializable representation of errors without exposing the cause
// chain or captured traces.
//
// The cause chain is intentionally excluded to prevent information leakage
// while still providing useful context through the Code, Kind, Message, and
// Fields fields.
type ErrorReport struct {
	// Code is the failure-category code of the error.
	Code string `json:"code"`

	// Kind is the declared kind name. Omitted if the error was not raised
	// as a declared kind.
	Kind string `json:"kind,omitempty"`

	// Message is the composed, human-readable error message.
	Message string `json:"message"`

	// BaseMessage is the caller-supplied, pre-composition message.
	// Omitted if the error was not built from a scope.
	BaseMessage string `json:"base_message,omitempty"`

	// Fields contains optional metadata about the error.
	// Omitted from JSON if empty.
	Fields map[string]any `json:"fields,omitempty"`
}

// ToJSON converts any error to an ErrorReport suitable for JSON
// serialization. Returns nil if err is nil.
//
// For rich errors, extracts code, kind, message, base message, and fields.
// For standard errors, uses CodeUnknown and the error message.
//
// The cause chain and trace are intentionally excluded: they may contain
// internal implementation details, file paths, or other sensitive
// information.
func ToJSON(err error) *ErrorReport {
	if err == nil {
		return nil
	}

	message := err.Error()
	report := &ErrorReport{
		Code:    string(GetCode(err)),
		Message: message,
	}

	var rich RichError
	if As(err, &rich) {
		report.Message = rich.Message()
		report.BaseMessage = rich.BaseMessage()
		report.Fields = rich.Fields()
		if kind := rich.Kind(); kind != nil {
			report.Kind = kind.Name()
		}
	}

	return report
}

// MarshalJSON implements json.Marshaler so Error instances can be marshaled
// directly with json.Marshal without calling ToJSON explicitly.
func (e *Error) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(ToJSON(e))
	if err != nil {
		return nil, &Error{
			code:    CodeBadConfiguration,
			message: "failed to marshal error report",
			cause:   err,
		}
	}
	return data, nil
}
