package models

import "fmt"

// FetchError is the structured failure of a summarization request.
// Status is the HTTP status code, or 0 when no response was received.
type FetchError struct {
	Data   FetchErrorData `json:"data" yaml:"data"`
	Status int            `json:"status" yaml:"status"`
}

// FetchErrorData carries the human readable message.
type FetchErrorData struct {
	Error string `json:"error" yaml:"error"`
}

// NewFetchError builds a FetchError from a status and message.
func NewFetchError(status int, message string) *FetchError {
	return &FetchError{Data: FetchErrorData{Error: message}, Status: status}
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("summarize failed: %s", e.Data.Error)
	}
	return fmt.Sprintf("summarize failed (status %d): %s", e.Status, e.Data.Error)
}

// Message returns the text meant for display.
func (e *FetchError) Message() string {
	return e.Data.Error
}

// Outcome is the result of one summarization request: either a summary or a
// FetchError, never both. Construct it with Success or Failure.
type Outcome struct {
	summary string
	failure *FetchError
}

// Success wraps a summary.
func Success(summary string) Outcome {
	return Outcome{summary: summary}
}

// Failure wraps a structured error.
func Failure(status int, message string) Outcome {
	return Outcome{failure: NewFetchError(status, message)}
}

// Summary returns the summary and true when the outcome is a success.
func (o Outcome) Summary() (string, bool) {
	if o.failure != nil {
		return "", false
	}
	return o.summary, true
}

// Failure returns the error and true when the outcome is a failure.
func (o Outcome) Failure() (*FetchError, bool) {
	return o.failure, o.failure != nil
}

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.failure == nil {
		return nil
	}
	return o.failure
}
