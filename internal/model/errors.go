package model

import "fmt"

// CompletionError reports a failure of the hosted completion service
// (timeout, quota, malformed request). Stages that depend on completions
// recover from it locally; it never crosses the pipeline boundary.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion (%s): %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// SearchError reports a transport or storage failure of the record search
// interface. It is surfaced to the user as a generic failure and logged,
// never retried by this core.
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("pairing search: %v", e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// IntentParseError reports malformed or ungrounded model output during
// intent extraction. Always recovered into a clarification intent.
type IntentParseError struct {
	Raw string
	Err error
}

func (e *IntentParseError) Error() string {
	raw := e.Raw
	if len(raw) > 120 {
		raw = raw[:120] + "..."
	}
	return fmt.Sprintf("parse intent from %q: %v", raw, e.Err)
}

func (e *IntentParseError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup of a pairing number that matched nothing
type NotFoundError struct {
	PairingNumber string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no pairing found for %s", e.PairingNumber)
}
