// Package llmout turns raw model output into structured values. It owns the
// two halves of that contract: normalization (stripping the markdown wrapping
// models put around JSON) and decoding (strict all-or-nothing JSON parsing
// attributed to the pipeline stage that issued the prompt).
package llmout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode normalizes text and parses it as JSON into a generic nested value.
// A parse failure yields a *DecodeError carrying the stage name and the
// original text; no repair or partial recovery is attempted.
func Decode(text, stage string) (any, error) {
	var v any
	if err := DecodeInto(text, stage, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeInto is Decode for a concrete target type. Missing keys are
// acceptable — shape validation is the caller's opt-in concern.
func DecodeInto(text, stage string, v any) error {
	candidate := ExtractJSON(Normalize(text))
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &DecodeError{Stage: stage, Raw: text, Err: err}
	}
	return nil
}

// DecodeError reports that a model response could not be parsed as JSON.
// Raw keeps the offending text as a diagnostic attachment.
type DecodeError struct {
	Stage string
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to parse model response as JSON: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError reports that a decoded value does not match the expected
// shape. It is produced only by opt-in validation, never by DecodeInto.
type SchemaError struct {
	Subject  string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, strings.Join(e.Problems, "; "))
}
