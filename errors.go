package musictime

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is returned when a time string is malformed.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("musictime: invalid time string %q: %s", e.Input, e.Reason)
}

// CompatibilityError is returned when an operation combines two times with
// different signatures.
type CompatibilityError struct {
	Op    string
	Left  TimeSignature
	Right TimeSignature
}

// Fields returns the names of the signature fields that differ.
func (e *CompatibilityError) Fields() []string {
	return e.Left.diff(e.Right)
}

func (e *CompatibilityError) Error() string {
	var parts []string
	for _, f := range e.Fields() {
		switch f {
		case "beatsPerBar":
			parts = append(parts, fmt.Sprintf("beatsPerBar (%d,%d)", e.Left.BeatsPerBar, e.Right.BeatsPerBar))
		case "subdivisionsPerBeat":
			parts = append(parts, fmt.Sprintf("subdivisionsPerBeat (%d,%d)", e.Left.SubdivisionsPerBeat, e.Right.SubdivisionsPerBeat))
		}
	}
	return fmt.Sprintf("musictime: cannot %s when %s are not equal", e.Op, strings.Join(parts, " and "))
}

// ConfigurationError is returned for a non-positive signature component or
// tempo.
type ConfigurationError struct {
	Field string
	Value float64
}

func (e *ConfigurationError) Error() string {
	if e.Field == "signature" {
		return "musictime: time signature is required"
	}
	return fmt.Sprintf("musictime: %s must be positive, got %s", e.Field, strconv.FormatFloat(e.Value, 'g', -1, 64))
}
