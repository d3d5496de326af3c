package musictime

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a "bars.beats.subdivisions" string under DefaultSignature.
// Every component must be a non-negative decimal integer; components are
// normalized like New. The bracketed remainder that String appends for
// off-grid positions is rejected.
func Parse(text string) (MusicTime, error) {
	return ParseWithSignature(DefaultSignature, text)
}

// ParseWithSignature is like Parse but attaches sig.
func ParseWithSignature(sig TimeSignature, text string) (MusicTime, error) {
	if err := sig.Validate(); err != nil {
		return MusicTime{}, err
	}
	parts, err := splitComponents(text)
	if err != nil {
		return MusicTime{}, err
	}
	return build(sig, float64(parts[0]), float64(parts[1]), float64(parts[2])), nil
}

// Valid reports whether text can be passed to Parse.
func Valid(text string) bool {
	_, err := splitComponents(text)
	return err == nil
}

func splitComponents(text string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(text, ".")
	if len(parts) != len(out) {
		return out, &ParseError{Input: text, Reason: fmt.Sprintf("expected 3 components, got %d", len(parts))}
	}
	for i, p := range parts {
		if p == "" {
			return out, &ParseError{Input: text, Reason: fmt.Sprintf("component %d is empty", i)}
		}
		// strconv accepts a leading sign, so reject anything but ASCII digits first.
		for _, r := range p {
			if r < '0' || r > '9' {
				return out, &ParseError{Input: text, Reason: fmt.Sprintf("component %d has non-digit %q", i, r)}
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, &ParseError{Input: text, Reason: fmt.Sprintf("component %d is out of range", i)}
		}
		out[i] = n
	}
	return out, nil
}
