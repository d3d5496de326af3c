package musictime

import "fmt"

// TimeSignature defines the grid granularity of a MusicTime.
type TimeSignature struct {
	BeatsPerBar         int // number of beats in one bar
	SubdivisionsPerBeat int // finest grid unit, 4 means sixteenths in a quarter-note beat
}

// DefaultSignature is four beats per bar, four subdivisions per beat.
var DefaultSignature = TimeSignature{BeatsPerBar: 4, SubdivisionsPerBeat: 4}

// Validate reports a ConfigurationError when the signature is absent (the
// zero value) or either component is not positive.
func (s TimeSignature) Validate() error {
	if s == (TimeSignature{}) {
		return &ConfigurationError{Field: "signature"}
	}
	if s.BeatsPerBar <= 0 {
		return &ConfigurationError{Field: "beatsPerBar", Value: float64(s.BeatsPerBar)}
	}
	if s.SubdivisionsPerBeat <= 0 {
		return &ConfigurationError{Field: "subdivisionsPerBeat", Value: float64(s.SubdivisionsPerBeat)}
	}
	return nil
}

func (s TimeSignature) subdivisionsPerBar() int {
	return s.BeatsPerBar * s.SubdivisionsPerBeat
}

// diff returns the names of the fields that differ between s and other.
func (s TimeSignature) diff(other TimeSignature) []string {
	var fields []string
	if s.BeatsPerBar != other.BeatsPerBar {
		fields = append(fields, "beatsPerBar")
	}
	if s.SubdivisionsPerBeat != other.SubdivisionsPerBeat {
		fields = append(fields, "subdivisionsPerBeat")
	}
	return fields
}

func (s TimeSignature) String() string {
	return fmt.Sprintf("%d:%d", s.BeatsPerBar, s.SubdivisionsPerBeat)
}
