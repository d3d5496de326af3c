package musictime

import (
	"fmt"
	"math"
	"time"
)

// gridEpsilon is the distance, in subdivisions, within which a position
// snaps onto the nearest grid line.
const gridEpsilon = 1e-9

// MusicTime is a position or duration on a bars/beats/subdivisions grid.
//
// The value is stored as total beats; bars, beats and subdivisions are derived
// on demand from the attached TimeSignature. The zero value is 0.0.0 under
// DefaultSignature.
type MusicTime struct {
	beats float64
	sig   TimeSignature
}

// Fields is the normalized grid form of a MusicTime.
//
// Beats is in [0, BeatsPerBar) and Subdivisions is in [0, SubdivisionsPerBeat).
// Bars may be negative for results of arithmetic. Remainder holds the fraction
// of a subdivision below the grid, in [0, 1).
type Fields struct {
	Bars         int
	Beats        int
	Subdivisions int
	Remainder    float64
}

// New returns a MusicTime under DefaultSignature. Any field may be fractional
// or negative; overflow is carried into the larger units.
func New(bars, beats, subdivisions float64) MusicTime {
	return build(DefaultSignature, bars, beats, subdivisions)
}

// NewWithSignature is like New but attaches sig.
func NewWithSignature(sig TimeSignature, bars, beats, subdivisions float64) (MusicTime, error) {
	if err := sig.Validate(); err != nil {
		return MusicTime{}, err
	}
	return build(sig, bars, beats, subdivisions), nil
}

// FromElapsedTime converts elapsed seconds at tempo (beats per minute) into a
// position under DefaultSignature. The result is floored to the subdivision
// grid; time below one subdivision is discarded.
func FromElapsedTime(seconds, tempo float64) (MusicTime, error) {
	return FromElapsedTimeWithSignature(DefaultSignature, seconds, tempo)
}

// FromElapsedTimeWithSignature is like FromElapsedTime but attaches sig.
func FromElapsedTimeWithSignature(sig TimeSignature, seconds, tempo float64) (MusicTime, error) {
	if err := sig.Validate(); err != nil {
		return MusicTime{}, err
	}
	if err := validateTempo(tempo); err != nil {
		return MusicTime{}, err
	}
	perSecond := tempo * float64(sig.SubdivisionsPerBeat) / 60
	return build(sig, 0, 0, math.Floor(snap(seconds*perSecond))), nil
}

func build(sig TimeSignature, bars, beats, subdivisions float64) MusicTime {
	total := bars*float64(sig.BeatsPerBar) + beats + subdivisions/float64(sig.SubdivisionsPerBeat)
	return MusicTime{beats: total, sig: sig}
}

func validateTempo(tempo float64) error {
	if !(tempo > 0) || math.IsInf(tempo, 1) {
		return &ConfigurationError{Field: "tempo", Value: tempo}
	}
	return nil
}

// snap pulls x onto the nearest integer when floating-point drift left it
// within gridEpsilon.
func snap(x float64) float64 {
	if r := math.Round(x); math.Abs(x-r) < gridEpsilon {
		return r
	}
	return x
}

func (t MusicTime) signature() TimeSignature {
	if t.sig == (TimeSignature{}) {
		return DefaultSignature
	}
	return t.sig
}

// Signature returns a copy of the attached time signature.
func (t MusicTime) Signature() TimeSignature {
	return t.signature()
}

// SetSignature replaces the whole time signature. The total beats are kept,
// so the derived bars, beats and subdivisions may change.
func (t *MusicTime) SetSignature(sig TimeSignature) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	t.sig = sig
	return nil
}

// Fields derives the normalized bars, beats and subdivisions.
func (t MusicTime) Fields() Fields {
	sig := t.signature()
	total := snap(t.TotalSubdivisions())
	whole := math.Floor(total)

	perBar := float64(sig.subdivisionsPerBar())
	perBeat := float64(sig.SubdivisionsPerBeat)
	bars := math.Floor(whole / perBar)
	rest := whole - bars*perBar
	beats := math.Floor(rest / perBeat)

	return Fields{
		Bars:         int(bars),
		Beats:        int(beats),
		Subdivisions: int(rest - beats*perBeat),
		Remainder:    total - whole,
	}
}

func (t MusicTime) Bars() int { return t.Fields().Bars }
func (t MusicTime) Beats() int { return t.Fields().Beats }
func (t MusicTime) Subdivisions() int { return t.Fields().Subdivisions }
func (t MusicTime) Remainder() float64 { return t.Fields().Remainder }
func (t MusicTime) TotalBeats() float64 { return t.beats }

// TotalBars returns the position in bars, fractional between bar lines.
func (t MusicTime) TotalBars() float64 {
	return t.beats / float64(t.signature().BeatsPerBar)
}

// TotalSubdivisions returns the position in subdivisions, fractional below
// the grid.
func (t MusicTime) TotalSubdivisions() float64 {
	return t.beats * float64(t.signature().SubdivisionsPerBeat)
}

// SubdivisionCount returns the whole number of subdivisions, dropping the
// remainder.
func (t MusicTime) SubdivisionCount() int {
	return int(math.Floor(snap(t.TotalSubdivisions())))
}

// ElapsedSeconds returns the wall-clock length of t at tempo beats per
// minute. Results are memoized in DefaultCache. It returns NaN when tempo is
// not positive and finite.
func (t MusicTime) ElapsedSeconds(tempo float64) float64 {
	return DefaultCache.ElapsedSeconds(t, tempo)
}

// ElapsedDuration is ElapsedSeconds as a time.Duration. It returns 0 when
// tempo is not positive and finite.
func (t MusicTime) ElapsedDuration(tempo float64) time.Duration {
	secs := t.ElapsedSeconds(tempo)
	if math.IsNaN(secs) {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// Add returns t + other. Both must share the same signature.
func (t MusicTime) Add(other MusicTime) (MusicTime, error) {
	if err := t.compatible("add", other); err != nil {
		return MusicTime{}, err
	}
	return MusicTime{beats: t.beats + other.beats, sig: t.signature()}, nil
}

// Subtract returns t - other. Both must share the same signature.
func (t MusicTime) Subtract(other MusicTime) (MusicTime, error) {
	if err := t.compatible("subtract", other); err != nil {
		return MusicTime{}, err
	}
	return MusicTime{beats: t.beats - other.beats, sig: t.signature()}, nil
}

// Multiply scales t by factor, keeping its signature.
func (t MusicTime) Multiply(factor float64) MusicTime {
	return MusicTime{beats: t.beats * factor, sig: t.signature()}
}

func (t MusicTime) compatible(op string, other MusicTime) error {
	left, right := t.signature(), other.signature()
	if left != right {
		return &CompatibilityError{Op: op, Left: left, Right: right}
	}
	return nil
}

// Equal reports whether t and other cover the same number of beats. The
// signatures are not compared.
func (t MusicTime) Equal(other MusicTime) bool {
	return t.beats == other.beats
}

// Compare returns -1 if t is before other, +1 if after and 0 if equal.
func (t MusicTime) Compare(other MusicTime) int {
	switch {
	case t.beats < other.beats:
		return -1
	case t.beats > other.beats:
		return 1
	}
	return 0
}

func (t MusicTime) Before(other MusicTime) bool { return t.Compare(other) < 0 }
func (t MusicTime) After(other MusicTime) bool { return t.Compare(other) > 0 }

// Clone returns an independent copy of t.
func (t MusicTime) Clone() MusicTime {
	return MusicTime{beats: t.beats, sig: t.signature()}
}

// String renders "bars.beats.subdivisions", followed by the sub-grid
// remainder as " [0.50]" when there is one. The remainder is truncated to two
// decimals so it never shows as 1.00; a remainder below 0.01 shows as 0.00.
// Parse does not accept the bracketed form.
func (t MusicTime) String() string {
	f := t.Fields()
	s := fmt.Sprintf("%d.%d.%d", f.Bars, f.Beats, f.Subdivisions)
	if f.Remainder != 0 {
		s += fmt.Sprintf(" [%.2f]", math.Floor(f.Remainder*100+gridEpsilon)/100)
	}
	return s
}
