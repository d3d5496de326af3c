package main

import (
	"math"
	"time"

	"github.com/dimfu/musictime"
	"github.com/pkg/errors"
)

// Transport tracks the musical position of a running metronome. Beats and
// the displayed position are both derived from the pause-aware elapsed time.
type Transport struct {
	Tempo     float64
	Signature musictime.TimeSignature

	start    time.Time
	pausedAt time.Time
	paused   bool
	held     time.Duration // total time spent paused

	beat musictime.MusicTime
}

func NewTransport(tempo float64, sig musictime.TimeSignature) (*Transport, error) {
	beat, err := musictime.NewWithSignature(sig, 0, 1, 0)
	if err != nil {
		return nil, errors.Wrap(err, "transport")
	}
	if tempo <= MIN_TEMPO || tempo >= MAX_TEMPO {
		return nil, errors.Errorf("transport: tempo %v out of range", tempo)
	}

	return &Transport{
		Tempo:     tempo,
		Signature: sig,
		beat:      beat,
	}, nil
}

func (t *Transport) Start(now time.Time) {
	t.start = now
	t.held = 0
	t.paused = false
}

// BeatInterval is the wall-clock length of one beat.
func (t *Transport) BeatInterval() time.Duration {
	return t.beat.ElapsedDuration(t.Tempo)
}

func (t *Transport) Paused() bool {
	return t.paused
}

// Toggle pauses a running transport or resumes a paused one.
func (t *Transport) Toggle(now time.Time) {
	if t.paused {
		t.held += now.Sub(t.pausedAt)
		t.paused = false
		return
	}
	t.pausedAt = now
	t.paused = true
}

// Elapsed returns the running time since Start, excluding pauses.
func (t *Transport) Elapsed(now time.Time) time.Duration {
	end := now
	if t.paused {
		end = t.pausedAt
	}
	elapsed := end.Sub(t.start) - t.held
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Position returns the grid position reached at now.
func (t *Transport) Position(now time.Time) (musictime.MusicTime, error) {
	return musictime.FromElapsedTimeWithSignature(t.Signature, t.Elapsed(now).Seconds(), t.Tempo)
}

// BeatAt returns the position of the beat sounding at now, floored to whole
// beats.
func (t *Transport) BeatAt(now time.Time) (musictime.MusicTime, error) {
	pos, err := t.Position(now)
	if err != nil {
		return musictime.MusicTime{}, err
	}
	return musictime.NewWithSignature(t.Signature, 0, math.Floor(pos.TotalBeats()), 0)
}

// UntilNextBeat returns the running time left before the next beat starts.
// The wait is rounded up to the nanosecond so the beat has been reached when
// it expires.
func (t *Transport) UntilNextBeat(now time.Time) time.Duration {
	elapsed := t.Elapsed(now)
	beats := elapsed.Seconds() * t.Tempo / 60
	next := math.Floor(beats+1e-9) + 1
	at := time.Duration(math.Ceil(next * 60 / t.Tempo * float64(time.Second)))
	return at - elapsed
}

// IsDownbeat reports whether pos falls on the first beat of a bar.
func IsDownbeat(pos musictime.MusicTime) bool {
	return pos.Beats() == 0 && pos.Subdivisions() == 0 && pos.Remainder() == 0
}
