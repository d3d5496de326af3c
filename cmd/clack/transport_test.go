package main

import (
	"testing"
	"time"

	"github.com/dimfu/musictime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_Position(t *testing.T) {
	tr, err := NewTransport(120, musictime.DefaultSignature)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, tr.BeatInterval())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.Start(start)

	positions := []struct {
		offset time.Duration
		want   string
	}{
		{0, "0.0.0"},
		{100 * time.Millisecond, "0.0.0"},
		{125 * time.Millisecond, "0.0.1"},
		{time.Second, "0.2.0"},
		{2 * time.Second, "1.0.0"},
		{9*time.Second + 750*time.Millisecond, "4.3.2"},
	}
	for _, p := range positions {
		pos, err := tr.Position(start.Add(p.offset))
		require.NoError(t, err)
		assert.Equal(t, p.want, pos.String(), "offset %v", p.offset)
	}
}

func TestTransport_Toggle(t *testing.T) {
	tr, err := NewTransport(120, musictime.DefaultSignature)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.Start(start)

	tr.Toggle(start.Add(time.Second))
	assert.True(t, tr.Paused())

	pos, err := tr.Position(start.Add(3 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", pos.String())

	tr.Toggle(start.Add(3 * time.Second))
	assert.False(t, tr.Paused())
	assert.Equal(t, 2*time.Second, tr.Elapsed(start.Add(4*time.Second)))

	pos, err = tr.Position(start.Add(4 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", pos.String())
}

func TestTransport_BeatAt(t *testing.T) {
	tr, err := NewTransport(90, musictime.TimeSignature{BeatsPerBar: 3, SubdivisionsPerBeat: 4})
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.Start(start)

	want := []struct {
		pos      string
		downbeat bool
	}{
		{"0.0.0", true},
		{"0.1.0", false},
		{"0.2.0", false},
		{"1.0.0", true},
		{"1.1.0", false},
	}
	now := start
	for _, w := range want {
		beat, err := tr.BeatAt(now)
		require.NoError(t, err)
		assert.Equal(t, w.pos, beat.String(), "at %v", now.Sub(start))
		assert.Equal(t, w.downbeat, IsDownbeat(beat))
		now = now.Add(tr.UntilNextBeat(now))
	}
}

func TestTransport_UntilNextBeat(t *testing.T) {
	tr, err := NewTransport(120, musictime.DefaultSignature)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.Start(start)

	assert.Equal(t, 500*time.Millisecond, tr.UntilNextBeat(start))
	assert.Equal(t, 300*time.Millisecond, tr.UntilNextBeat(start.Add(1200*time.Millisecond)))
	assert.Equal(t, 500*time.Millisecond, tr.UntilNextBeat(start.Add(1500*time.Millisecond)))
}

func TestTransport_ResumeMidBeat(t *testing.T) {
	tr, err := NewTransport(120, musictime.DefaultSignature)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.Start(start)

	// pause 0.4 beat into the third beat, resume much later
	tr.Toggle(start.Add(1200 * time.Millisecond))
	resumed := start.Add(5 * time.Second)
	tr.Toggle(resumed)

	wait := tr.UntilNextBeat(resumed)
	assert.Equal(t, 300*time.Millisecond, wait)

	next := resumed.Add(wait)
	beat, err := tr.BeatAt(next)
	require.NoError(t, err)
	pos, err := tr.Position(next)
	require.NoError(t, err)
	assert.Equal(t, "0.3.0", beat.String())
	assert.Equal(t, pos.String(), beat.String())

	// the following downbeat agrees with the displayed bar
	next = next.Add(tr.UntilNextBeat(next))
	beat, err = tr.BeatAt(next)
	require.NoError(t, err)
	pos, err = tr.Position(next)
	require.NoError(t, err)
	assert.True(t, IsDownbeat(beat))
	assert.Equal(t, 1, beat.Bars())
	assert.Equal(t, pos.Bars(), beat.Bars())
}

func TestNewTransport_Invalid(t *testing.T) {
	_, err := NewTransport(0, musictime.DefaultSignature)
	assert.Error(t, err)

	_, err = NewTransport(120, musictime.TimeSignature{BeatsPerBar: 0, SubdivisionsPerBeat: 4})
	assert.ErrorContains(t, err, "beatsPerBar")
}

func TestIsDownbeat(t *testing.T) {
	assert.True(t, IsDownbeat(musictime.New(2, 0, 0)))
	assert.False(t, IsDownbeat(musictime.New(2, 0, 1)))
	assert.False(t, IsDownbeat(musictime.New(2, 1, 0)))
	assert.False(t, IsDownbeat(musictime.New(0, 0, 0.5)))
}
