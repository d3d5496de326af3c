package main

// Meter is a time signature as written on a score.
type Meter struct {
	Beats     int // number of beats per meassure
	NoteValue int // note that represent that one beat
}

const (
	MIN_TEMPO = 0
	MAX_TEMPO = 600

	// grid resolution per beat, 4 means sixteenths in 4/4
	DEFAULT_SUBDIVISIONS = 4
)

var METERS = []Meter{
	{4, 4},
	{3, 4},
	{2, 4},
	{2, 2},
	{3, 8},
	{6, 8},
	{9, 8},
	{12, 8},
	{5, 4},
	{6, 4},
	{7, 8},
}

// log attribute keys
const (
	LogFieldPosition  = "position"
	LogFieldTempo     = "tempo"
	LogFieldSignature = "signature"
	LogFieldPreset    = "preset"
	LogFieldSeconds   = "elapsed_seconds"
	LogFieldBar       = "bar"
	LogFieldInterval  = "beat_interval"
)
