package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/dimfu/musictime"
	"github.com/pkg/errors"
)

func ValidTempo(input int64) bool {
	return input > MIN_TEMPO && input < MAX_TEMPO
}

// ParseMeter reads a meter such as "6/8" and checks it against METERS.
func ParseMeter(input string) (Meter, error) {
	parts := strings.Split(input, "/")
	if len(parts) != 2 {
		return Meter{}, errors.New("invalid time signature format")
	}

	beats, err1 := strconv.Atoi(parts[0])
	noteValue, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return Meter{}, errors.New("invalid number in time signature")
	}

	for _, m := range METERS {
		if m.Beats == beats && m.NoteValue == noteValue {
			return m, nil
		}
	}

	return Meter{}, errors.Errorf("time signature %v not found", input)
}

// Signature returns the grid for m with the given subdivisions per beat.
func (m Meter) Signature(subdivisions int) (musictime.TimeSignature, error) {
	sig := musictime.TimeSignature{BeatsPerBar: m.Beats, SubdivisionsPerBeat: subdivisions}
	if err := sig.Validate(); err != nil {
		return musictime.TimeSignature{}, errors.Wrapf(err, "meter %v", m)
	}
	return sig, nil
}

func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.Beats, m.NoteValue)
}

func runCmd(name string, arg ...string) {
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	err := cmd.Run()
	if err != nil {
		log.Fatal(err.Error())
	}
}

func ClearTerminal() {
	switch runtime.GOOS {
	case "windows":
		runCmd("cmd", "/c", "cls")
	default:
		runCmd("clear")
	}
}

func UserHomeDir() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return home + "\\"
	}
	return os.Getenv("HOME") + "/"
}
