package main

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// AudioPlayer plays the accent and regular tick samples.
type AudioPlayer struct {
	format  beep.Format
	buffers []*beep.Buffer
	ctrl    *beep.Ctrl
}

func Read(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "reading audio file failed")
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrap(err, "error while decoding audio")
	}

	return streamer, format, nil
}

// NewAudioPlayer loads the accent sample followed by the regular one.
func NewAudioPlayer(accent, regular string) (*AudioPlayer, error) {
	ap := &AudioPlayer{}
	for i, path := range []string{accent, regular} {
		streamer, audioFormat, err := Read(path)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			ap.format = audioFormat
			err := speaker.Init(ap.format.SampleRate, ap.format.SampleRate.N(time.Second/30))
			if err != nil {
				streamer.Close()
				return nil, errors.Wrap(err, "error while initializing speaker")
			}
		}
		buffer := beep.NewBuffer(ap.format)
		buffer.Append(streamer)
		ap.buffers = append(ap.buffers, buffer)
		streamer.Close()
	}

	return ap, nil
}

// PlayTick plays the accent sample on downbeats and the regular one otherwise.
// A tick still sounding is cut off.
func (ap *AudioPlayer) PlayTick(accent bool) {
	index := 1
	if accent {
		index = 0
	}

	speaker.Lock()
	if ap.ctrl != nil {
		ap.ctrl.Streamer = nil
	}
	ap.ctrl = &beep.Ctrl{
		Streamer: ap.buffers[index].Streamer(0, ap.buffers[index].Len()),
		Paused:   false,
	}
	speaker.Unlock()

	speaker.Play(ap.ctrl)
}

func (ap *AudioPlayer) Close() {
	speaker.Clear()
}
