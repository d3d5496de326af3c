package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dimfu/musictime"
	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// Display shows the transport position. On a terminal the line is redrawn
// in place; otherwise one log line is written per bar.
type Display struct {
	live    *uilive.Writer
	logger  *slog.Logger
	tempo   float64
	lastBar int
}

func NewDisplay(out *os.File, logger *slog.Logger, tempo float64) *Display {
	d := &Display{logger: logger, tempo: tempo, lastBar: -1}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		d.live = uilive.New()
		d.live.Out = out
		d.live.Start()
	}
	return d
}

func (d *Display) Live() bool {
	return d.live != nil
}

func (d *Display) Render(pos musictime.MusicTime, paused bool) {
	if d.live != nil {
		writeStatus(d.live, pos, d.tempo, paused)
		return
	}
	if bar := pos.Bars(); bar != d.lastBar {
		d.lastBar = bar
		d.logger.Info("bar",
			slog.Int(LogFieldBar, bar+1),
			slog.String(LogFieldPosition, pos.String()),
			slog.Float64(LogFieldSeconds, pos.ElapsedSeconds(d.tempo)),
		)
	}
}

func (d *Display) Stop() {
	if d.live != nil {
		d.live.Stop()
	}
}

func writeStatus(w io.Writer, pos musictime.MusicTime, tempo float64, paused bool) {
	state := ""
	if paused {
		state = "  [paused]"
	}
	fmt.Fprintf(w, "%-10s %8.2fs  bar %-5d %v bpm%s\n", pos, pos.ElapsedSeconds(tempo), pos.Bars()+1, tempo, state)
}
