package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimfu/musictime"
	"github.com/dimfu/musictime/internal/history"
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app         = kingpin.New("clack", "A terminal metronome that keeps track of bars and beats.")
	configPath  = app.Flag("config", "Preset file").Default(DefaultConfigPath()).String()
	historyPath = app.Flag("history", "Session history database").Default(UserHomeDir() + ".clack.db").String()

	runCommand   = app.Command("run", "Start the metronome").Default()
	tempo        = runCommand.Flag("tempo", "the speed at which a passage of this metronome should be played").Default("120").Short('t').Int64()
	timesig      = runCommand.Flag("timesig", "indicate how many beats are in each measure").Default("4/4").Short('s').String()
	subdivisions = runCommand.Flag("subdivisions", "Grid subdivisions per beat").Default("4").Int()
	preset       = runCommand.Flag("preset", "Load tempo and time signature from a saved preset").Short('p').String()
	hiSample     = runCommand.Flag("hi", "Accent tick sample").Default("./static/hi.wav").String()
	loSample     = runCommand.Flag("lo", "Regular tick sample").Default("./static/lo.wav").String()

	presetCommand      = app.Command("preset", "Manage presets")
	presetAdd          = presetCommand.Command("add", "Save a preset")
	presetAddKey       = presetAdd.Arg("key", "Preset name").Required().String()
	presetAddTempo     = presetAdd.Flag("tempo", "Tempo in beats per minute").Default("120").Short('t').Int64()
	presetAddTimesig   = presetAdd.Flag("timesig", "Time signature").Default("4/4").Short('s').String()
	presetAddSubdivide = presetAdd.Flag("subdivisions", "Grid subdivisions per beat").Default("4").Int()
	presetRm           = presetCommand.Command("rm", "Delete a preset")
	presetRmKey        = presetRm.Arg("key", "Preset name").Required().String()
	presetLs           = presetCommand.Command("ls", "List presets")

	historyCommand = app.Command("history", "List recent sessions")
	historyLimit   = historyCommand.Flag("limit", "Number of sessions").Default("10").Short('n').Int()
)

func main() {
	app.Version("0.3.0")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var err error
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case runCommand.FullCommand():
		err = runMetronome(logger)
	case presetAdd.FullCommand():
		err = CreateConf(*configPath, Config{
			Key:          *presetAddKey,
			Tempo:        *presetAddTempo,
			Timesig:      *presetAddTimesig,
			Subdivisions: *presetAddSubdivide,
		})
	case presetRm.FullCommand():
		err = DeleteConfig(*configPath, *presetRmKey)
	case presetLs.FullCommand():
		err = listPresets()
	case historyCommand.FullCommand():
		err = listHistory(*historyLimit)
	}
	app.FatalIfError(err, "")
}

// settings resolves the tempo and grid from flags or a preset.
func settings() (Config, error) {
	cfg := Config{Tempo: *tempo, Timesig: *timesig, Subdivisions: *subdivisions}
	if *preset != "" {
		saved, err := GetConfig(*configPath, *preset)
		if err != nil {
			return Config{}, err
		}
		cfg = saved
	}

	if !ValidTempo(cfg.Tempo) {
		return Config{}, errors.Errorf("tempo is not valid make sure its above %v and below %v", MIN_TEMPO, MAX_TEMPO)
	}
	return cfg, nil
}

func runMetronome(logger *slog.Logger) error {
	cfg, err := settings()
	if err != nil {
		return err
	}
	meter, err := ParseMeter(cfg.Timesig)
	if err != nil {
		return err
	}
	sig, err := meter.Signature(cfg.subdivisions())
	if err != nil {
		return err
	}

	transport, err := NewTransport(float64(cfg.Tempo), sig)
	if err != nil {
		return err
	}

	player, err := NewAudioPlayer(*hiSample, *loSample)
	if err != nil {
		return err
	}
	defer player.Close()

	store, err := history.Open(*historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return errors.Wrap(err, "unable to open keyboard")
	}
	defer keyboard.Close()

	logger.Info("starting",
		slog.String(LogFieldPreset, cfg.Key),
		slog.Int64(LogFieldTempo, cfg.Tempo),
		slog.String(LogFieldSignature, meter.String()),
		slog.Duration(LogFieldInterval, transport.BeatInterval()),
	)

	display := NewDisplay(os.Stdout, logger, transport.Tempo)
	if display.Live() {
		ClearTerminal()
	}
	defer display.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	refresh := time.NewTicker(time.Second / 30)
	defer refresh.Stop()

	playTick := func(now time.Time) error {
		beat, err := transport.BeatAt(now)
		if err != nil {
			return err
		}
		player.PlayTick(IsDownbeat(beat))
		return nil
	}

	start := time.Now()
	transport.Start(start)
	if err := playTick(start); err != nil {
		return err
	}
	beats := time.NewTimer(transport.UntilNextBeat(start))
	defer beats.Stop()

loop:
	for {
		select {
		case now := <-beats.C:
			// a stale fire from before a pause
			if transport.Paused() {
				continue
			}
			if err := playTick(now); err != nil {
				return err
			}
			beats.Reset(transport.UntilNextBeat(now))
		case now := <-refresh.C:
			pos, err := transport.Position(now)
			if err != nil {
				return err
			}
			display.Render(pos, transport.Paused())
		case ev := <-keys:
			if ev.Err != nil {
				return errors.Wrap(ev.Err, "keyboard")
			}
			switch {
			case ev.Key == keyboard.KeyEsc, ev.Key == keyboard.KeyCtrlC, ev.Rune == 'q':
				break loop
			case ev.Key == keyboard.KeySpace:
				now := time.Now()
				transport.Toggle(now)
				stopTimer(beats)
				if !transport.Paused() {
					// resume on the next beat line, not a full interval later
					beats.Reset(transport.UntilNextBeat(now))
				}
			}
		case <-sigs:
			break loop
		}
	}

	now := time.Now()
	pos, err := transport.Position(now)
	if err != nil {
		return err
	}
	if _, err := store.Record(context.Background(), history.Session{
		Preset:   cfg.Key,
		Tempo:    transport.Tempo,
		Position: pos,
		EndedAt:  now,
	}); err != nil {
		return err
	}
	logger.Info("session finished",
		slog.String(LogFieldPosition, pos.String()),
		slog.Float64(LogFieldSeconds, pos.ElapsedSeconds(transport.Tempo)),
	)
	return nil
}

// stopTimer stops timer and drains a pending fire.
func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

func listPresets() error {
	configs, err := ListConfigs(*configPath)
	if err != nil {
		return err
	}
	for _, c := range configs {
		fmt.Printf("%-16v %4v bpm  %v  (%v per beat)\n", c.Key, c.Tempo, c.Timesig, c.subdivisions())
	}
	return nil
}

func listHistory(limit int) error {
	store, err := history.Open(*historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	sessions, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Printf("%v  %-12v %6v bpm  %-12v %8.1fs\n",
			s.EndedAt.Format(time.DateTime), s.Preset, s.Tempo, s.Position, s.Seconds())
	}

	total, err := store.Total(ctx, musictime.DefaultSignature)
	if err != nil {
		return err
	}
	fmt.Printf("total %v beats (%v in 4/4)\n", total.TotalBeats(), total)
	return nil
}
