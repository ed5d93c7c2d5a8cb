// SPDX-License-Identifier: EPL-2.0

// Command kickplay plays the kick layers live from the keyboard.
//
//	space, z..m   trigger a note
//	1..4          toggle a layer's mute
//	+ -           master gain up or down by 1 dB
//	p             release every voice
//	r             reload the samples from disk
//	q             quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ik5/hardkick"
	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/loader"
	"github.com/ik5/hardkick/playback"
	"github.com/ik5/hardkick/script"
)

func main() {
	var paths [layer.NumLayers]string
	for i := range paths {
		flag.StringVar(&paths[i], fmt.Sprintf("l%d", i+1), "", fmt.Sprintf("Sample file for layer %d", i+1))
	}
	scriptPath := flag.String("script", "", "Scenario script to take the kit from; its events are ignored")
	rate := flag.Int("rate", 48000, "Output sample rate")
	latency := flag.Duration("latency", playback.DefaultLatency, "Device buffer length")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kickplay [options]\n\nPlays the kick layers from the keyboard.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// raw mode turns off the terminal's own \n to \r\n mapping
	logger := slog.New(slog.NewTextHandler(crlfWriter{os.Stderr}, &slog.HandlerOptions{Level: level}))

	kit, err := loadKit(*scriptPath, paths, *rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(logger, kit, *latency); err != nil {
		logger.Error("kickplay", slog.Any("err", err))
		os.Exit(1)
	}
}

// loadKit builds the scenario to play from a script, the layer flags, or
// both; a flag overrides the script's sample for its layer.
func loadKit(scriptPath string, paths [layer.NumLayers]string, rate int) (*script.Scenario, error) {
	sc, err := script.Parse("")
	if scriptPath != "" {
		sc, err = script.ParseFile(scriptPath)
	}
	if err != nil {
		return nil, err
	}
	if scriptPath == "" {
		sc.Config.SampleRate = rate
	}
	for i, p := range paths {
		if p != "" {
			sc.Layers[i].Sample = p
		}
	}
	return sc, nil
}

func run(logger *slog.Logger, kit *script.Scenario, latency time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := kit.Config
	cfg.Logger = logger
	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	ld := &loader.Loader{Registry: hardkick.NewRegistry(), Logger: logger}
	if err := ld.Publish(ctx, e, kit.Paths()); err != nil {
		logger.Warn("some layers have no sample", slog.Any("err", err))
	}
	for i, l := range kit.Layers {
		if err := e.SetLayerParams(i, l.Params); err != nil {
			return err
		}
	}
	e.SetMasterGain(kit.Master)
	sess := newSession(e, ld, kit.Paths(), logger)

	player, err := playback.NewPlayer(playback.Options{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		Latency:    latency,
	})
	if err != nil {
		return err
	}
	defer player.Close()
	if err := player.Attach(e); err != nil {
		return err
	}
	player.Start()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	logger.Info("ready", slog.Int("rate", cfg.SampleRate), slog.Duration("latency", latency))

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		if !sess.handle(ctx, buf[0]) {
			break
		}
		if err := player.Err(); err != nil {
			return fmt.Errorf("audio device: %w", err)
		}
	}

	logger.Info("bye", slog.Int("voices", e.ActiveVoiceCount()), slog.Uint64("dropped", e.DroppedNotes()))
	return nil
}
