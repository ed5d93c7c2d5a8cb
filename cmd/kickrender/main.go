// SPDX-License-Identifier: EPL-2.0

// Command kickrender renders a scenario script to a WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/ik5/hardkick"
	"github.com/ik5/hardkick/formats/wav"
	"github.com/ik5/hardkick/script"
	"github.com/ik5/hardkick/utils"
)

func main() {
	outFile := flag.String("o", "", "Output WAV file (default: script name with .wav)")
	encName := flag.String("enc", "pcm24", "Sample encoding: pcm16, pcm24 or float32")
	block := flag.Int("block", hardkick.DefaultBlockSize, "Render block size in frames")
	mono := flag.Bool("mono", false, "Fold samples to mono while loading")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kickrender [options] script.lua\n\nRenders a kick scenario script to a WAV file.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	enc, err := wav.ParseEncoding(*encName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -enc: %v\n", err)
		os.Exit(1)
	}

	scriptPath := flag.Arg(0)
	outPath := *outFile
	if outPath == "" {
		outPath = strings.TrimSuffix(scriptPath, ".lua") + ".wav"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, scriptPath, outPath, enc, hardkick.RenderOptions{
		BlockSize: *block,
		Mono:      *mono,
		Logger:    logger,
	}); err != nil {
		logger.Error("render failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, scriptPath, outPath string, enc wav.Encoding, opts hardkick.RenderOptions) error {
	sc, err := script.ParseFile(scriptPath)
	if err != nil {
		return err
	}

	r, err := hardkick.RenderScenario(ctx, sc, opts)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := wav.Write(out, r.SampleRate, r.Channels, enc, r.Samples); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	peak := r.Peak()
	logger.Info("wrote",
		slog.String("path", outPath),
		slog.String("encoding", enc.String()),
		slog.Int("frames", r.Frames()),
		slog.Float64("peak_db", utils.GainToDB(float64(peak))))
	if peak > 1 && enc != wav.Float32 {
		logger.Warn("output clipped", slog.Float64("peak", float64(peak)))
	}
	return nil
}
