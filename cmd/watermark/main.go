package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/watermark-manager/internal/collector"
	"github.com/aliskhannn/watermark-manager/internal/config"
	"github.com/aliskhannn/watermark-manager/internal/pipeline"
	"github.com/aliskhannn/watermark-manager/internal/processor"
)

func main() {
	// Context & signals: an interrupt aborts storage calls in flight.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger and load application configuration.
	zlog.Init()

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		zlog.Logger.Fatal().Err(err).Msg("failed to parse flags")
	}
	path, _ := flags.GetString("config")
	cfg := config.MustLoad(path, flags)

	// Initialize storage backend.
	store, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to storage")
	}

	// Initialize compositor and pipeline.
	face, err := processor.LoadFace(cfg.Watermark.FontPath, cfg.Watermark.FontSize)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load font")
	}
	compositor, err := processor.NewCompositor(processor.CompositorOptions{
		Face:      face,
		TextColor: cfg.Watermark.TextColor,
		Opacity:   cfg.Watermark.Opacity,
	})
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create compositor")
	}
	p := pipeline.New(store, compositor, cfg.Output.JPEGQuality)

	// Ask the user for the job parameters.
	c := collector.New(collector.NewSurveyPrompter(), collector.Defaults{
		InputImage:     cfg.Prompt.DefaultInput,
		WatermarkImage: cfg.Prompt.DefaultMark,
		Location:       describeLocation(cfg.Storage),
	})

	job, err := c.Collect(ctx)
	if err != nil {
		if errors.Is(err, collector.ErrCancelled) {
			zlog.Logger.Info().Msg("cancelled, nothing to do")
			return
		}
		zlog.Logger.Fatal().Err(err).Msg("failed to collect job parameters")
	}

	if err := p.Run(ctx, job); err != nil {
		var decErr *pipeline.DecodeError
		var writeErr *pipeline.WriteError

		switch {
		case errors.As(err, &decErr):
			zlog.Logger.Error().Err(decErr.Err).Str("path", decErr.Path).Msg("failed to read image")
		case errors.As(err, &writeErr):
			zlog.Logger.Error().Err(writeErr.Err).Str("path", writeErr.Path).Msg("failed to write image")
		default:
			zlog.Logger.Error().Err(err).Msg("failed to process image")
		}

		stop()
		os.Exit(1)
	}

	zlog.Logger.Info().Str("output", job.OutputPath).Msg("done! enjoy your watermarked image")
}
