package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"pingy/art"
	"pingy/parallel"
	"pingy/upscale"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers int  `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
	Debug   bool `help:"Enable debug logging"`

	Art     art.CLICmd       `cmd:"" help:"Render character art files to images"`
	Upscale upscale.CLICmd   `cmd:"" help:"Upscale an image by an integer factor"`
	Blank   upscale.BlankCmd `cmd:"" help:"Create a blank image filled with one color"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pingy"),
		kong.Description("Create and manipulate small raster images."),
		kong.UsageOnError(),
	)

	if c.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool := parallel.Start(c.Workers)
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(pool)

	slog.Debug("running", "command", kctx.Command(), "workers", c.Workers)
	if err := kctx.Run(); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		stop()
		os.Exit(1)
	}
}
