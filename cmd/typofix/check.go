package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/typofix/internal/checker"
	"github.com/standardbeagle/typofix/internal/config"
	"github.com/standardbeagle/typofix/internal/debug"
	"github.com/standardbeagle/typofix/internal/diagnostics"
	"github.com/standardbeagle/typofix/internal/scan"
	"github.com/standardbeagle/typofix/pkg/pathutil"
)

func checkCommandDef() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "Scan for identifier and import-path typos",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and recheck when files change",
			},
			&cli.Float64Flag{
				Name:  "min-score",
				Usage: "Minimum score for a suggestion (overrides config)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, or compact",
				Value:   "text",
			},
			&cli.StringSliceFlag{
				Name:    "include",
				Aliases: []string{"I"},
				Usage:   "Include files matching glob patterns (e.g., --include 'src/**')",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"E"},
				Usage:   "Exclude files matching glob patterns (e.g., --exclude '**/fixtures/**')",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show every suggestion per diagnostic, not just the best one",
			},
		},
		Action: checkCommand,
	}
}

func checkCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if c.IsSet("min-score") {
		cfg.MinScore = c.Float64("min-score")
	}
	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}

	renderer := diagnostics.NewRenderer(diagnostics.RenderOptions{
		Format:          c.String("format"),
		ShowSuggestions: c.Bool("verbose"),
	})
	chk := checker.New(cfg)
	paths := c.Args().Slice()

	if c.Bool("watch") {
		return watchAndCheck(c.Context, cfg, chk, paths, renderer)
	}

	report, err := runCheck(c.Context, cfg, chk, paths, renderer)
	if err != nil {
		return err
	}
	if report.HasProblems() {
		return cli.Exit("", 1)
	}
	return nil
}

// runCheck performs one full check pass and prints the rendered report.
func runCheck(ctx context.Context, cfg *config.Config, chk *checker.Checker, paths []string, renderer *diagnostics.Renderer) (*diagnostics.Report, error) {
	report, err := chk.CheckPaths(ctx, paths)
	if err != nil {
		return nil, err
	}
	report = pathutil.ToRelativeReport(report, cfg.Root)
	fmt.Print(renderer.Render(report))
	return report, nil
}

// watchAndCheck runs an initial pass, then rechecks whenever the watcher
// reports a settled batch of changes. Exit is by signal; watch mode never
// returns a diagnostics exit code.
func watchAndCheck(ctx context.Context, cfg *config.Config, chk *checker.Checker, paths []string, renderer *diagnostics.Renderer) error {
	recheck := func() {
		if _, err := runCheck(ctx, cfg, chk, paths, renderer); err != nil {
			fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		}
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	watcher, err := scan.NewWatcher(chk.Scanner(), debounce, func(batch scan.Batch) {
		debug.LogScan("watch batch: %d created, %d changed, %d removed\n",
			len(batch.Created), len(batch.Changed), len(batch.Removed))
		fmt.Printf("\nchanges detected at %s, rechecking...\n", time.Now().Format("15:04:05"))
		recheck()
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	recheck()
	fmt.Printf("\nwatching %s for changes (Ctrl-C to stop)\n", cfg.Root)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		stats := watcher.Stats()
		debug.LogScan("watch session: %d events, %d errors\n", stats.EventsProcessed, stats.ErrorCount)
		fmt.Fprintf(os.Stderr, "\nreceived %v, stopping\n", sig)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
