package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/typofix/internal/config"
	"github.com/standardbeagle/typofix/internal/debug"
	"github.com/standardbeagle/typofix/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath := c.String("config"); configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.LoadWithRoot(c.String("root"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// The root flag wins over whatever the config file said.
	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Root = absRoot
	}

	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "typofix",
		Usage:                  "Did-you-mean diagnosis for identifier and import-path typos",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: .typofix.kdl in the root)",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Workspace root directory to check (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug logging to stderr",
			},
			&cli.BoolFlag{
				Name:   "debug-log-file",
				Usage:  "Write debug logging to a timestamped file in the temp dir",
				Hidden: true,
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.EnableDebug = "true"
				debug.SetDebugOutput(os.Stderr)
			}
			if c.Bool("debug-log-file") {
				debug.EnableDebug = "true"
				logPath, err := debug.InitDebugLogFile()
				if err != nil {
					return fmt.Errorf("failed to open debug log file: %w", err)
				}
				fmt.Fprintf(os.Stderr, "debug log: %s\n", logPath)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			checkCommandDef(),
			suggestCommandDef(),
			vocabCommandDef(),
			{
				Name:   "mcp",
				Usage:  "Start MCP (Model Context Protocol) server with stdio transport",
				Action: mcpCommand,
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
