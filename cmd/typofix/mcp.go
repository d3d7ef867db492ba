package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/typofix/internal/debug"
	"github.com/standardbeagle/typofix/internal/mcp"
)

func mcpCommand(c *cli.Context) error {
	// Stdout belongs to the protocol from here on.
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return debug.Fatal("failed to load config: %v\n", err)
	}

	server := mcp.NewServer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		debug.LogMCP("starting MCP server with stdio transport\n")
		errChan <- server.Run(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return debug.Fatal("MCP server error: %v\n", err)
		}
		return nil
	case sig := <-sigChan:
		debug.LogMCP("received signal %v, shutting down gracefully\n", sig)
		cancel()

		shutdownTimer := time.NewTimer(2 * time.Second)
		defer shutdownTimer.Stop()

		select {
		case err := <-errChan:
			debug.LogMCP("server shutdown completed\n")
			return err
		case <-shutdownTimer.C:
			debug.LogMCP("graceful shutdown timeout, closing stdin\n")
			// Break the stdio transport loop directly.
			os.Stdin.Close()

			forceTimer := time.NewTimer(500 * time.Millisecond)
			defer forceTimer.Stop()

			select {
			case err := <-errChan:
				return err
			case <-forceTimer.C:
				debug.LogMCP("force shutdown timeout exceeded\n")
				return nil
			}
		}
	}
}
