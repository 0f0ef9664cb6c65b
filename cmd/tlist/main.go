package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"tlist/internal/cli"
	"tlist/internal/cli/commands"
	"tlist/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "tlist",
		Short:         "Go test discovery and listing",
		Long:          `Discover Go tests under a directory tree and print the identifier of every test case, one per line. Tests are listed, never run.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(commands.NewEnv(cfg, os.Stdout, os.Stderr))

	// Register all commands
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
