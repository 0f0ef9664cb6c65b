package commands

import (
	"github.com/spf13/cobra"

	"tlist/internal/ui"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	env *Env
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(env *Env) *StatsCommand {
	return &StatsCommand{env: env}
}

// Execute runs the command
func (sc *StatsCommand) Execute(cmd *cobra.Command, args []string) error {
	tree, err := sc.env.Discover(cmd.Context())
	if err != nil {
		return err
	}

	return ui.NewFormatter(sc.env.Out, false).PrintStats(tree)
}
