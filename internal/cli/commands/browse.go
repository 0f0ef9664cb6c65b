package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tlist/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	env    *Env
	viewer ui.Viewer
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(env *Env, viewer ui.Viewer) *BrowseCommand {
	return &BrowseCommand{env: env, viewer: viewer}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	tree, err := bc.env.Discover(cmd.Context())
	if err != nil {
		return err
	}

	if tree.Count() == 0 {
		color.New(color.FgYellow).Fprintln(bc.env.ErrOut, "No tests found")
		return nil
	}

	return bc.viewer.View(tree)
}
