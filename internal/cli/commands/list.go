package commands

import (
	"github.com/spf13/cobra"

	"tlist/internal/domain"
	"tlist/internal/storage"
	"tlist/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	env *Env
}

// NewListCommand creates a new ListCommand
func NewListCommand(env *Env) *ListCommand {
	return &ListCommand{env: env}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	var tree *domain.Suite
	var err error
	if from := lc.env.Config.Flags.From; from != "" {
		// List a tree written earlier by export instead of scanning
		tree, err = storage.NewFileStorage(from, storage.CodecForPath(from)).Load()
	} else {
		tree, err = lc.env.Discover(cmd.Context())
	}
	if err != nil {
		return err
	}

	formatter := ui.NewFormatter(lc.env.Out, lc.env.Config.Flags.MarkFailed)
	return formatter.PrintSuite(tree)
}
