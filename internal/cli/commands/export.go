package commands

import (
	"github.com/spf13/cobra"

	"tlist/internal/storage"
)

// ExportCommand handles the export command
type ExportCommand struct {
	env *Env
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(env *Env) *ExportCommand {
	return &ExportCommand{env: env}
}

// Execute runs the command
func (ec *ExportCommand) Execute(cmd *cobra.Command, args []string) error {
	codec, err := storage.CodecFor(ec.env.Config.Flags.Format)
	if err != nil {
		return err
	}

	tree, err := ec.env.Discover(cmd.Context())
	if err != nil {
		return err
	}

	if out := ec.env.Config.Flags.Output; out != "" {
		if err := storage.NewFileStorage(out, codec).Save(tree); err != nil {
			return err
		}
		ec.env.Log.V(1).Info("exported test tree", "file", out, "cases", tree.Count())
		return nil
	}
	return codec.Encode(ec.env.Out, storage.FromNode(tree))
}
