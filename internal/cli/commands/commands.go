package commands

import (
	"github.com/spf13/cobra"

	"tlist/internal/cli"
	"tlist/internal/config"
	"tlist/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Env    *Env
	List   *ListCommand
	Browse *BrowseCommand
	Export *ExportCommand
	Stats  *StatsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(env *Env) *Commands {
	return &Commands{
		Env:    env,
		List:   NewListCommand(env),
		Browse: NewBrowseCommand(env, ui.NewBrowser()),
		Export: NewExportCommand(env),
		Stats:  NewStatsCommand(env),
	}
}

// Register registers all commands with cobra. The root command itself lists
// tests, so running the binary without arguments prints every identifier.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = c.List.Execute
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		return c.Env.Configure(flags.ToConfigFlags())
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test discovery should start")
	pf.StringVar(&flags.Pattern, "pattern", "", "Glob matched against file names to find test files (default \""+config.DefaultPattern+"\")")
	pf.StringVar(&flags.Kinds, "kinds", config.DefaultKinds, "Comma separated test kinds to collect: test, benchmark, fuzz, example")
	pf.BoolVar(&flags.Qualify, "qualify", false, "Prefix identifiers with the module path from go.mod")
	pf.BoolVar(&flags.Progress, "progress", false, "Show a discovery spinner on stderr")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log discovery details to stderr")
	rootCmd.Flags().BoolVar(&flags.MarkFailed, "mark-failed", false, "Highlight entries standing in for test files that failed to load")
	rootCmd.Flags().StringVar(&flags.From, "from", "", "List a tree previously written by export (.json, .yaml or .yml) instead of scanning")

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Discover Go tests under the test path and print one identifier per line, depth-first",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVar(&flags.MarkFailed, "mark-failed", false, "Highlight entries standing in for test files that failed to load")
	listCmd.Flags().StringVar(&flags.From, "from", "", "List a tree previously written by export (.json, .yaml or .yml) instead of scanning")
	rootCmd.AddCommand(listCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse discovered tests interactively",
		Long:  "Display the discovered suite tree in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Browse.Execute,
	}
	rootCmd.AddCommand(browseCmd)

	// Export command
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the discovered suite tree",
		Long:  "Write the discovered suite tree as a JSON or YAML document",
		Args:  cobra.NoArgs,
		RunE:  c.Export.Execute,
	}
	exportCmd.Flags().StringVar(&flags.Format, "format", config.DefaultExportFormat, "Document format: json or yaml")
	exportCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Count discovered tests per package",
		Long:  "Print a table of test files and test cases per package without running them",
		Args:  cobra.NoArgs,
		RunE:  c.Stats.Execute,
	}
	rootCmd.AddCommand(statsCmd)
}
