package cli

import "tlist/internal/config"

// Flags holds command-line flags
type Flags struct {
	TestPath   string
	Pattern    string
	Kinds      string
	Qualify    bool
	MarkFailed bool
	Progress   bool
	Verbose    bool
	Format     string
	Output     string
	From       string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestPath:   f.TestPath,
		Pattern:    f.Pattern,
		Kinds:      f.Kinds,
		Qualify:    f.Qualify,
		MarkFailed: f.MarkFailed,
		Progress:   f.Progress,
		Verbose:    f.Verbose,
		Format:     f.Format,
		Output:     f.Output,
		From:       f.From,
	}
}
