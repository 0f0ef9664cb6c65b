package commands

import (
	"context"
	"io"

	"github.com/go-logr/logr"

	"tlist/internal/config"
	"tlist/internal/discovery"
	"tlist/internal/domain"
	"tlist/internal/logging"
	"tlist/internal/ui"
)

// Env carries what commands share once flags have been parsed
type Env struct {
	Config *config.Config
	Out    io.Writer
	ErrOut io.Writer
	Log    logr.Logger

	// Discoverer overrides the loader built from the config
	Discoverer discovery.Discoverer
}

// NewEnv creates an Env writing results to out and diagnostics to errOut
func NewEnv(cfg *config.Config, out, errOut io.Writer) *Env {
	return &Env{
		Config: cfg,
		Out:    out,
		ErrOut: errOut,
		Log:    logr.Discard(),
	}
}

// Configure applies parsed flags to the config and sets up logging
func (e *Env) Configure(flags config.Flags) error {
	if err := e.Config.Apply(flags); err != nil {
		return err
	}
	e.Log = logging.New(e.ErrOut, flags.Verbose)
	return nil
}

// Discover builds the suite tree for the configured test path
func (e *Env) Discover(ctx context.Context) (*domain.Suite, error) {
	d := e.Discoverer
	if d == nil {
		loader := e.newLoader()
		if e.Config.Flags.Progress {
			progress := ui.NewProgressBar(e.ErrOut)
			defer progress.Finish()
			loader.SetProgress(progress)
		}
		d = loader
	}
	return d.Discover(ctx, e.Config.GetTestPath())
}

func (e *Env) newLoader() *discovery.Loader {
	cfg := e.Config
	scanner := discovery.NewScanner(cfg.Pattern, cfg.PathsToIgnore, e.Log)
	return discovery.NewLoader(scanner, discovery.NewParser(), discovery.Options{
		Kinds:   cfg.Kinds,
		Qualify: cfg.Flags.Qualify,
	}, e.Log)
}
