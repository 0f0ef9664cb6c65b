package ui

import (
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows a spinner while test files are being loaded
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new spinner writing to w. The number of files is
// not known up front, so it counts instead of filling.
func NewProgressBar(w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString("Discovering tests")),
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	return &ProgressBar{bar: bar}
}

// Increment records one loaded file
func (p *ProgressBar) Increment() {
	p.bar.Add(1)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
