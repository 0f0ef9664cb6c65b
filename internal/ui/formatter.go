package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"tlist/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out        io.Writer
	markFailed bool
	failed     *color.Color
}

// NewFormatter creates a new Formatter writing to out. With markFailed set,
// placeholder cases for files that failed to load are highlighted.
func NewFormatter(out io.Writer, markFailed bool) *Formatter {
	return &Formatter{
		out:        out,
		markFailed: markFailed,
		failed:     color.New(color.FgRed),
	}
}

// PrintSuite prints the identifier of every case reachable from node, one
// per line, depth-first in child order
func (f *Formatter) PrintSuite(node domain.Node) error {
	switch n := node.(type) {
	case *domain.Suite:
		for _, child := range n.Children {
			if err := f.PrintSuite(child); err != nil {
				return err
			}
		}
		return nil
	case *domain.Case:
		return f.printCase(n)
	}
	return nil
}

func (f *Formatter) printCase(c *domain.Case) error {
	if f.markFailed && c.Failed() {
		_, err := f.failed.Fprintf(f.out, "%s (load failed: %v)\n", c.ID, c.Err)
		return err
	}
	_, err := fmt.Fprintln(f.out, c.ID)
	return err
}

// PackageStats holds the counts reported for one package
type PackageStats struct {
	Package string
	Files   int
	Cases   int
	Failed  int
}

// CollectStats returns per-package counts for packages that hold test files,
// in tree order
func CollectStats(root *domain.Suite) []PackageStats {
	var stats []PackageStats
	var visit func(s *domain.Suite)
	visit = func(s *domain.Suite) {
		row := PackageStats{Package: s.Name}
		if row.Package == "" {
			row.Package = "."
		}
		var nested []*domain.Suite
		for _, child := range s.Children {
			cs, ok := child.(*domain.Suite)
			if !ok {
				continue
			}
			if cs.Scope == domain.ScopePackage {
				nested = append(nested, cs)
				continue
			}
			row.Files++
			for _, c := range cs.Cases() {
				row.Cases++
				if c.Failed() {
					row.Failed++
				}
			}
		}
		if row.Files > 0 {
			stats = append(stats, row)
		}
		for _, n := range nested {
			visit(n)
		}
	}
	visit(root)
	return stats
}

// PrintStats prints a table of test files and cases per package
func (f *Formatter) PrintStats(root *domain.Suite) error {
	stats := CollectStats(root)

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Package", "Files", "Cases", "Load Failures"})

	var files, cases, failed int
	for _, s := range stats {
		t.AppendRow(table.Row{s.Package, s.Files, s.Cases, s.Failed})
		files += s.Files
		cases += s.Cases
		failed += s.Failed
	}
	t.AppendFooter(table.Row{"Total", files, cases, failed})
	t.Render()
	return nil
}
