package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tlist/internal/domain"
)

// Browser displays a suite tree in an interactive TUI
type Browser struct {
	app *tview.Application
}

// NewBrowser creates a new Browser
func NewBrowser() *Browser {
	return &Browser{}
}

// View opens the tree view and blocks until the user exits
func (b *Browser) View(root *domain.Suite) error {
	b.app = tview.NewApplication()

	rootNode := BuildTree(root)
	tree := tview.NewTreeView().
		SetRoot(rootNode).
		SetCurrentNode(rootNode).
		SetGraphicsColor(tcell.ColorDarkCyan)
	tree.SetBorder(true).SetTitle(" Tests ")

	// Details pane (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	detailsView.SetBorder(true).SetTitle(" Details ")

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %d test case(s) | Use ↑↓ to navigate, Enter to expand/collapse, [yellow]q[white] or Ctrl+C to exit ", root.Count()))

	tree.SetChangedFunc(func(node *tview.TreeNode) {
		detailsView.SetText(FormatDetails(node.GetReference()))
	})
	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		if len(node.GetChildren()) > 0 {
			node.SetExpanded(!node.IsExpanded())
		}
	})
	detailsView.SetText(FormatDetails(root))

	tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			b.app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' || event.Rune() == 'Q' {
				b.app.Stop()
				return nil
			}
		}
		return event
	})

	// Tree on the left (1/2), details on the right (1/2)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(tree, 0, 1, true).
		AddItem(detailsView, 0, 1, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := b.app.SetRoot(mainLayout, true).SetFocus(tree).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// BuildTree converts a suite tree into tview nodes. Each node references
// the domain node it was built from.
func BuildTree(node domain.Node) *tview.TreeNode {
	switch n := node.(type) {
	case *domain.Suite:
		tn := tview.NewTreeNode(fmt.Sprintf("%s [gray](%d)", tview.Escape(lastSegment(n)), n.Count())).
			SetReference(n).
			SetSelectable(true).
			SetColor(suiteColor(n.Scope))
		for _, child := range n.Children {
			tn.AddChild(BuildTree(child))
		}
		// Files and deeper levels start collapsed
		tn.SetExpanded(n.Scope == domain.ScopePackage)
		return tn
	case *domain.Case:
		tn := tview.NewTreeNode(tview.Escape(n.Name)).
			SetReference(n).
			SetSelectable(true)
		if n.Failed() {
			tn.SetColor(tcell.ColorRed)
		} else {
			tn.SetColor(tcell.ColorYellow)
		}
		return tn
	}
	return tview.NewTreeNode("")
}

func suiteColor(scope domain.Scope) tcell.Color {
	switch scope {
	case domain.ScopeFile:
		return tcell.ColorWhite
	case domain.ScopeType:
		return tcell.ColorGreen
	}
	return tcell.ColorDarkCyan
}

// lastSegment returns the part of the suite name shown in the tree
func lastSegment(s *domain.Suite) string {
	switch s.Scope {
	case domain.ScopeFile:
		return filepath.Base(s.Path)
	case domain.ScopePackage:
		if s.Name == "" {
			return s.Path
		}
	}
	if i := strings.LastIndex(s.Name, "."); i >= 0 {
		return s.Name[i+1:]
	}
	return s.Name
}

// FormatDetails formats a tree reference for display using tview color tags
func FormatDetails(ref interface{}) string {
	var builder strings.Builder
	switch n := ref.(type) {
	case *domain.Suite:
		name := n.Name
		if name == "" {
			name = "."
		}
		fmt.Fprintf(&builder, "[cyan]%s:[white] %s\n", n.Scope, tview.Escape(name))
		fmt.Fprintf(&builder, "[cyan]Path:[white] %s\n", tview.Escape(n.Path))
		fmt.Fprintf(&builder, "[cyan]Cases:[white] %d\n", n.Count())
	case *domain.Case:
		if n.Failed() {
			fmt.Fprintf(&builder, "[red]✗ %s[white]\n\n", tview.Escape(n.ID))
		} else {
			fmt.Fprintf(&builder, "[yellow]%s[white]\n\n", tview.Escape(n.ID))
		}
		fmt.Fprintf(&builder, "[cyan]Kind:[white] %s\n", n.Kind)
		if n.Line > 0 {
			fmt.Fprintf(&builder, "[cyan]Location:[white] %s:%d\n", tview.Escape(n.File), n.Line)
		} else {
			fmt.Fprintf(&builder, "[cyan]File:[white] %s\n", tview.Escape(n.File))
		}
		if n.Failed() {
			fmt.Fprintf(&builder, "\n[yellow]Load error:[white]\n%s\n", tview.Escape(n.Err.Error()))
		}
	}
	return builder.String()
}
