package ui

import "tlist/internal/domain"

// Viewer displays a suite tree interactively
type Viewer interface {
	View(root *domain.Suite) error
}
