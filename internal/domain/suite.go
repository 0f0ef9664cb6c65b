package domain

// Node is either a *Suite or a *Case.
type Node interface {
	isNode()
}

// Scope says what a suite was built from
type Scope string

const (
	ScopePackage Scope = "package" // A directory; the root suite is a package too
	ScopeFile    Scope = "file"
	ScopeType    Scope = "type" // A testify suite type
)

// Suite is an ordered container of cases and nested suites
type Suite struct {
	Name     string // Dotted package, module or suite type name; empty for the root
	Path     string // File or directory the suite was built from
	Scope    Scope
	Children []Node
}

// NewSuite creates an empty Suite
func NewSuite(name, path string, scope Scope) *Suite {
	return &Suite{Name: name, Path: path, Scope: scope}
}

// Add appends nodes to the suite in order
func (s *Suite) Add(nodes ...Node) {
	s.Children = append(s.Children, nodes...)
}

// Count returns the number of cases reachable from the suite
func (s *Suite) Count() int {
	n := 0
	Walk(s, func(*Case) error {
		n++
		return nil
	})
	return n
}

// Cases returns every reachable case in depth-first order
func (s *Suite) Cases() []*Case {
	var cases []*Case
	Walk(s, func(c *Case) error {
		cases = append(cases, c)
		return nil
	})
	return cases
}

func (*Suite) isNode() {}

// Walk calls fn for every case reachable from node, depth-first and in
// child order. It stops at the first error returned by fn.
func Walk(node Node, fn func(*Case) error) error {
	switch n := node.(type) {
	case *Suite:
		for _, child := range n.Children {
			if err := Walk(child, fn); err != nil {
				return err
			}
		}
	case *Case:
		return fn(n)
	}
	return nil
}
