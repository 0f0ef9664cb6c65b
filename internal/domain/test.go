package domain

// Kind is the flavour of a discovered test function
type Kind string

const (
	KindTest      Kind = "test"
	KindBenchmark Kind = "benchmark"
	KindFuzz      Kind = "fuzz"
	KindExample   Kind = "example"
)

// Kinds lists every known kind in the order they are reported
var Kinds = []Kind{KindTest, KindBenchmark, KindFuzz, KindExample}

// ParseKind returns the Kind named by s
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Case is a single discovered test, the leaf of a suite tree
type Case struct {
	ID   string // Fully qualified identifier, e.g. pkg.example_test.TestExample
	Name string // Function or method name
	Kind Kind
	File string // Path to the file declaring the test
	Line int
	Err  error // Set on placeholder cases standing in for a file that failed to load
}

// Failed reports whether the case is a placeholder for a load failure
func (c *Case) Failed() bool {
	return c.Err != nil
}

func (*Case) isNode() {}
