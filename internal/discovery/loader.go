package discovery

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/mod/modfile"

	"tlist/internal/domain"
)

// FailedTestPrefix prefixes the identifier of placeholder cases created for
// files that could not be loaded
const FailedTestPrefix = "discovery.FailedTest."

// Discoverer builds the suite tree for a directory
type Discoverer interface {
	Discover(ctx context.Context, root string) (*domain.Suite, error)
}

// Progress is notified once per loaded file
type Progress interface {
	Increment()
}

// Options controls what the Loader collects
type Options struct {
	Kinds   []domain.Kind
	Qualify bool // Prefix identifiers with the module path from go.mod
}

// Loader discovers Go test files under a directory and loads their tests
// into a suite tree mirroring the directory layout
type Loader struct {
	scanner  *Scanner
	parser   *Parser
	opts     Options
	log      logr.Logger
	progress Progress
}

// NewLoader creates a new Loader
func NewLoader(scanner *Scanner, parser *Parser, opts Options, log logr.Logger) *Loader {
	if len(opts.Kinds) == 0 {
		opts.Kinds = []domain.Kind{domain.KindTest}
	}
	return &Loader{
		scanner: scanner,
		parser:  parser,
		opts:    opts,
		log:     log,
	}
}

// SetProgress sets the progress reporter for the loader
func (l *Loader) SetProgress(progress Progress) {
	l.progress = progress
}

type loadedFile struct {
	path   string
	rel    string
	module string
	file   *File
	err    error
}

// Discover scans root and returns the suite tree of every test found. A file
// that fails to parse is represented by a single placeholder case.
func (l *Loader) Discover(ctx context.Context, root string) (*domain.Suite, error) {
	root = filepath.Clean(root)
	paths, err := l.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if l.opts.Qualify {
		prefix, err = modulePrefix(root)
		if err != nil {
			return nil, err
		}
	}

	// Parse everything up front; suite types may be declared in a different
	// file of the package than their methods.
	files := make([]*loadedFile, 0, len(paths))
	suiteTypes := make(map[string][]TypeDecl)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		lf := &loadedFile{path: p, rel: rel, module: moduleName(rel)}
		lf.file, lf.err = l.parser.ParseFile(p)
		if lf.err != nil {
			l.log.V(1).Info("failed to load test file", "file", p, "error", lf.err.Error())
		} else {
			dir := filepath.Dir(rel)
			suiteTypes[dir] = append(suiteTypes[dir], lf.file.Types...)
		}
		files = append(files, lf)

		if l.progress != nil {
			l.progress.Increment()
		}
	}

	suites := make(map[string]map[string]bool, len(suiteTypes))
	for dir, types := range suiteTypes {
		suites[dir] = resolveSuites(types)
	}

	tree := newTreeBuilder(root)
	for _, lf := range files {
		pkg := tree.pkg(filepath.Dir(lf.rel))
		pkg.Add(l.fileSuite(lf, prefix, suites[filepath.Dir(lf.rel)]))
	}

	l.log.V(1).Info("discovery finished", "root", root, "files", len(files), "cases", tree.root.Count())
	return tree.root, nil
}

func (l *Loader) fileSuite(lf *loadedFile, prefix string, suites map[string]bool) *domain.Suite {
	module := qualify(prefix, lf.module)
	fs := domain.NewSuite(module, lf.path, domain.ScopeFile)

	if lf.err != nil {
		fs.Add(&domain.Case{
			ID:   FailedTestPrefix + module,
			Name: lf.module,
			Kind: domain.KindTest,
			File: lf.path,
			Err:  lf.err,
		})
		return fs
	}

	wanted := make(map[domain.Kind]bool, len(l.opts.Kinds))
	for _, k := range l.opts.Kinds {
		wanted[k] = true
	}

	// One suite node per receiver type, placed where its first method appears
	typeSuites := make(map[string]*domain.Suite)
	for _, d := range lf.file.Decls {
		if !wanted[d.Kind] {
			continue
		}
		if d.Receiver == "" {
			fs.Add(&domain.Case{
				ID:   module + "." + d.Name,
				Name: d.Name,
				Kind: d.Kind,
				File: lf.path,
				Line: d.Line,
			})
			continue
		}
		if !suites[d.Receiver] {
			continue
		}
		ts, ok := typeSuites[d.Receiver]
		if !ok {
			ts = domain.NewSuite(module+"."+d.Receiver, lf.path, domain.ScopeType)
			typeSuites[d.Receiver] = ts
			fs.Add(ts)
		}
		ts.Add(&domain.Case{
			ID:   ts.Name + "." + d.Name,
			Name: d.Name,
			Kind: d.Kind,
			File: lf.path,
			Line: d.Line,
		})
	}
	return fs
}

// resolveSuites returns the set of type names that are testify suites,
// directly or by embedding another suite type of the same package
func resolveSuites(types []TypeDecl) map[string]bool {
	suites := make(map[string]bool)
	for _, t := range types {
		if t.Suite {
			suites[t.Name] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for _, t := range types {
			if suites[t.Name] {
				continue
			}
			for _, e := range t.Embeds {
				if suites[e] {
					suites[t.Name] = true
					changed = true
					break
				}
			}
		}
	}
	return suites
}

// treeBuilder creates package suites on demand. Files arrive in walk order,
// so creating a package suite on first sight keeps directory entries in
// lexical order.
type treeBuilder struct {
	root *domain.Suite
	pkgs map[string]*domain.Suite
}

func newTreeBuilder(root string) *treeBuilder {
	s := domain.NewSuite("", root, domain.ScopePackage)
	return &treeBuilder{root: s, pkgs: map[string]*domain.Suite{".": s}}
}

func (t *treeBuilder) pkg(dir string) *domain.Suite {
	if s, ok := t.pkgs[dir]; ok {
		return s
	}
	parent := t.pkg(filepath.Dir(dir))
	s := domain.NewSuite(dotted(dir), filepath.Join(t.root.Path, dir), domain.ScopePackage)
	parent.Add(s)
	t.pkgs[dir] = s
	return s
}

// moduleName turns a path relative to the top-level directory into a
// dotted module name, e.g. pkg/sub/example_test.go -> pkg.sub.example_test
func moduleName(rel string) string {
	return dotted(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

func dotted(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// modulePrefix returns the import path of root, read from the nearest go.mod
// at or above it
func modulePrefix(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("no module directive in %s", filepath.Join(dir, "go.mod"))
			}
			rel, err := filepath.Rel(dir, abs)
			if err != nil {
				return "", fmt.Errorf("resolve %s: %w", root, err)
			}
			return path.Join(modPath, filepath.ToSlash(rel)), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read go.mod: %w", err)
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("no go.mod found at or above %s", root)
		}
	}
}
