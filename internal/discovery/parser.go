package discovery

import (
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"tlist/internal/domain"
)

const (
	testingImport = "testing"
	suiteImport   = "github.com/stretchr/testify/suite"
)

// Decl is a test function or a candidate suite method found in a file
type Decl struct {
	Name     string
	Receiver string // Receiver type name for methods, empty for functions
	Kind     domain.Kind
	Line     int
}

// TypeDecl is a struct type declared in a test file
type TypeDecl struct {
	Name   string
	Embeds []string // Locally declared types embedded in the struct
	Suite  bool     // Embeds testify's suite.Suite directly
}

// File is the parsed test content of a single Go source file
type File struct {
	Path    string
	Package string
	Decls   []Decl // In declaration order
	Types   []TypeDecl
}

// Parser parses test files to extract test cases
type Parser struct {
	fset *token.FileSet
}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{fset: token.NewFileSet()}
}

// ParseFile parses a Go test file and collects its test functions, suite
// methods and struct types
func (p *Parser) ParseFile(filePath string) (*File, error) {
	f, err := parser.ParseFile(p.fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	testingName, testingDot := importName(f, testingImport, "testing")
	suiteName, suiteDot := importName(f, suiteImport, "suite")

	examples := make(map[string]bool)
	for _, ex := range doc.Examples(f) {
		if ex.Output != "" || ex.EmptyOutput {
			examples["Example"+ex.Name] = true
		}
	}

	file := &File{Path: filePath, Package: f.Name.Name}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			line := p.fset.Position(d.Pos()).Line
			if d.Recv != nil {
				recv := receiverName(d.Recv)
				// testify runs every method matching ^Test, lower case included
				if recv != "" && strings.HasPrefix(d.Name.Name, "Test") && d.Type.Params.NumFields() == 0 {
					file.Decls = append(file.Decls, Decl{Name: d.Name.Name, Receiver: recv, Kind: domain.KindTest, Line: line})
				}
				continue
			}
			if kind, ok := testKind(d, testingName, testingDot, examples); ok {
				file.Decls = append(file.Decls, Decl{Name: d.Name.Name, Kind: kind, Line: line})
			}
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				file.Types = append(file.Types, structDecl(ts.Name.Name, st, suiteName, suiteDot))
			}
		}
	}

	return file, nil
}

// testKind reports which kind of test a top-level function is, if any
func testKind(fn *ast.FuncDecl, testingName string, testingDot bool, examples map[string]bool) (domain.Kind, bool) {
	name := fn.Name.Name
	if fn.Type.TypeParams.NumFields() > 0 || fn.Type.Results.NumFields() > 0 {
		return "", false
	}

	switch {
	case name == "TestMain":
		return "", false
	case isTestName(name, "Test"):
		return domain.KindTest, takesTesting(fn, "T", testingName, testingDot)
	case isTestName(name, "Benchmark"):
		return domain.KindBenchmark, takesTesting(fn, "B", testingName, testingDot)
	case isTestName(name, "Fuzz"):
		return domain.KindFuzz, takesTesting(fn, "F", testingName, testingDot)
	case isTestName(name, "Example"):
		return domain.KindExample, fn.Type.Params.NumFields() == 0 && examples[name]
	}
	return "", false
}

// takesTesting reports whether fn has the single parameter *testing.<typ>
func takesTesting(fn *ast.FuncDecl, typ, testingName string, testingDot bool) bool {
	params := fn.Type.Params
	if params.NumFields() != 1 {
		return false
	}
	star, ok := params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	switch x := star.X.(type) {
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		return ok && testingName != "" && pkg.Name == testingName && x.Sel.Name == typ
	case *ast.Ident:
		return testingDot && x.Name == typ
	}
	return false
}

// isTestName reports whether name is prefix followed by nothing or by a
// rune that is not lower case, the rule go test applies
func isTestName(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	if len(name) == len(prefix) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name[len(prefix):])
	return !unicode.IsLower(r)
}

// importName returns the name a file uses for the import path, and whether
// it is dot-imported. The name is empty when the path is not imported.
func importName(f *ast.File, path, defaultName string) (string, bool) {
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != path {
			continue
		}
		if imp.Name == nil {
			return defaultName, false
		}
		if imp.Name.Name == "." {
			return "", true
		}
		return imp.Name.Name, false
	}
	return "", false
}

func receiverName(recv *ast.FieldList) string {
	if recv.NumFields() != 1 {
		return ""
	}
	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	// Generic receivers, e.g. (s *Suite[T])
	switch x := expr.(type) {
	case *ast.IndexExpr:
		expr = x.X
	case *ast.IndexListExpr:
		expr = x.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func structDecl(name string, st *ast.StructType, suiteName string, suiteDot bool) TypeDecl {
	td := TypeDecl{Name: name}
	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		expr := field.Type
		if star, ok := expr.(*ast.StarExpr); ok {
			expr = star.X
		}
		switch x := expr.(type) {
		case *ast.SelectorExpr:
			if pkg, ok := x.X.(*ast.Ident); ok && suiteName != "" && pkg.Name == suiteName && x.Sel.Name == "Suite" {
				td.Suite = true
			}
		case *ast.Ident:
			if suiteDot && x.Name == "Suite" {
				td.Suite = true
				continue
			}
			td.Embeds = append(td.Embeds, x.Name)
		}
	}
	return td
}
