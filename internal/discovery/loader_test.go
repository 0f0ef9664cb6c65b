package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlist/internal/domain"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func newTestLoader(opts Options) *Loader {
	return NewLoader(NewScanner("*_test.go", []string{"vendor", "testdata"}, logr.Discard()), NewParser(), opts, logr.Discard())
}

func ids(suite *domain.Suite) []string {
	var out []string
	for _, c := range suite.Cases() {
		out = append(out, c.ID)
	}
	return out
}

func singleTest(pkg, name string) string {
	return "package " + pkg + "\n\nimport \"testing\"\n\nfunc " + name + "(t *testing.T) {}\n"
}

type countingProgress struct{ n int }

func (p *countingProgress) Increment() { p.n++ }

func TestLoader_Discover(t *testing.T) {
	ctx := context.Background()

	t.Run("empty tree", func(t *testing.T) {
		tree, err := newTestLoader(Options{}).Discover(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, tree.Children)
		assert.Zero(t, tree.Count())
	})

	t.Run("single test", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"example_test.go": singleTest("example", "TestExample"),
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{"example_test.TestExample"}, ids(tree))
	})

	t.Run("files in lexical order", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"c_test.go": singleTest("x", "TestC"),
			"a_test.go": singleTest("x", "TestA"),
			"b_test.go": singleTest("x", "TestB"),
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{"a_test.TestA", "b_test.TestB", "c_test.TestC"}, ids(tree))
	})

	t.Run("nested packages use dotted paths", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"pkg/sub/deep_test.go": singleTest("sub", "TestDeep"),
			"pkg/top_test.go":      singleTest("pkg", "TestTop"),
			"root_test.go":         singleTest("root", "TestRoot"),
			"vendor/v/v_test.go":   singleTest("v", "TestVendored"),
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"pkg.sub.deep_test.TestDeep",
			"pkg.top_test.TestTop",
			"root_test.TestRoot",
		}, ids(tree))

		require.Len(t, tree.Children, 2)
		pkg, ok := tree.Children[0].(*domain.Suite)
		require.True(t, ok)
		assert.Equal(t, "pkg", pkg.Name)
		sub, ok := pkg.Children[0].(*domain.Suite)
		require.True(t, ok)
		assert.Equal(t, "pkg.sub", sub.Name)
	})

	t.Run("suite methods are grouped under their type", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"store/suite_test.go": `package store

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
}

func TestStoreSuite(t *testing.T) { suite.Run(t, new(StoreSuite)) }

func (s *StoreSuite) TestPut() {}

func (s *StoreSuite) TestGet() {}
`,
			"store/more_test.go": `package store

func (s *StoreSuite) TestDelete() {}

type helper struct{}

func (h helper) TestNotASuite() {}
`,
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"store.more_test.StoreSuite.TestDelete",
			"store.suite_test.TestStoreSuite",
			"store.suite_test.StoreSuite.TestPut",
			"store.suite_test.StoreSuite.TestGet",
		}, ids(tree))
	})

	t.Run("symlinked root lists the same tree", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a_test.go":     singleTest("a", "TestA"),
			"sub/b_test.go": singleTest("sub", "TestB"),
		})
		link := filepath.Join(t.TempDir(), "link")
		if err := os.Symlink(root, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		direct, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		linked, err := newTestLoader(Options{}).Discover(ctx, link)
		require.NoError(t, err)
		assert.Equal(t, []string{"a_test.TestA", "sub.b_test.TestB"}, ids(linked))
		assert.Equal(t, ids(direct), ids(linked))
	})

	t.Run("suite methods follow the testify prefix rule", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"s_test.go": `package s

import "github.com/stretchr/testify/suite"

type S struct {
	suite.Suite
}

func (s *S) Testlower() {}

func (s *S) TestUpper() {}
`,
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{"s_test.S.Testlower", "s_test.S.TestUpper"}, ids(tree))
	})

	t.Run("kinds", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"kinds_test.go": `package kinds

import "testing"

func TestA(t *testing.T) {}
func BenchmarkA(b *testing.B) {}
func FuzzA(f *testing.F) {}
`,
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{"kinds_test.TestA"}, ids(tree))

		tree, err = newTestLoader(Options{Kinds: []domain.Kind{domain.KindFuzz, domain.KindBenchmark}}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{"kinds_test.BenchmarkA", "kinds_test.FuzzA"}, ids(tree))
	})

	t.Run("broken file becomes a placeholder", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a_test.go":      singleTest("a", "TestA"),
			"broken_test.go": "package a\n\nfunc TestBroken(t *testing.T {\n",
		})
		tree, err := newTestLoader(Options{}).Discover(ctx, root)
		require.NoError(t, err)
		cases := tree.Cases()
		require.Len(t, cases, 2)
		assert.Equal(t, "discovery.FailedTest.broken_test", cases[1].ID)
		assert.True(t, cases[1].Failed())
		assert.False(t, cases[0].Failed())
	})

	t.Run("qualified identifiers", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"go.mod":            "module example.com/widgets\n\ngo 1.22\n",
			"gear/gear_test.go": singleTest("gear", "TestTurn"),
			"widget_test.go":    singleTest("widgets", "TestWidget"),
		})
		tree, err := newTestLoader(Options{Qualify: true}).Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"example.com/widgets.gear.gear_test.TestTurn",
			"example.com/widgets.widget_test.TestWidget",
		}, ids(tree))

		tree, err = newTestLoader(Options{Qualify: true}).Discover(ctx, filepath.Join(root, "gear"))
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com/widgets/gear.gear_test.TestTurn"}, ids(tree))
	})

	t.Run("idempotent", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a/a_test.go": singleTest("a", "TestA"),
			"b/b_test.go": singleTest("b", "TestB"),
			"c_test.go":   singleTest("c", "TestC"),
		})
		loader := newTestLoader(Options{})
		first, err := loader.Discover(ctx, root)
		require.NoError(t, err)
		second, err := loader.Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, strings.Join(ids(first), "\n"), strings.Join(ids(second), "\n"))
	})

	t.Run("progress is reported per file", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a_test.go": singleTest("a", "TestA"),
			"b_test.go": singleTest("a", "TestB"),
		})
		loader := newTestLoader(Options{})
		progress := &countingProgress{}
		loader.SetProgress(progress)
		_, err := loader.Discover(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, 2, progress.n)
	})

	t.Run("cancelled context", func(t *testing.T) {
		root := writeTree(t, map[string]string{"a_test.go": singleTest("a", "TestA")})
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := newTestLoader(Options{}).Discover(cctx, root)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := newTestLoader(Options{}).Discover(ctx, filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}

func TestResolveSuites(t *testing.T) {
	suites := resolveSuites([]TypeDecl{
		{Name: "C", Embeds: []string{"B"}},
		{Name: "B", Embeds: []string{"A"}},
		{Name: "A", Suite: true},
		{Name: "D", Embeds: []string{"helper"}},
	})
	assert.True(t, suites["A"])
	assert.True(t, suites["B"])
	assert.True(t, suites["C"])
	assert.False(t, suites["D"])
}
