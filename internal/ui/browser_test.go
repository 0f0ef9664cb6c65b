package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlist/internal/domain"
)

func TestBuildTree(t *testing.T) {
	root := sampleTree()
	node := BuildTree(root)

	assert.Same(t, root, node.GetReference())
	assert.True(t, node.IsExpanded())
	require.Len(t, node.GetChildren(), 2)

	file := node.GetChildren()[0]
	assert.Equal(t, "a_test.go [gray](2)", file.GetText())
	assert.False(t, file.IsExpanded())
	require.Len(t, file.GetChildren(), 2)
	assert.Equal(t, "TestOne", file.GetChildren()[0].GetText())

	pkg := node.GetChildren()[1]
	assert.Equal(t, "pkg [gray](2)", pkg.GetText())
	suite := pkg.GetChildren()[0].GetChildren()[0]
	assert.Equal(t, "BSuite [gray](1)", suite.GetText())
}

func TestFormatDetails(t *testing.T) {
	t.Run("case", func(t *testing.T) {
		text := FormatDetails(&domain.Case{ID: "a_test.TestOne", Kind: domain.KindTest, File: "a_test.go", Line: 12})
		assert.Contains(t, text, "a_test.TestOne")
		assert.Contains(t, text, "a_test.go:12")
	})

	t.Run("failed case", func(t *testing.T) {
		text := FormatDetails(&domain.Case{ID: "discovery.FailedTest.x_test", File: "x_test.go", Err: errors.New("bad syntax")})
		assert.Contains(t, text, "Load error")
		assert.Contains(t, text, "bad syntax")
	})

	t.Run("suite", func(t *testing.T) {
		text := FormatDetails(sampleTree())
		assert.Contains(t, text, "Cases:[white] 4")
	})
}
