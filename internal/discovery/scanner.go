package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
	pattern  string
	log      logr.Logger
}

// NewScanner creates a new Scanner matching file names against pattern and
// skipping the given directory names
func NewScanner(pattern string, skipDirs []string, log logr.Logger) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, pattern: pattern, log: log}
}

// Scan finds all test files under root. Files come back in walk order:
// entries of a directory in lexical order, descending into a subdirectory
// when it is reached.
func (s *Scanner) Scan(root string) ([]string, error) {
	var testfiles []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under the root as given
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve test path %s: %w", root, err)
	}

	err = filepath.WalkDir(walkRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == walkRoot {
				return nil
			}
			name := d.Name()
			// The go tool ignores hidden and underscore directories
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				s.log.V(1).Info("skipping directory", "dir", path)
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				s.log.V(1).Info("skipping directory", "dir", path)
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}

		matched, err := filepath.Match(s.pattern, d.Name())
		if err != nil {
			return fmt.Errorf("invalid test file pattern %q: %w", s.pattern, err)
		}
		if matched {
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return err
			}
			testfiles = append(testfiles, filepath.Join(root, rel))
		}

		return nil
	})

	return testfiles, err
}
