package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tlist/internal/domain"
)

// Storage persists and loads a discovered suite tree
type Storage interface {
	Save(root *domain.Suite) error
	Load() (*domain.Suite, error)
}

// Codec encodes and decodes Records in one document format
type Codec interface {
	Encode(w io.Writer, rec *Record) error
	Decode(r io.Reader) (*Record, error)
}

// Record is the serialised form of a suite or case
type Record struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Scope    string    `json:"scope,omitempty" yaml:"scope,omitempty"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"`
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Kind     string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	File     string    `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int       `json:"line,omitempty" yaml:"line,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
	Children []*Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsCase reports whether the record holds a case rather than a suite
func (r *Record) IsCase() bool {
	return r.ID != ""
}

// FromNode converts a tree into its record form
func FromNode(node domain.Node) *Record {
	switch n := node.(type) {
	case *domain.Suite:
		rec := &Record{Name: n.Name, Scope: string(n.Scope), Path: n.Path}
		for _, child := range n.Children {
			rec.Children = append(rec.Children, FromNode(child))
		}
		return rec
	case *domain.Case:
		rec := &Record{ID: n.ID, Name: n.Name, Kind: string(n.Kind), File: n.File, Line: n.Line}
		if n.Err != nil {
			rec.Error = n.Err.Error()
		}
		return rec
	}
	return &Record{}
}

// ToNode converts a record back into a tree
func (r *Record) ToNode() domain.Node {
	if r.IsCase() {
		c := &domain.Case{ID: r.ID, Name: r.Name, Kind: domain.Kind(r.Kind), File: r.File, Line: r.Line}
		if r.Error != "" {
			c.Err = errors.New(r.Error)
		}
		return c
	}
	s := domain.NewSuite(r.Name, r.Path, domain.Scope(r.Scope))
	for _, child := range r.Children {
		s.Add(child.ToNode())
	}
	return s
}

// FileStorage stores a tree in a single file using a Codec
type FileStorage struct {
	path  string
	codec Codec
}

// NewFileStorage returns a Storage that reads/writes path with codec
func NewFileStorage(path string, codec Codec) *FileStorage {
	return &FileStorage{path: path, codec: codec}
}

// Save writes the tree to the storage file, creating its directory
func (s *FileStorage) Save(root *domain.Suite) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := s.codec.Encode(f, FromNode(root)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a tree back from the storage file
func (s *FileStorage) Load() (*domain.Suite, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("read tree file: %w", err)
	}
	defer f.Close()

	rec, err := s.codec.Decode(f)
	if err != nil {
		return nil, err
	}
	if rec.IsCase() {
		return nil, fmt.Errorf("parse tree: top level entry is a case, not a suite")
	}
	return rec.ToNode().(*domain.Suite), nil
}

// CodecForPath picks the codec from a file extension, defaulting to JSON
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	}
	return JSONCodec{}
}

// CodecFor returns the codec for a format name
func CodecFor(format string) (Codec, error) {
	switch format {
	case "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q (want json or yaml)", format)
}
