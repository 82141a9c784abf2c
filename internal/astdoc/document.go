package astdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Node types emitted by the AST builder.
const (
	TypeRoot       = "root"
	TypeClass      = "class"
	TypeFields     = "fields"
	TypeField      = "field"
	TypeMethods    = "methods"
	TypeMethod     = "method"
	TypeSubclasses = "subclasses"
	TypeStatement  = "statement"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("empty document")
)

// documentNamespace scopes content-derived document ids.
var documentNamespace = uuid.MustParse("6f1c3a52-2f0e-4b7a-9d55-2c8e1b4f7a10")

// Comments the generator writes when it has nothing to say.
var sentinelComments = map[string]bool{
	"No comment available": true,
	"No comment generated": true,
}

// Record is one node of the AST document as delivered by the analysis service.
type Record struct {
	Type     string    `json:"type" yaml:"type"`
	Name     string    `json:"name" yaml:"name"`
	Comment  string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Children []*Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is a decoded AST document plus the identity of the submission it
// came from.
type Document struct {
	ID   string
	Root *Record
}

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks a decoder from the file extension. Unknown extensions
// are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses raw bytes into a Document. The id is derived from the
// content so identical submissions share an identity.
func Decode(data []byte, format Format) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	var root Record
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("decode json document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("decode yaml document: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	return New(&root)
}

// New wraps a record tree into a Document with a content-derived id.
func New(root *Record) (*Document, error) {
	if root == nil {
		return nil, ErrEmptyDocument
	}
	id, err := ContentID(root)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Root: root}, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	doc, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return doc, nil
}

// ContentID returns a name-based UUID over the canonical JSON encoding of
// the record tree.
func ContentID(root *Record) (string, error) {
	canonical, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("encode document for identity: %w", err)
	}
	return uuid.NewSHA1(documentNamespace, canonical).String(), nil
}

// HasComment reports whether a comment is worth showing an indicator for.
func HasComment(comment string) bool {
	c := strings.TrimSpace(comment)
	return c != "" && !sentinelComments[c]
}

// ClassNames lists every class name in the tree in order of first appearance.
func ClassNames(root *Record) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(r *Record)
	walk = func(r *Record) {
		if r == nil {
			return
		}
		if r.Type == TypeClass && !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
		for _, child := range r.Children {
			walk(child)
		}
	}
	walk(root)
	return names
}
