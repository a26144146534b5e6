package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension: .json, .yaml or
// .yml.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "%s: unknown extension (want .json, .yaml or .yml)", path)
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// ReadGraphFile reads and validates a document, choosing the encoding from
// the extension. Edges without an ID get one from [Graph.FillEdgeIDs].
func ReadGraphFile(path string) (Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Graph{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, format)
}

// ReadGraph decodes and validates a document from r.
func ReadGraph(r io.Reader, format Format) (Graph, error) {
	var g Graph
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&g); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&g); err != nil && err != io.EOF {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	default:
		return Graph{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	g.FillEdgeIDs()
	return g, nil
}

// UnmarshalGraph decodes a JSON document.
func UnmarshalGraph(data []byte) (Graph, error) {
	return ReadGraph(bytes.NewReader(data), FormatJSON)
}

// MarshalGraph encodes g as indented JSON.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph encodes g to w.
func WriteGraph(g Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// WriteGraphFile writes g to path, choosing the encoding from the extension.
func WriteGraphFile(g Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGraph(g, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Hash returns the SHA-256 of the JSON encoding of g. Two documents that
// encode identically, including node order and positions, share a hash.
func Hash(g Graph) string {
	data, err := json.Marshal(g)
	if err != nil {
		// Data holds a value JSON cannot encode; fall back to its printed form.
		data = fmt.Appendf(nil, "%#v", g)
	}
	return cache.Hash(data)
}
