// Package render turns graph snapshots into export formats.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TFMV/ontograph/models"
)

// DefaultGraphVizFile is where SaveGraphViz writes when no path is given.
const DefaultGraphVizFile = "ontology.dot"

// Renderer serialises a snapshot into one export format.
type Renderer interface {
	Render(s *models.Snapshot) ([]byte, error)
	// Name is shown in CLI output and logs.
	Name() string
	Description() string
}

// GetRenderer maps a format name from the CLI or config to its renderer.
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "dot", "graphviz":
		return &DOTRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// JSONRenderer writes the full snapshot, physics state included.
type JSONRenderer struct{}

// Name returns the name of the JSON renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description says what the JSON export contains
func (r *JSONRenderer) Description() string {
	return "Renders node positions, springs and selection state as JSON"
}

// Render marshals the snapshot with two-space indentation
func (r *JSONRenderer) Render(s *models.Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DOTRenderer writes the GraphViz export read by external ontology tooling.
type DOTRenderer struct{}

// Name returns the name of the DOT renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description says what the DOT export contains
func (r *DOTRenderer) Description() string {
	return "Renders the ontology as a strict Graphviz digraph, edges first then nodes"
}

// Render writes every edge, then every node, inside a strict digraph.
func (r *DOTRenderer) Render(s *models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("strict digraph ontology {\n")

	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "\t%s -> %s [label=%s];\n", quote(e.Source), quote(e.Target), quote(e.Label))
	}

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "\t%s [label=%s];\n", quote(n.ID), quote(n.Label))
	}

	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// SaveGraphViz writes the DOT export of s to path, or to DefaultGraphVizFile
// when path is empty.
func SaveGraphViz(s *models.Snapshot, path string) error {
	if path == "" {
		path = DefaultGraphVizFile
	}
	out, err := (&DOTRenderer{}).Render(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote makes s a DOT double-quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
