// Package ingest decodes construction feeds: streams of add-node, add-alias
// and add-relation events (plus selection events) applied to a graph in
// order. It does not parse ontologies; whatever front end reads one emits
// these events.
package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TFMV/ontograph/graph"
)

// Event operations.
const (
	OpNode     = "node"
	OpAlias    = "alias"
	OpRelation = "relation"
	OpSelect   = "select"
	OpDeselect = "deselect"
)

// ErrUnknownOp is returned for an event whose op is not recognised.
var ErrUnknownOp = errors.New("ingest: unknown event op")

// Event is one entry of a construction feed.
//
//	{"op":"node","id":"dog","label":"Dog","type":"class","near":"animal"}
//	{"op":"alias","alias":"canis","id":"dog"}
//	{"op":"relation","from":"dog","to":"animal","type":"subclass","label":"subClassOf"}
//	{"op":"select","id":"dog"}
type Event struct {
	Op    string `json:"op" yaml:"op"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Near  string `json:"near,omitempty" yaml:"near,omitempty"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	To    string `json:"to,omitempty" yaml:"to,omitempty"`
}

// Apply performs ev on g.
func Apply(g *graph.Graph, ev Event) error {
	switch strings.ToLower(ev.Op) {
	case OpNode:
		typ, err := graph.ParseNodeType(ev.Type)
		if err != nil {
			return err
		}
		var near *graph.Node
		if ev.Near != "" {
			if near, err = g.GetNode(ev.Near); err != nil {
				return fmt.Errorf("neighbour of %q: %w", ev.ID, err)
			}
		}
		label := ev.Label
		if label == "" {
			label = ev.ID
		}
		_, err = g.AddNode(ev.ID, label, near, typ)
		return err

	case OpAlias:
		return g.AddAlias(ev.Alias, ev.ID)

	case OpRelation:
		typ, err := graph.ParseRelationType(ev.Type)
		if err != nil {
			return err
		}
		_, err = g.AddEdgeByID(ev.From, ev.To, typ, ev.Label)
		return err

	case OpSelect, OpDeselect:
		n, err := g.GetNode(ev.ID)
		if err != nil {
			return err
		}
		if strings.EqualFold(ev.Op, OpSelect) {
			g.Select(n)
		} else {
			g.Deselect(n)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, ev.Op)
	}
}

// Processor defines the interface that all feed decoders must implement
type Processor interface {
	// Process applies every event read from r to g and returns how many were applied
	Process(r io.Reader, g *graph.Graph) (int, error)

	// GetName returns the name of the processor
	GetName() string
}

// JSONLinesProcessor reads one JSON event per line. Blank lines and lines
// starting with '#' are skipped.
type JSONLinesProcessor struct{}

// GetName returns the name of the processor
func (p *JSONLinesProcessor) GetName() string {
	return "JSON Lines Processor"
}

// Process applies the events in order and stops at the first failure.
func (p *JSONLinesProcessor) Process(r io.Reader, g *graph.Graph) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	applied, line := 0, 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return applied, fmt.Errorf("line %d: error parsing JSON: %w", line, err)
		}
		if err := Apply(g, ev); err != nil {
			return applied, fmt.Errorf("line %d: %w", line, err)
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("reading feed: %w", err)
	}
	return applied, nil
}

// YAMLProcessor reads YAML documents, each a sequence of events.
type YAMLProcessor struct{}

// GetName returns the name of the processor
func (p *YAMLProcessor) GetName() string {
	return "YAML Processor"
}

// Process applies the events of every document in order.
func (p *YAMLProcessor) Process(r io.Reader, g *graph.Graph) (int, error) {
	dec := yaml.NewDecoder(r)

	applied := 0
	for doc := 1; ; doc++ {
		var events []Event
		err := dec.Decode(&events)
		if errors.Is(err, io.EOF) {
			return applied, nil
		}
		if err != nil {
			return applied, fmt.Errorf("document %d: error parsing YAML: %w", doc, err)
		}
		for i, ev := range events {
			if err := Apply(g, ev); err != nil {
				return applied, fmt.Errorf("document %d, event %d: %w", doc, i+1, err)
			}
			applied++
		}
	}
}

// GetProcessor returns the appropriate processor for the given format
func GetProcessor(format string) (Processor, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "jsonl", "ndjson", "json":
		return &JSONLinesProcessor{}, nil
	case "yaml", "yml":
		return &YAMLProcessor{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
