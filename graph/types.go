package graph

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key is the hashed form of a node id used to index the node table.
type Key uint64

// KeyOf hashes id.
func KeyOf(id string) Key {
	return Key(xxhash.Sum64String(id))
}

// NodeType classifies ontology nodes.
type NodeType int

const (
	NodeUndefined NodeType = iota
	NodeClass
	NodeInstance
	NodeLiteral
)

var nodeTypeNames = map[NodeType]string{
	NodeUndefined: "undefined",
	NodeClass:     "class",
	NodeInstance:  "instance",
	NodeLiteral:   "literal",
}

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// ParseNodeType accepts the names returned by String, case-insensitively.
// The empty string maps to NodeUndefined.
func ParseNodeType(s string) (NodeType, error) {
	if s == "" {
		return NodeUndefined, nil
	}
	for t, name := range nodeTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return NodeUndefined, fmt.Errorf("unknown node type %q", s)
}

// RelationType is the semantic kind of a relation.
type RelationType int

const (
	// RelationUndefined is a placeholder, replaced once a typed relation to
	// the same target is known.
	RelationUndefined RelationType = iota
	RelationSubclass
	RelationInstance
	RelationProperty
)

var relationTypeNames = map[RelationType]string{
	RelationUndefined: "undefined",
	RelationSubclass:  "subclass",
	RelationInstance:  "instance",
	RelationProperty:  "property",
}

func (t RelationType) String() string {
	if s, ok := relationTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("RelationType(%d)", int(t))
}

// ParseRelationType accepts the names returned by String, case-insensitively.
// The empty string maps to RelationUndefined.
func ParseRelationType(s string) (RelationType, error) {
	if s == "" {
		return RelationUndefined, nil
	}
	for t, name := range relationTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return RelationUndefined, fmt.Errorf("unknown relation type %q", s)
}
