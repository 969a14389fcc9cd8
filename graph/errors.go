package graph

import "errors"

var (
	// ErrNotFound indicates an id, alias or key that resolves to no node.
	ErrNotFound = errors.New("graph: node not found")
	// ErrKeyCollision indicates two distinct ids hashing to the same key.
	ErrKeyCollision = errors.New("graph: node key collision")
	// ErrNumericInstability indicates a NaN position: the simulation diverged.
	ErrNumericInstability = errors.New("graph: numeric instability")
)
