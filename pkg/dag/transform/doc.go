// Package transform prepares a [dag.DAG] for layered drawing.
//
// # Overview
//
// The hierarchical layout follows the classic Sugiyama phases. This package
// implements the graph-rewriting ones:
//
//  1. [BreakCycles] reverses back edges so the graph is acyclic. A family
//     tree should never contain a cycle, but user input can.
//  2. [AssignLayers] gives each node its rank: longest path from a source.
//  3. [Subdivide] splits edges spanning several ranks with virtual nodes so
//     every edge joins consecutive ranks.
//
// Crossing reduction lives in the [ordering] package and coordinate
// assignment in [layout].
//
// # Determinism
//
// Every function iterates in insertion order, so the same input always yields
// the same ranks and the same virtual node IDs.
//
// [dag.DAG]: github.com/matzehuels/kintree/pkg/dag.DAG
// [ordering]: github.com/matzehuels/kintree/pkg/ordering
// [layout]: github.com/matzehuels/kintree/pkg/layout
package transform
