// Package importgraph links per-file plan.ImportGraph values into a single
// directed graph of source files and detects import cycles.
//
// The adjacency-list shape is grounded on keystorm's project/graph MemGraph
// (outEdges/inEdges keyed by node), generalized from file/module/package/test
// node kinds to bare source-file paths, and from MemGraph's BFS FindPath to
// an iterative, explicit-stack DFS for cycle detection — recursion depth on
// a large workspace's import graph is not bounded in advance.
package importgraph
