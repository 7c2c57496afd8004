package importgraph

import (
	"sort"

	"github.com/dshills/refactorengine/internal/plan"
)

// Graph is the resolved import relationship between a set of files. Built
// once from a slice of per-file plan.ImportGraph values by Build; read-only
// thereafter.
type Graph struct {
	files    map[string]*plan.ImportGraph
	edges    map[string][]string // from -> resolved dependency files
	reverse  map[string][]string // to -> importing files
	order    []string            // stable file iteration order
	resolver *Resolver
}

// Build links graphs into a Graph, resolving every import against the set
// of known source files and recording unresolved specifiers as external
// dependencies on the importing file's metadata.
func Build(graphs []plan.ImportGraph, resolver *Resolver) *Graph {
	if resolver == nil {
		resolver = NewResolver()
	}

	g := &Graph{
		files:    make(map[string]*plan.ImportGraph, len(graphs)),
		edges:    make(map[string][]string),
		reverse:  make(map[string][]string),
		resolver: resolver,
	}

	for i := range graphs {
		ig := graphs[i]
		g.files[ig.SourceFile] = &ig
		g.order = append(g.order, ig.SourceFile)
	}
	sort.Strings(g.order)

	exists := func(p string) bool {
		_, ok := g.files[p]
		return ok
	}

	for _, sourceFile := range g.order {
		ig := g.files[sourceFile]
		language := ig.Metadata.Language
		for _, imp := range ig.Imports {
			var (
				resolved string
				ok       bool
			)
			if isRelative(imp.ModulePath) {
				resolved, ok = resolver.resolveRelative(sourceFile, imp.ModulePath, language, exists)
			} else {
				resolved, ok = resolver.resolveBare(imp.ModulePath, language, g.order)
			}
			if !ok {
				ig.Metadata.ExternalDependencies = appendUnique(ig.Metadata.ExternalDependencies, imp.ModulePath)
				continue
			}
			g.edges[sourceFile] = appendUnique(g.edges[sourceFile], resolved)
			g.reverse[resolved] = appendUnique(g.reverse[resolved], sourceFile)
		}
	}

	for file, importers := range g.reverse {
		if node, ok := g.files[file]; ok {
			sort.Strings(importers)
			node.Importers = importers
		}
	}

	cycles := g.FindCycles()
	for _, cycle := range cycles {
		for _, file := range cycle {
			if node, ok := g.files[file]; ok {
				node.Metadata.CircularDependencies = append(node.Metadata.CircularDependencies, cycle)
			}
		}
	}

	return g
}

func appendUnique(s []string, v string) []string {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}

// File returns the resolved ImportGraph for path, if known.
func (g *Graph) File(path string) (plan.ImportGraph, bool) {
	node, ok := g.files[path]
	if !ok {
		return plan.ImportGraph{}, false
	}
	return *node, true
}

// FileOrErr is File but returns ErrFileNotFound instead of a bool, for
// callers that treat a missing file as a hard failure.
func (g *Graph) FileOrErr(path string) (plan.ImportGraph, error) {
	ig, ok := g.File(path)
	if !ok {
		return plan.ImportGraph{}, ErrFileNotFound
	}
	return ig, nil
}

// Files returns every source file in the graph, sorted.
func (g *Graph) Files() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependencies returns the files that path imports, resolved within the graph.
func (g *Graph) Dependencies(path string) []string {
	return append([]string(nil), g.edges[path]...)
}

// Dependents returns the files that import path.
func (g *Graph) Dependents(path string) []string {
	return append([]string(nil), g.reverse[path]...)
}

// Resolve applies the graph's resolver policy to a single specifier without
// requiring it to already be recorded as an edge; used by the planner when
// it needs to know what an import would resolve to before committing an edit.
func (g *Graph) Resolve(fromFile, modulePath, language string) (string, bool) {
	exists := func(p string) bool {
		_, ok := g.files[p]
		return ok
	}
	if isRelative(modulePath) {
		return g.resolver.resolveRelative(fromFile, modulePath, language, exists)
	}
	return g.resolver.resolveBare(modulePath, language, g.order)
}

type color int

const (
	white color = iota
	gray
	black
)

type frame struct {
	node string
	idx  int
}

// FindCycles detects import cycles via iterative DFS over an explicit
// stack, coloring nodes white/gray/black, per spec.md's cycle-detection
// rule. Each returned cycle is an ordered file list starting from the
// back-edge's target.
func (g *Graph) FindCycles() [][]string {
	colors := make(map[string]color, len(g.order))
	var cycles [][]string

	for _, start := range g.order {
		if colors[start] != white {
			continue
		}
		g.dfsFrom(start, colors, &cycles)
	}
	return cycles
}

func (g *Graph) dfsFrom(start string, colors map[string]color, cycles *[][]string) {
	stack := []frame{{node: start}}
	path := []string{start}
	colors[start] = gray

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		deps := g.edges[top.node]

		if top.idx >= len(deps) {
			colors[top.node] = black
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}

		next := deps[top.idx]
		top.idx++

		switch colors[next] {
		case white:
			colors[next] = gray
			path = append(path, next)
			stack = append(stack, frame{node: next})
		case gray:
			*cycles = append(*cycles, extractCycle(path, next))
		case black:
			// already fully explored via another path; not part of a new cycle
		}
	}
}

func extractCycle(path []string, target string) []string {
	for i, node := range path {
		if node == target {
			cycle := make([]string, len(path)-i)
			copy(cycle, path[i:])
			return cycle
		}
	}
	return nil
}
