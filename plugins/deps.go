package plugins

import (
	"fmt"
	"strings"
)

// DependencyResolver computes a total load order over a set of named nodes
// with declared dependency edges, or proves that none exists. It is the leaf
// component of the host: it knows nothing about plugins or capabilities,
// only node ids.
//
// The resolver is deliberately not safe for concurrent use; the registry
// builds and consumes one per activation pass.
type DependencyResolver struct {
	// order preserves AddNode call order so that nodes with no mutual
	// ordering constraint resolve deterministically for equal input.
	order []string
	edges map[string][]string
}

// NewDependencyResolver creates an empty resolver.
func NewDependencyResolver() *DependencyResolver {
	return &DependencyResolver{
		edges: make(map[string][]string),
	}
}

// AddNode registers a node and the ids it depends on. Dependencies do not
// need to be added first; any call order is accepted. The resolver does not
// deduplicate repeated additions of the same id: the last edge list wins,
// and guarding against duplicates is the caller's responsibility.
func (r *DependencyResolver) AddNode(id string, dependsOn []string) {
	if _, exists := r.edges[id]; !exists {
		r.order = append(r.order, id)
	}
	deps := make([]string, len(dependsOn))
	copy(deps, dependsOn)
	r.edges[id] = deps
}

// Marks used by the depth-first traversal in ResolveLoadOrder.
const (
	markUnvisited = iota
	markInProgress
	markResolved
)

// ResolveLoadOrder returns every added node id exactly once, ordered so that
// each node's dependencies precede it. A cycle (including a self-edge) or a
// dependency on a node that was never added fails with an error wrapping
// ErrCircularDependency; no partial order is ever returned.
//
// The traversal uses an explicit stack instead of recursion so that a
// hostile graph cannot overflow the goroutine stack.
func (r *DependencyResolver) ResolveLoadOrder() ([]string, error) {
	marks := make(map[string]int, len(r.edges))
	result := make([]string, 0, len(r.edges))

	for _, root := range r.order {
		if marks[root] != markUnvisited {
			continue
		}
		stack := []frame{{id: root}}
		marks[root] = markInProgress

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := r.edges[top.id]

			if top.next < len(deps) {
				dep := deps[top.next]
				top.next++

				switch marks[dep] {
				case markResolved:
					continue
				case markInProgress:
					// Re-entering an in-progress node proves a cycle.
					path := make([]string, 0, len(stack)+1)
					for _, f := range stack {
						path = append(path, f.id)
					}
					path = append(path, dep)
					return nil, fmt.Errorf("dependency cycle detected: %s: %w",
						strings.Join(path, " -> "), ErrCircularDependency)
				}
				if _, known := r.edges[dep]; !known {
					return nil, fmt.Errorf("node %q depends on %q, which was never added: %w",
						top.id, dep, ErrCircularDependency)
				}
				marks[dep] = markInProgress
				stack = append(stack, frame{id: dep})
				continue
			}

			marks[top.id] = markResolved
			result = append(result, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	return result, nil
}

// frame tracks how far into a node's dependency list the traversal is.
type frame struct {
	id   string
	next int
}
