// Package hierarchy builds and queries the class hierarchy index: the
// children_of transpose of the subclass relation, root classes, ancestor
// paths, descendant closures, and inherited properties.
package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/ontograph/ontology"
)

// CycleDetectedError reports a cycle in the subclass relation. Operations
// needing a transitive closure fail with this error for classes on or above
// the cycle; classes unaffected by the cycle remain queryable.
type CycleDetectedError struct {
	// IRIs are the classes on the cycle, in traversal order.
	IRIs []string
}

// Error implements the error interface.
func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("cycle detected in class hierarchy: %s", strings.Join(e.IRIs, " -> "))
}

// UnknownClassError reports a lookup for a class IRI absent from the model.
type UnknownClassError struct {
	IRI string
}

// Error implements the error interface.
func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unknown class: %s", e.IRI)
}

// Index holds the derived hierarchy views over an immutable model. It is
// recomputed from the model on every load; rebuilding is deterministic.
type Index struct {
	model    *ontology.Model
	children map[string][]string // sorted child IRIs, exact transpose of Parents
	roots    []string            // sorted IRIs of classes with no parents
}

// Build computes children_of and roots and checks the parent relation for
// cycles. When a cycle exists, Build returns the index together with a
// *CycleDetectedError: the index stays usable for classes not involved in
// the cycle.
func Build(m *ontology.Model) (*Index, error) {
	idx := &Index{
		model:    m,
		children: make(map[string][]string),
	}

	for _, iri := range m.ClassIRIs() {
		cls := m.Classes[iri]
		if len(cls.Parents) == 0 {
			idx.roots = append(idx.roots, iri)
		}
		for parent := range cls.Parents {
			idx.children[parent] = append(idx.children[parent], iri)
		}
	}
	for parent := range idx.children {
		sort.Strings(idx.children[parent])
	}
	sort.Strings(idx.roots)

	if cycle := idx.findCycle(); cycle != nil {
		return idx, &CycleDetectedError{IRIs: cycle}
	}
	return idx, nil
}

// findCycle runs a depth-first search over parent edges with an explicit
// in-progress set. It returns the first cycle found, or nil.
func (idx *Index) findCycle() []string {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // fully explored
	)
	color := make(map[string]int, len(idx.model.Classes))
	var path []string

	var visit func(iri string) []string
	visit = func(iri string) []string {
		color[iri] = gray
		path = append(path, iri)
		cls := idx.model.Classes[iri]
		for _, parent := range cls.ParentIRIs() {
			if _, ok := idx.model.Classes[parent]; !ok {
				continue // unresolved reference, warned at parse time
			}
			switch color[parent] {
			case gray:
				// Slice the current path from the first occurrence of
				// parent, then close the loop.
				for i, p := range path {
					if p == parent {
						cycle := append([]string{}, path[i:]...)
						return append(cycle, parent)
					}
				}
			case white:
				if cycle := visit(parent); cycle != nil {
					return cycle
				}
			}
		}
		color[iri] = black
		path = path[:len(path)-1]
		return nil
	}

	for _, iri := range idx.model.ClassIRIs() {
		if color[iri] == white {
			if cycle := visit(iri); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Roots returns the IRIs of classes with no parents, sorted.
func (idx *Index) Roots() []string {
	return append([]string{}, idx.roots...)
}

// Children returns the direct subclasses of the given class, sorted.
func (idx *Index) Children(iri string) ([]string, error) {
	if _, ok := idx.model.Classes[iri]; !ok {
		return nil, &UnknownClassError{IRI: iri}
	}
	return append([]string{}, idx.children[iri]...), nil
}

// Ancestors returns the path from the given class up to a root, direct
// parent first. With multiple inheritance "the" path is ambiguous; the
// tie-break is deterministic and caller-visible: at every step the
// lexicographically smallest parent IRI that resolves to a declared class is
// taken. The class itself is never part of its own ancestor path.
func (idx *Index) Ancestors(iri string) ([]string, error) {
	if _, ok := idx.model.Classes[iri]; !ok {
		return nil, &UnknownClassError{IRI: iri}
	}
	var path []string
	visited := map[string]bool{iri: true}
	current := iri
	for {
		next := ""
		for _, parent := range idx.model.Classes[current].ParentIRIs() {
			if _, ok := idx.model.Classes[parent]; ok {
				next = parent
				break
			}
		}
		if next == "" {
			return path, nil
		}
		if visited[next] {
			return nil, &CycleDetectedError{IRIs: append(append([]string{iri}, path...), next)}
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}
}

// Descendants returns the full transitive closure of children_of starting at
// the given class; the empty set for leaves. Traversal keeps a visited set,
// so it terminates even on a malformed cyclic model — in that case the
// affected class fails with *CycleDetectedError.
func (idx *Index) Descendants(iri string) (map[string]bool, error) {
	if _, ok := idx.model.Classes[iri]; !ok {
		return nil, &UnknownClassError{IRI: iri}
	}
	result := make(map[string]bool)
	onPath := make(map[string]bool)
	var path []string

	var visit func(string) error
	visit = func(current string) error {
		onPath[current] = true
		path = append(path, current)
		for _, child := range idx.children[current] {
			if onPath[child] {
				for i, p := range path {
					if p == child {
						return &CycleDetectedError{IRIs: append(append([]string{}, path[i:]...), child)}
					}
				}
			}
			if !result[child] {
				result[child] = true
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		onPath[current] = false
		path = path[:len(path)-1]
		return nil
	}

	if err := visit(iri); err != nil {
		return nil, err
	}
	delete(result, iri)
	return result, nil
}

// ancestorClosure returns every ancestor reachable through any parent edge,
// not just the documented single path. Inherited properties must consider
// all parents under multiple inheritance.
func (idx *Index) ancestorClosure(iri string) (map[string]bool, error) {
	closure := make(map[string]bool)
	onPath := make(map[string]bool)
	var path []string

	var visit func(string) error
	visit = func(current string) error {
		onPath[current] = true
		path = append(path, current)
		for _, parent := range idx.model.Classes[current].ParentIRIs() {
			if _, ok := idx.model.Classes[parent]; !ok {
				continue
			}
			if onPath[parent] {
				for i, p := range path {
					if p == parent {
						return &CycleDetectedError{IRIs: append(append([]string{}, path[i:]...), parent)}
					}
				}
			}
			if !closure[parent] {
				closure[parent] = true
				if err := visit(parent); err != nil {
					return err
				}
			}
		}
		onPath[current] = false
		path = path[:len(path)-1]
		return nil
	}

	if err := visit(iri); err != nil {
		return nil, err
	}
	delete(closure, iri)
	return closure, nil
}

// InheritedProperties returns the IRIs of every object and data property
// whose domain contains the given class or any of its ancestors: a class
// inherits all properties of its ancestors. Union domains are included for
// every member class. Properties without a usable domain never appear.
func (idx *Index) InheritedProperties(iri string) ([]string, error) {
	if _, ok := idx.model.Classes[iri]; !ok {
		return nil, &UnknownClassError{IRI: iri}
	}
	closure, err := idx.ancestorClosure(iri)
	if err != nil {
		return nil, err
	}
	applicable := map[string]bool{iri: true}
	for anc := range closure {
		applicable[anc] = true
	}

	var props []string
	for _, propIRI := range idx.model.ObjectPropertyIRIs() {
		if domainIntersects(idx.model.ObjectProperties[propIRI].Domain, applicable) {
			props = append(props, propIRI)
		}
	}
	for _, propIRI := range idx.model.DataPropertyIRIs() {
		if domainIntersects(idx.model.DataProperties[propIRI].Domain, applicable) {
			props = append(props, propIRI)
		}
	}
	sort.Strings(props)
	return props, nil
}

// IsSubclassOf reports whether child is the same class as parent or a
// transitive descendant of it. Used by the relationship validator.
func (idx *Index) IsSubclassOf(child, parent string) (bool, error) {
	if _, ok := idx.model.Classes[child]; !ok {
		return false, &UnknownClassError{IRI: child}
	}
	if child == parent {
		return true, nil
	}
	closure, err := idx.ancestorClosure(child)
	if err != nil {
		return false, err
	}
	return closure[parent], nil
}

func domainIntersects(domain, classes map[string]bool) bool {
	for iri := range domain {
		if classes[iri] {
			return true
		}
	}
	return false
}
