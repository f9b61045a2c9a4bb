// With --debug set, every evaluated assignment and every recipe-line
// interpolation is printed together with its value, and the recipe
// dependency graph is printed before the runner starts. Values are rendered
// with litter, a struct pretty-printer, the same way it would dump any other
// Go value - consistent, if more verbose than a bespoke format.

package main

import "github.com/sanity-io/litter"

func litterDump(v string) string {
	return litter.Sdump(v)
}

// debugDumpGraph renders the recipe dependency graph (name -> its declared
// dependency names, in declaration order) so --debug can show what the
// resolver built before the runner starts walking it.
func debugDumpGraph(prog *Program) string {
	graph := make(map[string][]string, len(prog.recipeOrder))
	for _, name := range prog.recipeOrder {
		r := prog.recipes[name]
		deps := make([]string, len(r.deps))
		for i, d := range r.deps {
			deps[i] = d.name
		}
		graph[name] = deps
	}
	return litter.Sdump(graph)
}
