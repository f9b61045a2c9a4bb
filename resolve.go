// The resolver walks the raw AST once and turns it into a Program: it
// rejects duplicate names, dependencies on unknown recipes, references to
// undefined variables, recipe parameters that shadow the 'export' keyword,
// and cycles in either the variable graph or the recipe dependency graph.
// Nothing here spawns a child process; that is the runner's job, and the
// whole point of resolving first is to catch every one of these mistakes
// before any command has a chance to run.

package main

import "sort"

// Program is the fully validated view of a justfile that the override
// binder, evaluator and runner all consume. The override binder replaces
// assignments in place; after that it is not modified.
type Program struct {
	src      string
	filename string

	assignments map[string]*assignment
	assignOrder []string // declaration order, for up-front evaluation and cycle search
	exported    map[string]bool

	recipes     map[string]*recipe
	recipeOrder []string // declaration order: first recipe is the default, also cycle search and --debug
}

func resolve(f *file, src, filename string) (*Program, error) {
	prog := &Program{
		src:         src,
		filename:    filename,
		assignments: make(map[string]*assignment, len(f.assignments)),
		exported:    make(map[string]bool),
		recipes:     make(map[string]*recipe, len(f.recipes)),
	}

	for _, a := range f.assignments {
		if existing, ok := prog.assignments[a.name]; ok {
			return nil, newErr(errDuplicateAssignment, a.pos,
				"variable `%s` is defined more than once (first at %s)", a.name, existing.pos)
		}
		prog.assignments[a.name] = a
		prog.assignOrder = append(prog.assignOrder, a.name)
		if a.exported {
			prog.exported[a.name] = true
		}
	}

	for _, r := range f.recipes {
		if existing, ok := prog.recipes[r.name]; ok {
			return nil, newErr(errDuplicateRecipe, r.pos,
				"recipe `%s` is defined more than once (first at %s)", r.name, existing.pos)
		}
		for _, param := range r.parameters {
			if param == "export" {
				return nil, newErr(errParameterShadowsReserved, r.pos,
					"parameter `%s` shadows a reserved name", param)
			}
		}
		prog.recipes[r.name] = r
		prog.recipeOrder = append(prog.recipeOrder, r.name)
	}

	for _, r := range f.recipes {
		for _, d := range r.deps {
			if _, ok := prog.recipes[d.name]; !ok {
				return nil, newErr(errUnknownDependency, d.pos,
					"recipe `%s` has unknown dependency `%s`", r.name, d.name)
			}
		}
	}

	for _, a := range f.assignments {
		if err := checkVarRefs(a.value, prog.assignments, nil); err != nil {
			return nil, err
		}
	}

	for _, r := range f.recipes {
		params := make(map[string]bool, len(r.parameters))
		for _, p := range r.parameters {
			params[p] = true
		}
		for _, ln := range r.lines {
			for _, fr := range ln.fragments {
				if fr.expr == nil {
					continue
				}
				if err := checkVarRefs(fr.expr, prog.assignments, params); err != nil {
					return nil, err
				}
			}
		}
	}

	if chain := findAssignmentCycle(prog.assignments, prog.assignOrder); chain != nil {
		err := newCycleErr(errAssignmentCycle, chain)
		pos := prog.assignments[chain[0]].pos
		err.pos = &pos
		return nil, err
	}
	if chain := findRecipeCycle(prog.recipes, prog.recipeOrder); chain != nil {
		err := newCycleErr(errDependencyCycle, chain)
		pos := prog.recipes[chain[0]].pos
		err.pos = &pos
		return nil, err
	}

	return prog, nil
}

// checkVarRefs walks an expression tree looking only at Variable and Concat
// nodes - a backtick's command text is opaque shell source, never parsed for
// variable references, and a string literal has none by definition.
func checkVarRefs(e *expr, assigns map[string]*assignment, params map[string]bool) error {
	if e == nil {
		return nil
	}
	switch e.kind {
	case exprVariable:
		if params != nil && params[e.name] {
			return nil
		}
		if _, ok := assigns[e.name]; ok {
			return nil
		}
		return newErr(errUndefinedVariable, e.pos, "variable `%s` is not defined", e.name)
	case exprConcat:
		if err := checkVarRefs(e.left, assigns, params); err != nil {
			return err
		}
		return checkVarRefs(e.right, assigns, params)
	default:
		return nil
	}
}

// collectVarRefs gathers the names of every Variable node reachable through
// Concat, in left-to-right order, for building the assignment graph.
func collectVarRefs(e *expr) []string {
	if e == nil {
		return nil
	}
	switch e.kind {
	case exprVariable:
		return []string{e.name}
	case exprConcat:
		return append(collectVarRefs(e.left), collectVarRefs(e.right)...)
	default:
		return nil
	}
}

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// findAssignmentCycle runs a DFS over the variable-reference graph in
// declaration order, so that two equivalent justfiles always report the
// same chain. It returns the cycle as a chain of names ending back where it
// started, or nil if the graph is acyclic.
func findAssignmentCycle(assigns map[string]*assignment, order []string) []string {
	color := make(map[string]int, len(assigns))
	var path []string
	var cycle []string

	var visit func(name string)
	visit = func(name string) {
		if cycle != nil || color[name] == colorBlack {
			return
		}
		if color[name] == colorGray {
			idx := indexOf(path, name)
			cycle = append(append([]string{}, path[idx:]...), name)
			return
		}
		color[name] = colorGray
		path = append(path, name)
		if a, ok := assigns[name]; ok {
			for _, ref := range collectVarRefs(a.value) {
				visit(ref)
				if cycle != nil {
					break
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = colorBlack
	}

	for _, name := range order {
		visit(name)
		if cycle != nil {
			return cycle
		}
	}
	return nil
}

// findRecipeCycle is the same algorithm applied to the recipe dependency
// graph: the edges are explicit `depRef`s rather than expression references.
func findRecipeCycle(recipes map[string]*recipe, order []string) []string {
	color := make(map[string]int, len(recipes))
	var path []string
	var cycle []string

	var visit func(name string)
	visit = func(name string) {
		if cycle != nil || color[name] == colorBlack {
			return
		}
		if color[name] == colorGray {
			idx := indexOf(path, name)
			cycle = append(append([]string{}, path[idx:]...), name)
			return
		}
		color[name] = colorGray
		path = append(path, name)
		if r, ok := recipes[name]; ok {
			for _, d := range r.deps {
				visit(d.name)
				if cycle != nil {
					break
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = colorBlack
	}

	for _, name := range order {
		visit(name)
		if cycle != nil {
			return cycle
		}
	}
	return nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// sortedNames returns a set's names in alphabetical order; the runner uses
// it to add exported variables to the environment in a deterministic order.
func sortedNames(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
