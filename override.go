// The override binder sits between resolve and evaluation. It turns
// `NAME=VALUE` command-line arguments (and repeated --set NAME VALUE pairs)
// into StringLit replacements on the Program's assignments, and splits the
// remaining arguments into the list of recipe invocations to run.

package main

import (
	"sort"
	"strings"
)

// recipeInvocation is one requested recipe together with the positional
// arguments supplied for its parameters.
type recipeInvocation struct {
	name string
	args []string
}

// setPair is one --set NAME VALUE occurrence, in the order given on the
// command line.
type setPair struct {
	name  string
	value string
}

// bindOverrides partitions positional into overrides (consumed before the
// first recognized recipe name) and recipe invocations, applies --set pairs
// and positional overrides to prog's assignments in place, and returns the
// ordered list of recipes to run.
func bindOverrides(prog *Program, positional []string, sets []setPair) ([]recipeInvocation, error) {
	type pending struct {
		name, value string
	}
	var overrides []pending

	var invocations []recipeInvocation
	sawRecipe := false
	i := 0
	for i < len(positional) {
		arg := positional[i]
		if !sawRecipe {
			if name, value, ok := splitOverrideArg(arg); ok {
				overrides = append(overrides, pending{name, value})
				i++
				continue
			}
		}
		sawRecipe = true
		inv := recipeInvocation{name: arg}
		i++
		for i < len(positional) {
			if !isKnownRecipeName(prog, positional[i]) {
				inv.args = append(inv.args, positional[i])
				i++
				continue
			}
			break
		}
		invocations = append(invocations, inv)
	}

	for _, s := range sets {
		overrides = append(overrides, pending{s.name, s.value})
	}

	var unknown []string
	for _, o := range overrides {
		if _, ok := prog.assignments[o.name]; !ok {
			unknown = append(unknown, o.name)
			continue
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		unknown = dedupe(unknown)
		return nil, newOverrideErr(unknown)
	}

	for _, o := range overrides {
		a := prog.assignments[o.name]
		prog.assignments[o.name] = &assignment{
			name:     a.name,
			value:    &expr{kind: exprStringLit, value: o.value, pos: a.pos},
			exported: a.exported,
			pos:      a.pos,
		}
	}

	return invocations, nil
}

// splitOverrideArg recognizes a NAME=VALUE positional argument. NAME must
// look like an identifier; anything else (including a bare recipe name, or
// an argument with no '=') is not an override.
func splitOverrideArg(arg string) (name, value string, ok bool) {
	idx := strings.IndexByte(arg, '=')
	if idx <= 0 {
		return "", "", false
	}
	name, value = arg[:idx], arg[idx+1:]
	if !isIdentifier(name) {
		return "", "", false
	}
	return name, value, true
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isNameStart(r) {
			return false
		}
		if i > 0 && !isNameCont(r) {
			return false
		}
	}
	return len(s) > 0
}

func isKnownRecipeName(prog *Program, s string) bool {
	_, ok := prog.recipes[s]
	return ok
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
