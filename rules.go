// The parser builds assignments and recipes out of expressions. An
// expression is always string-typed: a literal, a backtick capture, a
// variable reference, or the concatenation of two expressions.

package main

// exprKind discriminates the four expression variants from the data model.
type exprKind int

const (
	exprStringLit exprKind = iota
	exprBacktick
	exprVariable
	exprConcat
)

// expr is a node in an assignment's or interpolation's expression tree.
// Only the fields relevant to its kind are populated.
type expr struct {
	kind exprKind
	pos  position

	// exprStringLit
	value string

	// exprBacktick: command is the raw (un-decoded) text between backticks.
	command string

	// exprVariable
	name string

	// exprConcat
	left, right *expr
}

// fragment is one piece of a recipe body line: either literal source text
// that is copied into the shell command verbatim, or an interpolation whose
// expression is evaluated and spliced in at execution time.
type fragment struct {
	literal string // valid when expr == nil
	expr    *expr  // valid when non-nil; literal is ignored
}

// assignment is a top-level `name = expression` binding.
type assignment struct {
	name     string
	value    *expr
	exported bool
	pos      position
}

// recipeLine is one line of a recipe body: its fragments, and whether it was
// individually marked quiet with a leading '@'.
type recipeLine struct {
	quiet     bool
	fragments []fragment
}

// recipe is a named, possibly parameterized procedure with an ordered list
// of dependencies and a body made of fragment-sequenced lines.
type recipe struct {
	name       string
	parameters []string
	deps       []depRef
	lines      []recipeLine
	isShebang  bool
	quiet      bool // true when every command line begins with '@' (or the header did)
	headerAt   bool // true when the header itself carried a leading '@'
	pos        position
}

// depRef is a dependency name together with the position of its occurrence,
// so the resolver can point at exactly that identifier when it is unknown.
type depRef struct {
	name string
	pos  position
}

// file is the parser's raw output: assignments and recipes in declaration
// order, before any semantic validation has run.
type file struct {
	assignments []*assignment
	recipes     []*recipe
}
