package main

import (
	"fmt"
	"strings"
)

// errorKind names every category in the taxonomy from the error-handling
// design: lexical and syntactic errors abort before parsing finishes, the
// resolver's semantic errors abort before any child process is spawned
// (ArityMismatch is checked by the runner, just before the recipe it
// concerns starts), flag and override errors abort before evaluation (an
// unknown recipe name is reported by the runner, after the top-level
// assignments are evaluated), and runtime errors terminate the recipe in
// progress without touching later requested recipes.
type errorKind int

const (
	errUnknownStartOfToken errorKind = iota
	errUnterminatedString
	errMixedLeadingWhitespace

	errUnexpectedToken

	errDuplicateRecipe
	errDuplicateAssignment
	errUnknownDependency
	errUndefinedVariable
	errParameterShadowsReserved
	errDependencyCycle
	errAssignmentCycle
	errArityMismatch

	errUnknownOverride
	errIncompatibleFlags
	errUnknownRecipe

	errBacktickFailed
	errRecipeFailed
	errIoFailure
)

func (k errorKind) category() string {
	switch k {
	case errUnknownStartOfToken, errUnterminatedString, errMixedLeadingWhitespace:
		return "lexical"
	case errUnexpectedToken:
		return "syntactic"
	case errDuplicateRecipe, errDuplicateAssignment, errUnknownDependency,
		errUndefinedVariable, errParameterShadowsReserved, errDependencyCycle,
		errAssignmentCycle, errArityMismatch:
		return "semantic"
	case errUnknownOverride, errIncompatibleFlags, errUnknownRecipe:
		return "usage"
	case errBacktickFailed, errRecipeFailed, errIoFailure:
		return "runtime"
	}
	return "unknown"
}

// justError is the single error type threaded through every pipeline stage.
// Lexical, syntactic and semantic errors (and the BacktickFailed runtime
// error) carry a source span the Reporter can underline; usage errors,
// RecipeFailed and IoFailure carry none.
type justError struct {
	kind    errorKind
	pos     *position // nil when there is no source excerpt to show
	msg     string
	chain   []string // DependencyCycle / AssignmentCycle: the chain of names
	names   []string // UnknownOverride: the sorted offending names
	code    int       // BacktickFailed / RecipeFailed: the child's exit status
	wrapped error
}

func (e *justError) Error() string { return e.msg }

func (e *justError) Unwrap() error { return e.wrapped }

func newErr(kind errorKind, pos position, format string, args ...any) *justError {
	p := pos
	return &justError{kind: kind, pos: &p, msg: fmt.Sprintf(format, args...)}
}

func newErrNoSpan(kind errorKind, format string, args ...any) *justError {
	return &justError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func newCycleErr(kind errorKind, chain []string) *justError {
	return &justError{
		kind:  kind,
		msg:   fmt.Sprintf("cycle detected: %s", strings.Join(chain, " -> ")),
		chain: chain,
	}
}

func newOverrideErr(names []string) *justError {
	return &justError{
		kind:  errUnknownOverride,
		msg:   fmt.Sprintf("%s set on the command line but not present in justfile", joinNames(names)),
		names: names,
	}
}

// joinNames renders a sorted name list the way English prose would: "a",
// "a and b", or "a, b, and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func wrapIoErr(err error, format string, args ...any) *justError {
	return &justError{
		kind:    errIoFailure,
		msg:     fmt.Sprintf(format, args...),
		wrapped: err,
	}
}
