// The reporter is the only component that turns a *justError (or one of
// the listing modes) into the text that actually reaches the user. Every
// lexical, syntactic and semantic error gets a caret-indented source
// excerpt; usage errors and exit-only runtime errors are bare one-line
// messages.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
)

// reporter writes formatted errors and listing output to a stream, adding
// ANSI color only when that stream is a real terminal.
type reporter struct {
	w     io.Writer
	color bool
}

func newReporter(w io.Writer) *reporter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &reporter{w: w, color: color}
}

func (rp *reporter) bold(s string) string {
	if !rp.color {
		return s
	}
	return "\x1b[1m" + s + "\x1b[0m"
}

func (rp *reporter) red(s string) string {
	if !rp.color {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

// reportError formats a *justError per the one format every user-visible
// error follows, and writes it to the reporter's stream.
func (rp *reporter) reportError(err error, src string) {
	je, ok := err.(*justError)
	if !ok {
		fmt.Fprintf(rp.w, "%s\n", err)
		return
	}

	prefixed := je.kind.category() == "lexical" || je.kind.category() == "syntactic" || je.kind.category() == "semantic"

	if prefixed {
		fmt.Fprintf(rp.w, "%s %s\n", rp.red(rp.bold("error:")), je.msg)
	} else {
		fmt.Fprintf(rp.w, "%s\n", je.msg)
	}

	if je.pos != nil {
		fmt.Fprint(rp.w, formatExcerpt(src, *je.pos))
	}
}

// reportUnlessQuiet is reportError gated by --quiet: every category except
// usage is silenced on stderr, but the exit code is unaffected either way.
func (rp *reporter) reportUnlessQuiet(err error, src string, quiet bool) {
	if je, ok := err.(*justError); ok && quiet && je.kind.category() != "usage" {
		return
	}
	rp.reportError(err, src)
}

// formatExcerpt renders the "  |\n<n> | <text>\n  |  ^^^^\n" block for a
// single-line source span.
func formatExcerpt(src string, pos position) string {
	lines := strings.Split(src, "\n")
	var lineText string
	if idx := pos.line - 1; idx >= 0 && idx < len(lines) {
		lineText = strings.TrimRight(lines[idx], "\r")
	}

	numStr := strconv.Itoa(pos.line)
	gutter := strings.Repeat(" ", len(numStr)) + " |"

	end := pos.offset + pos.length
	if end > len(src) {
		end = len(src)
	}
	caretCount := utf8.RuneCountInString(src[pos.offset:end])
	if caretCount == 0 {
		caretCount = 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", gutter)
	fmt.Fprintf(&sb, "%s | %s\n", numStr, lineText)
	fmt.Fprintf(&sb, "%s %s%s\n", gutter, strings.Repeat(" ", pos.column), strings.Repeat("^", caretCount))
	return sb.String()
}

// list prints every recipe name, alphabetical and space-separated.
func (rp *reporter) list(prog *Program) {
	names := make([]string, 0, len(prog.recipes))
	for name := range prog.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(rp.w, "%s\n", strings.Join(names, " "))
}

// show prints a recipe's header and body verbatim, re-indented to four
// spaces, with interpolation syntax preserved.
func (rp *reporter) show(prog *Program, name string) error {
	r, ok := prog.recipes[name]
	if !ok {
		return newErrNoSpan(errUnknownRecipe, "no recipe named `%s`", name)
	}

	var sb strings.Builder
	if r.headerAt {
		sb.WriteByte('@')
	}
	sb.WriteString(r.name)
	for _, p := range r.parameters {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	if len(r.deps) > 0 {
		sb.WriteString(":")
		for _, d := range r.deps {
			sb.WriteByte(' ')
			sb.WriteString(d.name)
		}
	} else {
		sb.WriteByte(':')
	}
	sb.WriteByte('\n')

	for _, ln := range r.lines {
		sb.WriteString("    ")
		if ln.quiet && !r.headerAt {
			sb.WriteByte('@')
		}
		for _, fr := range ln.fragments {
			if fr.expr == nil {
				sb.WriteString(fr.literal)
				continue
			}
			sb.WriteString("{{")
			sb.WriteString(renderExpr(fr.expr))
			sb.WriteString("}}")
		}
		sb.WriteByte('\n')
	}

	fmt.Fprint(rp.w, sb.String())
	return nil
}

// renderExpr reconstructs source-like text for an expression, used by show
// to preserve interpolation syntax.
func renderExpr(e *expr) string {
	switch e.kind {
	case exprStringLit:
		return "\"" + escapeForShow(e.value) + "\""
	case exprBacktick:
		return "`" + e.command + "`"
	case exprVariable:
		return e.name
	case exprConcat:
		return renderExpr(e.left) + " + " + renderExpr(e.right)
	}
	return ""
}

func escapeForShow(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// evaluate prints every assignment, alphabetical, as `name = "value"`.
func (rp *reporter) evaluate(prog *Program, ev *evaluator) error {
	names := make([]string, 0, len(prog.assignments))
	for name := range prog.assignments {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := ev.eval(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(rp.w, "%s = \"%s\"\n", name, escapeForEvaluate(v))
	}
	return nil
}

// escapeForEvaluate applies the minimal escaping --evaluate promises: tab
// stays a literal tab, and only newline, quote and backslash are escaped.
func escapeForEvaluate(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
