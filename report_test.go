package main

import (
	"bytes"
	"testing"
)

func TestFormatExcerptMatchesCaretLayout(t *testing.T) {
	src := "# header\na = `exit 100`\nbar:\n echo `exit 200`\n"
	f, err := parseFile(src, "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	pos := f.assignments[0].value.pos
	if pos.line != 2 || pos.column != 4 {
		t.Fatalf("backtick pos = %+v, want line=2 column=4", pos)
	}
	got := formatExcerpt(src, pos)
	want := "  |\n2 | a = `exit 100`\n  |     ^^^^^^^^^^\n"
	if got != want {
		t.Errorf("formatExcerpt =\n%q\nwant\n%q", got, want)
	}
}

func TestReporterList(t *testing.T) {
	prog := mustResolve(t, "b:\n echo b\na:\n echo a\n")
	var buf bytes.Buffer
	rp := &reporter{w: &buf}
	rp.list(prog)
	if got := buf.String(); got != "a b\n" {
		t.Errorf("list = %q, want %q", got, "a b\n")
	}
}

func TestReporterEvaluate(t *testing.T) {
	prog := mustResolve(t, "b = \"2\"\na = \"1\"\n")
	var buf bytes.Buffer
	rp := &reporter{w: &buf}
	ev := newEvaluator(prog, false, false, &buf)
	if err := rp.evaluate(prog, ev); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := "a = \"1\"\nb = \"2\"\n"
	if got := buf.String(); got != want {
		t.Errorf("evaluate = %q, want %q", got, want)
	}
}

func TestReporterShowReindents(t *testing.T) {
	prog := mustResolve(t, "foo:\n echo hi\n")
	var buf bytes.Buffer
	rp := &reporter{w: &buf}
	if err := rp.show(prog, "foo"); err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "foo:\n    echo hi\n"
	if got := buf.String(); got != want {
		t.Errorf("show = %q, want %q", got, want)
	}
}

func TestReporterShowInterpolationNoInnerSpaces(t *testing.T) {
	prog := mustResolve(t, "hello = \"foo\"\nbar = \"baz\"\nrecipe:\n echo {{hello + \"bar\" + bar}}\n")
	var buf bytes.Buffer
	rp := &reporter{w: &buf}
	if err := rp.show(prog, "recipe"); err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "recipe:\n    echo {{hello + \"bar\" + bar}}\n"
	if got := buf.String(); got != want {
		t.Errorf("show = %q, want %q", got, want)
	}
}

func TestReporterShowUnknownRecipe(t *testing.T) {
	prog := mustResolve(t, "foo:\n echo hi\n")
	var buf bytes.Buffer
	rp := &reporter{w: &buf}
	err := rp.show(prog, "missing")
	if err == nil {
		t.Fatal("expected an error for an unknown recipe")
	}
	je, ok := err.(*justError)
	if !ok || je.kind != errUnknownRecipe {
		t.Errorf("error = %v, want errUnknownRecipe", err)
	}
}
