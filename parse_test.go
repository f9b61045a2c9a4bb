package main

import "testing"

func TestParseAssignment(t *testing.T) {
	f, err := parseFile("a = \"x\" + b\n", "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if len(f.assignments) != 1 {
		t.Fatalf("assignments = %d, want 1", len(f.assignments))
	}
	a := f.assignments[0]
	if a.name != "a" || a.exported {
		t.Errorf("assignment = %+v, want name=a exported=false", a)
	}
	if a.value.kind != exprConcat {
		t.Errorf("value.kind = %v, want exprConcat", a.value.kind)
	}
}

func TestParseExportedAssignment(t *testing.T) {
	f, err := parseFile("export a = \"x\"\n", "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if !f.assignments[0].exported {
		t.Error("expected export to be recorded")
	}
}

func TestParseRecipeWithParamsAndDeps(t *testing.T) {
	src := "build target: compile link\n echo {{target}}\n"
	f, err := parseFile(src, "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if len(f.recipes) != 1 {
		t.Fatalf("recipes = %d, want 1", len(f.recipes))
	}
	r := f.recipes[0]
	if r.name != "build" {
		t.Errorf("name = %q, want build", r.name)
	}
	if len(r.parameters) != 1 || r.parameters[0] != "target" {
		t.Errorf("parameters = %v, want [target]", r.parameters)
	}
	if len(r.deps) != 2 || r.deps[0].name != "compile" || r.deps[1].name != "link" {
		t.Errorf("deps = %v, want [compile link]", r.deps)
	}
	if len(r.lines) != 1 || len(r.lines[0].fragments) != 2 {
		t.Fatalf("lines = %+v", r.lines)
	}
}

func TestParseRecipeQuietHeader(t *testing.T) {
	f, err := parseFile("@foo:\n echo hi\n", "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	r := f.recipes[0]
	if !r.headerAt || !r.quiet {
		t.Errorf("headerAt = %v quiet = %v, want both true", r.headerAt, r.quiet)
	}
}

func TestParseRecipeAllLinesQuietImpliesRecipeQuiet(t *testing.T) {
	f, err := parseFile("foo:\n @echo one\n @echo two\n", "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if !f.recipes[0].quiet {
		t.Error("expected recipe to be quiet when every line is quiet")
	}
}

func TestParseShebangRecipe(t *testing.T) {
	f, err := parseFile("foo:\n #!/bin/sh\n echo hi\n", "test")
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if !f.recipes[0].isShebang {
		t.Error("expected recipe to be detected as a shebang recipe")
	}
}

func TestParseUnexpectedTokenError(t *testing.T) {
	_, err := parseFile("a = \n", "test")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	je, ok := err.(*justError)
	if !ok || je.kind != errUnexpectedToken {
		t.Errorf("error = %v, want errUnexpectedToken", err)
	}
}
