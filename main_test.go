package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// captureRun invokes run with pipes for stdout/stderr and returns everything
// written to each, along with the exit code.
func captureRun(t *testing.T, args []string) (stdout, stderr string, code int) {
	t.Helper()

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	outCh := make(chan string, 1)
	errCh := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(outR)
		outCh <- string(b)
	}()
	go func() {
		b, _ := io.ReadAll(errR)
		errCh <- string(b)
	}()

	code = run(args, outW, errW)
	outW.Close()
	errW.Close()
	return <-outCh, <-errCh, code
}

func writeJustfile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "justfile")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestMainUnknownOverride(t *testing.T) {
	path := writeJustfile(t, "a = \"x\"\na:\n echo a\nb:\n echo b\n")
	_, stderr, code := captureRun(t, []string{"-f", path, "foo=bar", "baz=bob", "a=b", "a", "b"})
	if code != 255 {
		t.Errorf("exit code = %d, want 255", code)
	}
	want := "baz and foo set on the command line but not present in justfile\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestMainIncompatibleFlags(t *testing.T) {
	path := writeJustfile(t, "foo:\n echo hi\n")
	_, stderr, code := captureRun(t, []string{"-f", path, "--quiet", "--dry-run", "foo"})
	if code != 255 {
		t.Errorf("exit code = %d, want 255", code)
	}
	want := "--dry-run and --quiet may not be used together\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestMainDefaultRecipe(t *testing.T) {
	path := writeJustfile(t, "default:\n echo hello\nother:\n echo bar\n")
	stdout, stderr, code := captureRun(t, []string{"-f", path})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr)
	}
	if stdout != "hello\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hello\n")
	}
	if stderr != "echo hello\n" {
		t.Errorf("stderr = %q, want %q", stderr, "echo hello\n")
	}
}

func TestMainNoArgsRunsFirstDeclaredRecipeWhenNotNamedDefault(t *testing.T) {
	path := writeJustfile(t, "a = `printf Hello,`\nbar:\n printf '{{a + `printf ' world!'`}}'\n")
	stdout, stderr, code := captureRun(t, []string{"-f", path})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr)
	}
	if stdout != "Hello, world!" {
		t.Errorf("stdout = %q, want %q", stdout, "Hello, world!")
	}
	if stderr != "printf 'Hello, world!'\n" {
		t.Errorf("stderr = %q, want %q", stderr, "printf 'Hello, world!'\n")
	}
}

func TestMainListFlag(t *testing.T) {
	path := writeJustfile(t, "b:\n echo b\na:\n echo a\n")
	stdout, _, code := captureRun(t, []string{"-f", path, "--list"})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "a b\n" {
		t.Errorf("stdout = %q, want %q", stdout, "a b\n")
	}
}
