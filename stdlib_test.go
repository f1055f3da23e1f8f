package dss

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutFormatsArguments(t *testing.T) {
	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)

	ex.Submit("out hello world")

	if got := buf.String(); got != "hello world \n" {
		t.Errorf("Expected %q, got %q", "hello world \n", got)
	}
}

func TestOutCollapsesExtraSpaces(t *testing.T) {
	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)

	// Empty tokens vanish during splitting, so runs of spaces collapse.
	ex.Submit("out hello    world")

	if got := buf.String(); got != "hello world \n" {
		t.Errorf("Expected %q, got %q", "hello world \n", got)
	}
}

func TestOutRequiresArgument(t *testing.T) {
	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)

	ex.Submit("out")

	diags := ex.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "too few arguments for out, at least 1 expected" {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

// chdir is testing.T.Chdir for toolchains before Go 1.24: enter dir for the
// duration of the test, restoring the previous working directory afterwards.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLsListsCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)
	ex.Submit("ls")

	if got := buf.String(); got != "./a.txt\n./b.txt\n" {
		t.Errorf("Expected entry-per-line listing, got %q", got)
	}
}

func TestLsRejectsArguments(t *testing.T) {
	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)

	ex.Submit("ls extra")

	diags := ex.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "too many arguments for ls, at most 0 expected" {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
}

func TestCdChangesDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)
	ex.Submit("cd sub")

	if len(ex.Diagnostics()) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", ex.Diagnostics())
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cwd, "sub") {
		t.Errorf("Expected working directory to change, got %q", cwd)
	}
}

func TestCdMissingDirectory(t *testing.T) {
	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)

	ex.Submit("cd definitely-not-here-12345")

	diags := ex.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "file does not exist" {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
}

func TestSrcArity(t *testing.T) {
	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)

	ex.Submit("src")
	ex.Submit("src one two")

	diags := ex.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Message != "too few arguments for src, at least 1 expected" {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
	if diags[1].Message != "too many arguments for src, at most 1 expected" {
		t.Errorf("Unexpected message %q", diags[1].Message)
	}
}

func TestSrcLoadsThroughConfiguredLoader(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "hello.dss")
	if err := os.WriteFile(script, []byte("out from file"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	_, ex := stdlibEnv(&buf)
	ex.Submit("src " + script)

	if got := buf.String(); got != "from file \n" {
		t.Errorf("Expected sourced output, got %q", got)
	}
}
