package dss

import (
	"strings"
	"testing"
)

func TestAttemptNameMismatch(t *testing.T) {
	env := testEnv()
	ex := env.NewExecutor("test")

	calls := 0
	cmd := ex.Register(HandlerFunc(func(ex *Executor, args []string) int {
		calls++
		return StatusOK
	}), "hit", "test command")

	res := cmd.Attempt([]string{"miss", "a"}, 1)

	if len(res) != 0 {
		t.Errorf("Expected empty result for a name mismatch, got %v", res)
	}
	if calls != 0 {
		t.Error("Handler ran on a name mismatch")
	}
	if len(ex.Diagnostics()) != 0 {
		t.Error("Name mismatch is not an error")
	}
}

func TestAttemptTooFewArguments(t *testing.T) {
	env := testEnv()
	ex := env.NewExecutor("test")

	calls := 0
	cmd := ex.RegisterArity(HandlerFunc(func(ex *Executor, args []string) int {
		calls++
		return StatusOK
	}), "hit", "test command", 2, NoLimit)

	res := cmd.Attempt([]string{"hit", "a"}, 3)

	if len(res) != 0 {
		t.Errorf("Expected empty result, got %v", res)
	}
	if calls != 0 {
		t.Error("Handler ran despite the arity failure")
	}

	diags := ex.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "too few arguments for hit, at least 2 expected" {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
	if diags[0].Line != 3 {
		t.Errorf("Expected line 3, got %d", diags[0].Line)
	}
}

func TestAttemptTooManyArguments(t *testing.T) {
	env := testEnv()
	ex := env.NewExecutor("test")

	calls := 0
	cmd := ex.RegisterArity(HandlerFunc(func(ex *Executor, args []string) int {
		calls++
		return StatusOK
	}), "hit", "test command", 0, 1)

	res := cmd.Attempt([]string{"hit", "a", "b"}, 1)

	if len(res) != 0 {
		t.Errorf("Expected empty result, got %v", res)
	}
	if calls != 0 {
		t.Error("Handler ran despite the arity failure")
	}

	diags := ex.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "too many arguments for hit, at most 1 expected" {
		t.Errorf("Unexpected message %q", diags[0].Message)
	}
}

func TestAttemptUnboundedArity(t *testing.T) {
	env := testEnv()
	ex := env.NewExecutor("test")

	var got []string
	cmd := ex.Register(HandlerFunc(func(ex *Executor, args []string) int {
		got = args
		return StatusOK
	}), "hit", "test command")

	res := cmd.Attempt([]string{"hit"}, 1)
	if len(res) != 1 || res[0] != StatusOK {
		t.Errorf("Expected [0], got %v", res)
	}
	if len(got) != 0 {
		t.Errorf("Expected no arguments, got %v", got)
	}

	res = cmd.Attempt([]string{"hit", "a", "b", "c"}, 1)
	if len(res) != 1 {
		t.Errorf("Expected single code, got %v", res)
	}
	if strings.Join(got, " ") != "a b c" {
		t.Errorf("Expected arguments after the keyword, got %v", got)
	}
}

func TestCommandConnectSecondHandler(t *testing.T) {
	env := testEnv()
	ex := env.NewExecutor("test")

	firstArgs, secondArgs := "", ""
	cmd := ex.Register(HandlerFunc(func(ex *Executor, args []string) int {
		firstArgs = strings.Join(args, " ")
		return StatusOK
	}), "hit", "test command")
	cmd.Connect(HandlerFunc(func(ex *Executor, args []string) int {
		secondArgs = strings.Join(args, " ")
		return 7
	}))

	res := cmd.Attempt([]string{"hit", "x", "y"}, 1)

	if len(res) != 2 || res[0] != StatusOK || res[1] != 7 {
		t.Errorf("Expected one code per handler, got %v", res)
	}
	if firstArgs != "x y" || secondArgs != "x y" {
		t.Errorf("Expected both handlers to see the arguments, got %q and %q", firstArgs, secondArgs)
	}
}

func TestCommandAccessors(t *testing.T) {
	env := testEnv()
	ex := env.NewExecutor("test")

	cmd := ex.Register(HandlerFunc(func(ex *Executor, args []string) int {
		return StatusOK
	}), "hit", "does test things")

	if cmd.Name() != "hit" {
		t.Errorf("Expected name hit, got %q", cmd.Name())
	}
	if cmd.Description() != "does test things" {
		t.Errorf("Expected description, got %q", cmd.Description())
	}
}
