package dss

import "fmt"

// NoLimit marks an unconfigured argument bound.
const NoLimit = -1

// Command is a named, arity-checked wrapper around one handler delegate,
// bound to the Executor whose active set it belongs to. Commands are fluid:
// a Definer builds them fresh at the start of every pass and they never
// persist between passes.
type Command struct {
	name        string
	description string
	minArgs     int
	maxArgs     int
	delegate    *Delegate
	executor    *Executor
}

// Name returns the command's keyword
func (c *Command) Name() string {
	return c.name
}

// Description returns the command's usage text
func (c *Command) Description() string {
	return c.description
}

// Connect binds an additional handler to the command. All handlers fire in
// connection order when the command matches a statement.
func (c *Command) Connect(h Handler) {
	c.delegate.Connect(h)
}

// Attempt lazily runs the command against an already-tokenized statement.
// The tokens must be non-empty; dispatch skips blank statements before
// attempting. A first token that is not the command's name yields an empty
// result, which is a non-match rather than an error. An argument count
// outside the configured bounds records one diagnostic carrying the
// 1-based line and also yields an empty result, without invoking any
// handler. Otherwise the result is the delegate's code list verbatim.
func (c *Command) Attempt(tokens []string, line int) []int {
	if tokens[0] != c.name {
		return nil
	}
	args := tokens[1:]

	if c.maxArgs != NoLimit && len(args) > c.maxArgs {
		c.executor.pushDiagnostic(line, c.name,
			fmt.Sprintf("too many arguments for %s, at most %d expected", c.name, c.maxArgs))
		return nil
	}
	if c.minArgs != NoLimit && len(args) < c.minArgs {
		c.executor.pushDiagnostic(line, c.name,
			fmt.Sprintf("too few arguments for %s, at least %d expected", c.name, c.minArgs))
		return nil
	}

	return c.delegate.Call(c.executor, args)
}
