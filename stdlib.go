package dss

import (
	"fmt"
	"io"
	"os"
)

// errInternalNull is the reserved message for code 1 of the built-in
// commands, the code a handler returns when engine state it relies on is
// unexpectedly missing.
const errInternalNull = "internal interpreter error, critical data unexpectedly returned null." +
	"\n\nnote: this error requires the attention of a developer"

// ShellModule grafts the built-in command set onto an environment: out,
// cd, and ls in the command pass, src in the preprocessor pass. It closes
// over the writer console output goes to and the loader script files come
// from, so frontends and tests can redirect both.
type ShellModule struct {
	console io.Writer
	files   FileLoader
	logger  *Logger
}

// NewShellModule creates the module. A nil writer falls back to stdout
// and a nil loader to the operating system.
func NewShellModule(console io.Writer, files FileLoader, logger *Logger) *ShellModule {
	if console == nil {
		console = os.Stdout
	}
	if files == nil {
		files = OSFiles{}
	}
	return &ShellModule{console: console, files: files, logger: logger}
}

// Attach connects the module's definers and error table to an
// environment.
func (m *ShellModule) Attach(env *Environment) {
	env.RegisterPreprocDefiner(HandlerFunc(m.definePreproc))
	env.RegisterCommandDefiner(HandlerFunc(m.defineCommands))
	env.RegisterErrorTable(m.ErrorTable())
}

// ErrorTable returns the messages for the module's nonzero codes.
func (m *ShellModule) ErrorTable() ErrorTable {
	return ErrorTable{
		"out": {1: errInternalNull},
		"src": {
			1: errInternalNull,
			2: "failed to queue script, file does not exist",
		},
		"cd": {1: "file does not exist"},
	}
}

func (m *ShellModule) definePreproc(ex *Executor, _ []string) int {
	ex.RegisterArity(HandlerFunc(m.src), "src", "runs the dss script at a path", 1, 1)
	return StatusOK
}

func (m *ShellModule) defineCommands(ex *Executor, _ []string) int {
	ex.RegisterArity(HandlerFunc(m.out), "out", "outputs its arguments to the console", 1, NoLimit)
	ex.RegisterArity(HandlerFunc(m.cd), "cd", "changes the current directory", 1, 1)
	ex.RegisterArity(HandlerFunc(m.ls), "ls", "lists the current directory", 0, 0)
	return StatusOK
}

// out writes each argument followed by a single space, then ends the
// line.
func (m *ShellModule) out(_ *Executor, args []string) int {
	for _, arg := range args {
		fmt.Fprintf(m.console, "%s ", arg)
	}
	fmt.Fprintln(m.console)
	return StatusOK
}

// src loads the script at the given path and buffers it as a follow-up
// task, so it runs after the current task's remaining statements.
func (m *ShellModule) src(ex *Executor, args []string) int {
	text, err := m.files.Load(args[0])
	if err != nil {
		m.logger.DebugCat(CatShell, "src %s: %v", args[0], err)
		return 2
	}
	ex.Queue(NewTask(text))
	m.logger.DebugCat(CatShell, "queued script from %s", args[0])
	return StatusOK
}

func (m *ShellModule) cd(_ *Executor, args []string) int {
	if err := os.Chdir(args[0]); err != nil {
		return 1
	}
	return StatusOK
}

func (m *ShellModule) ls(_ *Executor, _ []string) int {
	entries, err := os.ReadDir(".")
	if err != nil {
		return 1
	}
	for _, entry := range entries {
		fmt.Fprintf(m.console, "./%s\n", entry.Name())
	}
	return StatusOK
}
