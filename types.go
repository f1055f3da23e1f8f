package dss

import (
	"io"
	"os"
)

// StatusOK is the success code a handler returns. Any other value is an
// error code whose meaning is defined by the module that registered the
// command, via its error table.
const StatusOK = 0

// Handler is the capability a command handler provides: it receives the
// owning Executor and the statement's arguments, and returns a status code.
// Implementing it as an interface lets grafted modules close over their own
// configuration (writers, file loaders, markers) while keeping the same
// contract everywhere.
type Handler interface {
	Handle(ex *Executor, args []string) int
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ex *Executor, args []string) int

// Handle calls f.
func (f HandlerFunc) Handle(ex *Executor, args []string) int { return f(ex, args) }

// Definer populates an Executor's active command set for exactly one pass.
// It shares the Handler contract: the Executor to register into comes in as
// the handle, args are empty, and the status code is unused by the engine.
type Definer = Handler

// Value is one element of a Variable's data list. The set of kinds is
// closed: plain text, alias records, and preprocessor-name markers.
type Value interface {
	isValue()
}

// Text is a plain string value.
type Text string

func (Text) isValue() {}

// Alias is one macro definition: occurrences of the dereference marker
// followed by ID are replaced with Text during the preprocessor pass.
type Alias struct {
	ID   string
	Text string
}

func (Alias) isValue() {}

// PreprocName names a preprocessor command flagged to run automatically on
// every task, whether or not the script mentions it.
type PreprocName string

func (PreprocName) isValue() {}

// valuesEqual reports equality per variant. Values of different kinds are
// never equal, so a cross-kind comparison reads as "not present" rather
// than an error.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Alias:
		bv, ok := b.(Alias)
		return ok && av == bv
	case PreprocName:
		bv, ok := b.(PreprocName)
		return ok && av == bv
	}
	return false
}

// Diagnostic is one engine-reported problem: an arity violation or a
// nonzero handler code resolved through the error tables. Line is the
// 1-based statement line within the task script.
type Diagnostic struct {
	Line    int
	Command string
	Message string
}

// ErrorTable maps a command keyword to the human-readable messages for the
// nonzero codes its handlers return.
type ErrorTable map[string]map[int]string

// FileLoader fetches script text for the src command. The engine never
// touches the file system directly; frontends and tests supply their own
// loaders.
type FileLoader interface {
	Load(path string) (string, error)
}

// OSFiles is the default FileLoader, backed by the operating system.
type OSFiles struct{}

// Load reads the file at path.
func (OSFiles) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Config controls an Environment and the modules attached to it
type Config struct {
	Debug       bool       // enable debug logging
	AliasMarker string     // alias dereference marker
	Output      io.Writer  // destination for the out command
	Files       FileLoader // collaborator the src command loads scripts through
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:       false,
		AliasMarker: DefaultAliasMarker,
		Output:      os.Stdout,
		Files:       OSFiles{},
	}
}
