package dss

import "strings"

// Statement and token delimiters for task scripts. A script is a flat list
// of statements, a statement a flat list of tokens; there is no quoting,
// escaping, or nesting.
const (
	lineDelim  = "\n"
	tokenDelim = " "
)

// AutoPreprocVar is the reserved variable id listing preprocessor command
// names that run automatically before the command pass of every task.
const AutoPreprocVar = "auto_preprocessor"

// errUnknown is reported when a handler returns a nonzero code that no
// registered error table has a message for.
const errUnknown = "an unnamed critical exception occurred"

// Executor owns one variable store and one task queue and runs the
// two-phase pipeline over every task it drains: the preprocessor pass, the
// automatic preprocessors, then the command pass against the possibly
// rewritten script. Executors are spawned by an Environment and are
// single-driver: one caller at a time drives Submit on a given executor.
type Executor struct {
	id   int
	name string

	vars   *VarStore
	active []*Command

	queue  []*Task
	buffer []*Task
	busy   bool

	currentTask *Task

	preprocDefiners *Delegate
	commandDefiners *Delegate
	errorTables     ErrorTable

	diagnostics []Diagnostic
	logger      *Logger
}

func newExecutor(id int, name string, preproc, command *Delegate, tables ErrorTable, logger *Logger) *Executor {
	return &Executor{
		id:              id,
		name:            name,
		vars:            NewVarStore(logger),
		preprocDefiners: preproc,
		commandDefiners: command,
		errorTables:     tables,
		logger:          logger,
	}
}

// ID returns the executor's environment-unique id
func (ex *Executor) ID() int {
	return ex.id
}

// Name returns the executor's display name
func (ex *Executor) Name() string {
	return ex.name
}

// Vars returns the executor's variable store
func (ex *Executor) Vars() *VarStore {
	return ex.vars
}

// CurrentTask returns the task currently being executed, or nil outside of
// task execution. Preprocessor handlers use it to rewrite the script.
func (ex *Executor) CurrentTask() *Task {
	return ex.currentTask
}

// Register adds a command with unbounded arguments to the active set. The
// returned command accepts further handlers via Connect.
func (ex *Executor) Register(h Handler, name, description string) *Command {
	return ex.RegisterArity(h, name, description, NoLimit, NoLimit)
}

// RegisterArity adds a command with the given argument bounds to the
// active set; NoLimit leaves a bound unchecked. Registration always
// appends, even when the keyword is already present: dispatch resolves
// duplicate keywords in favor of the later entry.
func (ex *Executor) RegisterArity(h Handler, name, description string, minArgs, maxArgs int) *Command {
	cmd := &Command{
		name:        name,
		description: description,
		minArgs:     minArgs,
		maxArgs:     maxArgs,
		delegate:    NewDelegate(),
		executor:    ex,
	}
	cmd.delegate.Connect(h)
	ex.active = append(ex.active, cmd)
	ex.logger.DebugCat(CatCommand, "registered command: %s", name)
	return cmd
}

// Submit wraps script text in a fresh task, enqueues it, and drives a full
// drain of the queue. Submitting from inside a handler only enqueues; the
// drain already in progress is not reentered.
func (ex *Executor) Submit(script string) {
	ex.queue = append(ex.queue, NewTask(script))
	ex.logger.DebugCat(CatQueue, "task submitted to executor %d (%d queued)", ex.id, len(ex.queue))
	ex.execAllTasks()
}

// Queue buffers a follow-up task without driving execution. Buffered tasks
// run after every task of the current drain round has finished, so scripts
// sourced by a task start only once that task's remaining statements are
// done.
func (ex *Executor) Queue(t *Task) {
	ex.buffer = append(ex.buffer, t)
	ex.logger.DebugCat(CatQueue, "task buffered on executor %d (%d waiting)", ex.id, len(ex.buffer))
}

// Diagnostics returns a copy of the diagnostics recorded so far.
func (ex *Executor) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), ex.diagnostics...)
}

// ClearDiagnostics discards the recorded diagnostics. Interactive
// frontends call this between inputs.
func (ex *Executor) ClearDiagnostics() {
	ex.diagnostics = nil
}

func (ex *Executor) pushDiagnostic(line int, command, message string) {
	ex.diagnostics = append(ex.diagnostics, Diagnostic{Line: line, Command: command, Message: message})
	ex.logger.ErrorAt(CatCommand, line, "%s", message)
}

// findAndPushError resolves a nonzero handler code against the error
// tables and records the resulting diagnostic. A keyword or code with no
// table entry falls back to the generic message.
func (ex *Executor) findAndPushError(keyword string, code, line int) {
	message := errUnknown
	if codes, ok := ex.errorTables[keyword]; ok {
		if m, ok := codes[code]; ok {
			message = m
		}
	}
	ex.pushDiagnostic(line, keyword, message)
}

func splitStatements(script string) []string {
	return strings.Split(script, lineDelim)
}

// splitTokens tokenizes one statement, dropping empty tokens so blank and
// whitespace-only statements come back empty.
func splitTokens(statement string) []string {
	var tokens []string
	for _, tok := range strings.Split(statement, tokenDelim) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// directExec dispatches statements against the active command set. Every
// statement tries every active command in registration order and the last
// non-empty attempt result stands, so a later duplicate keyword shadows an
// earlier one. A statement with no match is skipped silently, and a failed
// statement never stops the rest of the batch.
func (ex *Executor) directExec(statements []string) {
	for i, statement := range statements {
		tokens := splitTokens(statement)
		if len(tokens) == 0 {
			continue
		}
		line := i + 1

		var res []int
		for _, cmd := range ex.active {
			attempt := cmd.Attempt(tokens, line)
			if len(attempt) == 0 {
				continue
			}
			res = attempt
		}
		if len(res) == 0 {
			continue
		}
		if res[0] == StatusOK {
			continue
		}
		ex.findAndPushError(tokens[0], res[0], line)
	}
}

// commandPass rebuilds the active command set through the given definers,
// then dispatches the statements against it. Clearing first guarantees a
// pass only ever sees commands its own definers registered.
func (ex *Executor) commandPass(definers *Delegate, statements []string) {
	ex.active = nil
	definers.Call(ex, nil)
	ex.directExec(statements)
}

// autoPreprocessors dispatches the command names recorded in the reserved
// auto-preprocessor variable, in recorded order. Values of other kinds in
// the variable are ignored.
func (ex *Executor) autoPreprocessors() {
	v := ex.vars.GetOrCreate(AutoPreprocVar)
	var statements []string
	for _, val := range v.Values() {
		if name, ok := val.(PreprocName); ok {
			statements = append(statements, string(name))
		}
	}
	ex.directExec(statements)
}

func (ex *Executor) execTask(t *Task) {
	ex.currentTask = t
	ex.logger.DebugCat(CatTask, "task started on executor %d", ex.id)

	statements := splitStatements(t.Script())
	ex.commandPass(ex.preprocDefiners, statements)
	ex.autoPreprocessors()

	// Preprocessors may have rewritten the script; the command pass has
	// to re-split rather than reuse the stale statements.
	statements = splitStatements(t.Script())
	ex.commandPass(ex.commandDefiners, statements)

	ex.currentTask = nil
	ex.logger.DebugCat(CatTask, "task finished on executor %d", ex.id)
}

// execAllTasks drains the queue round by round: snapshot the queue, run
// every task in it, then splice the buffer in as the next round. Tasks a
// handler buffers mid-round therefore run in level order, a full round
// later than the task that queued them. The busy flag keeps a handler's
// own Submit from reentering the drain.
func (ex *Executor) execAllTasks() {
	if len(ex.queue) == 0 || ex.busy {
		return
	}
	ex.busy = true
	for {
		snapshot := ex.queue
		for _, t := range snapshot {
			ex.execTask(t)
		}
		ex.queue = nil
		if len(ex.buffer) == 0 {
			break
		}
		ex.queue = ex.buffer
		ex.buffer = nil
	}
	ex.busy = false
}
