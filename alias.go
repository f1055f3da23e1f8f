package dss

import (
	"sort"
	"strings"
)

// AliasVar is the reserved variable id holding alias records.
const AliasVar = "alias"

// aliasUse is the preprocessor command that applies aliases; it is the
// name recorded in the auto-preprocessor variable.
const aliasUse = "alias"

// DefaultAliasMarker prefixes an alias id in script text to form its
// dereference.
const DefaultAliasMarker = "$"

// UseAlias flags the alias preprocessor to run automatically before the
// command pass of every later task on the executor. Flagging is
// idempotent; the preprocessor runs once per task no matter how often an
// alias is defined.
func UseAlias(ex *Executor) {
	ex.Vars().GetOrCreate(AutoPreprocVar).Append(PreprocName(aliasUse))
}

// CreateAlias records an alias in the executor's store. Redefining an id
// replaces its value in place, so ids stay unique and keep their original
// position.
func CreateAlias(ex *Executor, id, text string) int {
	v := ex.Vars().GetOrCreate(AliasVar)
	rec := Alias{ID: id, Text: text}
	for i, val := range v.Values() {
		a, ok := val.(Alias)
		if !ok {
			continue
		}
		if a.ID == id {
			v.Set(i, rec)
			return StatusOK
		}
	}
	v.Append(rec)
	return StatusOK
}

// AliasModule grafts text-substitution macros onto an environment: an
// alias_def command that records id/value pairs and a self-reactivating
// alias preprocessor that rewrites marker-prefixed ids in the current
// task's script. The module closes over its dereference marker, so
// environments can configure the marker without global state.
type AliasModule struct {
	marker string
	logger *Logger
}

// NewAliasModule creates the module with the given dereference marker. An
// empty marker falls back to the default; without a marker every id would
// match its own bare spelling anywhere in a script.
func NewAliasModule(marker string, logger *Logger) *AliasModule {
	if marker == "" {
		marker = DefaultAliasMarker
	}
	return &AliasModule{marker: marker, logger: logger}
}

// Attach connects the module's definer and error table to an environment.
// Executors spawned afterwards carry the alias commands in their
// preprocessor pass.
func (m *AliasModule) Attach(env *Environment) {
	env.RegisterPreprocDefiner(HandlerFunc(m.define))
	env.RegisterErrorTable(m.ErrorTable())
}

// ErrorTable returns the messages for the module's nonzero codes.
func (m *AliasModule) ErrorTable() ErrorTable {
	return ErrorTable{
		"alias_def": {1: errInternalNull},
		aliasUse: {1: "internal interpreter error, automatic command failure, critical data unexpectedly returned null. " +
			"\n\nhelp: did you mean \"alias_def\"?"},
	}
}

func (m *AliasModule) define(ex *Executor, _ []string) int {
	ex.RegisterArity(HandlerFunc(m.aliasDef), "alias_def", "creates an alias", 2, NoLimit)
	ex.Register(HandlerFunc(m.expand), aliasUse, "applies defined aliases to the current task")
	return StatusOK
}

// aliasDef records an alias: the first argument is the id, the remaining
// arguments joined by single spaces are the value.
func (m *AliasModule) aliasDef(ex *Executor, args []string) int {
	UseAlias(ex)
	id := args[0]
	text := strings.Join(args[1:], tokenDelim)
	m.logger.DebugCat(CatAlias, "alias defined: %s -> %q", id, text)
	return CreateAlias(ex, id, text)
}

// expand rewrites every marker-prefixed alias id in the current task's
// script with the alias value, longest id first so a short id never
// captures the front of a longer one. Running with no current task or
// before any alias exists fails with code 1; the usual cause is a bare
// "alias" statement in a script that never called alias_def.
func (m *AliasModule) expand(ex *Executor, _ []string) int {
	t := ex.CurrentTask()
	if t == nil {
		return 1
	}
	v, ok := ex.Vars().Lookup(AliasVar)
	if !ok {
		return 1
	}

	aliases := make([]Alias, 0, v.Len())
	for _, val := range v.Values() {
		if a, ok := val.(Alias); ok {
			aliases = append(aliases, a)
		}
	}
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i].ID) > len(aliases[j].ID)
	})

	script := t.Script()
	for _, a := range aliases {
		script = strings.ReplaceAll(script, m.marker+a.ID, a.Text)
	}
	t.SetScript(script)
	m.logger.DebugCat(CatAlias, "applied %d aliases", len(aliases))
	return StatusOK
}
