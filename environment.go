package dss

import "sync"

// Environment is the factory and directory for executors. Modules graft
// themselves onto an environment by connecting definer handlers and
// registering error tables; every executor spawned afterwards carries a
// snapshot of both, so later registrations never change an executor that
// already exists.
type Environment struct {
	mu sync.RWMutex

	config *Config
	logger *Logger

	preprocDefiners *Delegate
	commandDefiners *Delegate
	errorTables     ErrorTable

	executors []*Executor
	nextID    int
}

// New creates an environment. A nil config uses DefaultConfig.
func New(config *Config) *Environment {
	if config == nil {
		config = DefaultConfig()
	}
	return &Environment{
		config:          config,
		logger:          NewLogger(config.Debug),
		preprocDefiners: NewDelegate(),
		commandDefiners: NewDelegate(),
		errorTables:     make(ErrorTable),
	}
}

// Config returns the environment's configuration
func (env *Environment) Config() *Config {
	return env.config
}

// Logger returns the environment's logger
func (env *Environment) Logger() *Logger {
	return env.logger
}

// RegisterPreprocDefiner connects a definer that populates the
// preprocessor pass of executors spawned after this call.
func (env *Environment) RegisterPreprocDefiner(d Definer) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.preprocDefiners.Connect(d)
	env.logger.DebugCat(CatCommand, "preprocessor definer registered (%d total)", env.preprocDefiners.Len())
}

// RegisterCommandDefiner connects a definer that populates the command
// pass of executors spawned after this call.
func (env *Environment) RegisterCommandDefiner(d Definer) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.commandDefiners.Connect(d)
	env.logger.DebugCat(CatCommand, "command definer registered (%d total)", env.commandDefiners.Len())
}

// RegisterErrorTable merges a module's error messages into the
// environment. A command keyword that already has entries keeps them: the
// module that registered a keyword first owns its messages.
func (env *Environment) RegisterErrorTable(table ErrorTable) {
	env.mu.Lock()
	defer env.mu.Unlock()
	for keyword, codes := range table {
		if _, exists := env.errorTables[keyword]; exists {
			continue
		}
		copied := make(map[int]string, len(codes))
		for code, message := range codes {
			copied[code] = message
		}
		env.errorTables[keyword] = copied
	}
}

// NewExecutor spawns an executor carrying a snapshot of the definers and
// error tables registered so far. Ids are assigned monotonically from
// zero in spawn order.
func (env *Environment) NewExecutor(name string) *Executor {
	env.mu.Lock()
	defer env.mu.Unlock()

	id := env.nextID
	env.nextID++

	tables := make(ErrorTable, len(env.errorTables))
	for keyword, codes := range env.errorTables {
		copied := make(map[int]string, len(codes))
		for code, message := range codes {
			copied[code] = message
		}
		tables[keyword] = copied
	}

	ex := newExecutor(id, name, env.preprocDefiners.clone(), env.commandDefiners.clone(), tables, env.logger)
	env.executors = append(env.executors, ex)
	env.logger.DebugCat(CatTask, "spawned executor %d (%s)", id, name)
	return ex
}

// MainExecutor returns the first executor spawned, the conventional root
// executor frontends submit to. The second result is false when no
// executor has been spawned yet.
func (env *Environment) MainExecutor() (*Executor, bool) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	if len(env.executors) == 0 {
		return nil, false
	}
	return env.executors[0], true
}

// ExecutorByID looks up an executor by its id.
func (env *Environment) ExecutorByID(id int) (*Executor, bool) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	for _, ex := range env.executors {
		if ex.ID() == id {
			return ex, true
		}
	}
	return nil, false
}

// Executors returns a copy of the spawned executor list in spawn order.
func (env *Environment) Executors() []*Executor {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return append([]*Executor(nil), env.executors...)
}

// RegisterStandardLibrary grafts the built-in shell and alias modules onto
// the environment using its configured output writer, file loader, and
// alias marker. Call it before spawning executors that should carry the
// standard command set.
func (env *Environment) RegisterStandardLibrary() {
	NewShellModule(env.config.Output, env.config.Files, env.logger).Attach(env)
	NewAliasModule(env.config.AliasMarker, env.logger).Attach(env)
}
