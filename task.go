package dss

// Task is one unit of submitted script text. The script stays mutable while
// the task is being processed: preprocessors such as alias expansion rewrite
// it in place, and the command pass re-reads the rewritten text.
type Task struct {
	script string
}

// NewTask wraps script text in a task
func NewTask(script string) *Task {
	return &Task{script: script}
}

// Script returns the task's current script text
func (t *Task) Script() string {
	return t.script
}

// SetScript replaces the task's script text
func (t *Task) SetScript(script string) {
	t.script = script
}
