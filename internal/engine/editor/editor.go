package editor

import (
	"github.com/ashdyer/quill/internal/engine/history"
	"github.com/ashdyer/quill/internal/engine/textbuf"
	"github.com/ashdyer/quill/internal/log"
)

// Editor binds one buffer and one history and exposes high-level
// editing verbs.
type Editor struct {
	buf    *textbuf.Buffer
	hist   *history.History
	logger *log.Logger
}

// Option is a functional option for configuring an Editor.
type Option func(*Editor)

// WithContent sets the initial buffer content.
func WithContent(s string) Option {
	return func(e *Editor) {
		e.buf = textbuf.NewFromString(s)
	}
}

// WithCapacity sets the history capacity.
func WithCapacity(n int) Option {
	return func(e *Editor) {
		e.hist = history.New(n)
	}
}

// WithLogger sets the logger used for edit tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		e.logger = l.WithComponent("editor")
	}
}

// New creates an editor with an empty buffer and a default-capacity
// history.
func New(opts ...Option) *Editor {
	e := &Editor{
		buf:    textbuf.New(),
		hist:   history.New(history.DefaultCapacity),
		logger: log.Nop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// execute routes a command through the history and traces the outcome.
func (e *Editor) execute(cmd history.Command) error {
	if err := e.hist.Execute(e.buf, cmd); err != nil {
		e.logger.Debug("edit rejected: %v", err)
		return err
	}
	e.logger.Debug("executed: %s", cmd.Description())
	return nil
}

// Insert inserts text at the given position.
func (e *Editor) Insert(pos int, text string) error {
	return e.execute(history.NewInsertCommand(pos, text))
}

// Delete removes length characters starting at pos.
func (e *Editor) Delete(pos, length int) error {
	return e.execute(history.NewDeleteCommand(pos, length))
}

// Replace replaces length characters at pos with text.
func (e *Editor) Replace(pos, length int, text string) error {
	return e.execute(history.NewReplaceCommand(pos, length, text))
}

// Append inserts text at the end of the buffer.
func (e *Editor) Append(text string) error {
	return e.execute(history.NewAppendCommand(text))
}

// Clear empties the buffer.
func (e *Editor) Clear() error {
	return e.execute(history.NewClearCommand())
}

// RunMacro executes the given commands as a single undo unit.
// On a mid-sequence failure the already-executed steps are not rolled
// back, and the partial macro is not recorded in the history.
func (e *Editor) RunMacro(label string, cmds ...history.Command) error {
	return e.execute(history.NewMacroCommand(label, cmds...))
}

// Undo reverses the most recent edit. Returns false if there is
// nothing to undo.
func (e *Editor) Undo() (bool, error) {
	ok, err := e.hist.Undo(e.buf)
	if err != nil {
		e.logger.Debug("undo failed: %v", err)
		return false, err
	}
	if ok {
		e.logger.Debug("undo: position now %d", e.hist.Position())
	}
	return ok, nil
}

// Redo re-applies the most recently undone edit. Returns false if
// there is nothing to redo.
func (e *Editor) Redo() (bool, error) {
	ok, err := e.hist.Redo(e.buf)
	if err != nil {
		e.logger.Debug("redo failed: %v", err)
		return false, err
	}
	if ok {
		e.logger.Debug("redo: position now %d", e.hist.Position())
	}
	return ok, nil
}

// CanUndo returns true if an edit can be undone.
func (e *Editor) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo returns true if an undone edit can be re-applied.
func (e *Editor) CanRedo() bool {
	return e.hist.CanRedo()
}

// Content returns the current buffer content.
func (e *Editor) Content() string {
	return e.buf.Content()
}

// Length returns the number of characters in the buffer.
func (e *Editor) Length() int {
	return e.buf.Len()
}

// History returns the description of every history entry, oldest first.
func (e *Editor) History() []string {
	return e.hist.Labels()
}

// Entries returns detailed info about every history entry, oldest first.
func (e *Editor) Entries() []history.EntryInfo {
	return e.hist.Entries()
}

// ClearHistory discards all undo/redo state, leaving the buffer as is.
func (e *Editor) ClearHistory() {
	e.hist.Clear()
}

// SetHistoryCapacity changes the number of undo steps retained.
func (e *Editor) SetHistoryCapacity(n int) {
	e.hist.SetCapacity(n)
	e.logger.Debug("history capacity set to %d", e.hist.Capacity())
}

// Statistics is a snapshot of editor state for display.
type Statistics struct {
	ContentLength   int
	HistorySize     int
	CanUndo         bool
	CanRedo         bool
	CurrentPosition int
}

// Stats returns a snapshot of the editor's current state.
func (e *Editor) Stats() Statistics {
	return Statistics{
		ContentLength:   e.buf.Len(),
		HistorySize:     e.hist.Size(),
		CanUndo:         e.hist.CanUndo(),
		CanRedo:         e.hist.CanRedo(),
		CurrentPosition: e.hist.Position(),
	}
}
