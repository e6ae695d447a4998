// Package history provides command-based undo/redo for a text buffer.
//
// Edits are reified as Commands that know how to execute themselves
// against a buffer and how to exactly reverse that execution. Key
// concepts:
//
// # Commands
//
// Commands implement the Command interface with Execute, Undo and
// Description methods. Built-in commands:
//   - InsertCommand: insert text at a position
//   - DeleteCommand: delete a span of characters
//   - ReplaceCommand: replace a span with new text
//   - AppendCommand: insert at the end of the buffer
//   - ClearCommand: empty the buffer
//   - MacroCommand: group commands into one atomic undo unit
//
// Each command captures the state it needs for reversal (deleted text,
// prior content, insertion position) during Execute. Calling Undo before
// a successful Execute is a guarded no-op.
//
// # History
//
// History keeps a bounded, ordered log of executed commands with a
// cursor marking the last applied entry:
//
//	h := history.New(100)
//	err := h.Execute(buf, history.NewInsertCommand(0, "hello"))
//	ok, err := h.Undo(buf)
//	ok, err = h.Redo(buf)
//
// The timeline is strictly linear: any successful Execute after one or
// more undos discards the redo branch. When the capacity is exceeded the
// oldest entry is evicted and that undo step is permanently lost.
package history
