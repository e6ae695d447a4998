package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/ashdyer/quill/internal/engine/textbuf"
)

// Command represents a reversible edit action against a buffer.
// The buffer is passed to Execute and Undo rather than stored, so a
// command never aliases the buffer it targets.
type Command interface {
	// Execute performs the forward mutation, capturing whatever state
	// is needed for Undo.
	Execute(buf *textbuf.Buffer) error

	// Undo exactly reverses the effect of the most recent Execute.
	// Without a prior successful Execute it is a no-op.
	Undo(buf *textbuf.Buffer) error

	// Description returns a human-readable label for history display.
	Description() string
}

// previewLimit is the maximum number of characters shown for text
// arguments in command descriptions.
const previewLimit = 20

// preview truncates text for display in descriptions.
func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLimit]) + "..."
}

// InsertCommand inserts text at a fixed position.
type InsertCommand struct {
	Position int
	Text     string

	executed bool
}

// NewInsertCommand creates a command that inserts text at pos.
func NewInsertCommand(pos int, text string) *InsertCommand {
	return &InsertCommand{Position: pos, Text: text}
}

// Execute inserts the text.
func (c *InsertCommand) Execute(buf *textbuf.Buffer) error {
	if err := buf.Insert(c.Position, c.Text); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo deletes the inserted span. A no-op unless Execute succeeded,
// preventing double-deletion on repeated undo.
func (c *InsertCommand) Undo(buf *textbuf.Buffer) error {
	if !c.executed {
		return nil
	}
	if _, err := buf.Delete(c.Position, utf8.RuneCountInString(c.Text)); err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description returns a human-readable label.
func (c *InsertCommand) Description() string {
	return fmt.Sprintf("Insert %q at %d", preview(c.Text), c.Position)
}

// DeleteCommand deletes a span of characters, remembering the deleted
// text so it can be restored.
type DeleteCommand struct {
	Position int
	Length   int

	deleted  string
	captured bool
}

// NewDeleteCommand creates a command that deletes length characters at pos.
func NewDeleteCommand(pos, length int) *DeleteCommand {
	return &DeleteCommand{Position: pos, Length: length}
}

// Execute deletes the span and captures the removed text.
func (c *DeleteCommand) Execute(buf *textbuf.Buffer) error {
	deleted, err := buf.Delete(c.Position, c.Length)
	if err != nil {
		return err
	}
	c.deleted = deleted
	c.captured = true
	return nil
}

// Undo reinserts the deleted text. The capture is kept so a redo
// (re-Execute) recaptures it cleanly.
func (c *DeleteCommand) Undo(buf *textbuf.Buffer) error {
	if !c.captured {
		return nil
	}
	return buf.Insert(c.Position, c.deleted)
}

// Description returns a human-readable label.
func (c *DeleteCommand) Description() string {
	return fmt.Sprintf("Delete %d chars at %d", c.Length, c.Position)
}

// ReplaceCommand replaces a span with new text, remembering the text
// it displaced.
type ReplaceCommand struct {
	Position int
	Length   int
	Text     string

	oldText  string
	captured bool
}

// NewReplaceCommand creates a command that replaces length characters
// at pos with text.
func NewReplaceCommand(pos, length int, text string) *ReplaceCommand {
	return &ReplaceCommand{Position: pos, Length: length, Text: text}
}

// Execute replaces the span and captures the removed text.
func (c *ReplaceCommand) Execute(buf *textbuf.Buffer) error {
	old, err := buf.Replace(c.Position, c.Length, c.Text)
	if err != nil {
		return err
	}
	c.oldText = old
	c.captured = true
	return nil
}

// Undo swaps the replacement back out for the captured original.
func (c *ReplaceCommand) Undo(buf *textbuf.Buffer) error {
	if !c.captured {
		return nil
	}
	_, err := buf.Replace(c.Position, utf8.RuneCountInString(c.Text), c.oldText)
	return err
}

// Description returns a human-readable label.
func (c *ReplaceCommand) Description() string {
	return fmt.Sprintf("Replace %d chars with %q at %d", c.Length, preview(c.Text), c.Position)
}

// AppendCommand inserts text at the end of the buffer, capturing the
// insertion point at execute time.
type AppendCommand struct {
	Text string

	position int
	executed bool
}

// NewAppendCommand creates a command that appends text.
func NewAppendCommand(text string) *AppendCommand {
	return &AppendCommand{Text: text}
}

// Execute inserts the text at the current end of the buffer.
func (c *AppendCommand) Execute(buf *textbuf.Buffer) error {
	pos := buf.Len()
	if err := buf.Insert(pos, c.Text); err != nil {
		return err
	}
	c.position = pos
	c.executed = true
	return nil
}

// Undo deletes the appended span.
func (c *AppendCommand) Undo(buf *textbuf.Buffer) error {
	if !c.executed {
		return nil
	}
	if _, err := buf.Delete(c.position, utf8.RuneCountInString(c.Text)); err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description returns a human-readable label.
func (c *AppendCommand) Description() string {
	return fmt.Sprintf("Append %q", preview(c.Text))
}

// ClearCommand empties the buffer, capturing the full prior content.
type ClearCommand struct {
	prev     string
	captured bool
}

// NewClearCommand creates a command that clears the buffer.
func NewClearCommand() *ClearCommand {
	return &ClearCommand{}
}

// Execute clears the buffer and captures the previous content.
func (c *ClearCommand) Execute(buf *textbuf.Buffer) error {
	c.prev = buf.Clear()
	c.captured = true
	return nil
}

// Undo restores the captured content at the start of the buffer.
func (c *ClearCommand) Undo(buf *textbuf.Buffer) error {
	if !c.captured {
		return nil
	}
	return buf.Insert(0, c.prev)
}

// Description returns a human-readable label.
func (c *ClearCommand) Description() string {
	return "Clear document"
}
