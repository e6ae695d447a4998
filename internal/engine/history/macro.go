package history

import (
	"fmt"

	"github.com/ashdyer/quill/internal/engine/textbuf"
)

// MacroCommand groups an ordered list of commands into a single undo
// unit. From the history's point of view a macro is one entry, so a
// multi-step edit is undone and redone in one step.
type MacroCommand struct {
	Label    string
	Commands []Command

	executed []Command
}

// NewMacroCommand creates a macro with the given label and children.
func NewMacroCommand(label string, commands ...Command) *MacroCommand {
	return &MacroCommand{Label: label, Commands: commands}
}

// Add appends a child command to the macro.
func (c *MacroCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// Len returns the number of child commands.
func (c *MacroCommand) Len() int {
	return len(c.Commands)
}

// IsEmpty returns true if the macro has no child commands.
func (c *MacroCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

// Execute runs the children in order, recording each one that succeeds.
// On a mid-sequence failure execution stops; children that already ran
// stay recorded and are NOT rolled back. Callers who need all-or-nothing
// semantics must validate every step before building the macro, or call
// Undo explicitly after a failure.
func (c *MacroCommand) Execute(buf *textbuf.Buffer) error {
	c.executed = nil
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf); err != nil {
			return fmt.Errorf("macro %q step %d: %w", c.Label, i, err)
		}
		c.executed = append(c.executed, cmd)
	}
	return nil
}

// Undo reverses exactly the children that Execute succeeded on, in
// reverse order, then forgets them so a second Undo is a no-op.
func (c *MacroCommand) Undo(buf *textbuf.Buffer) error {
	for i := len(c.executed) - 1; i >= 0; i-- {
		if err := c.executed[i].Undo(buf); err != nil {
			return fmt.Errorf("undo macro %q step %d: %w", c.Label, i, err)
		}
	}
	c.executed = nil
	return nil
}

// Description returns "label (n operations)".
func (c *MacroCommand) Description() string {
	return fmt.Sprintf("%s (%d operations)", c.Label, len(c.Commands))
}
