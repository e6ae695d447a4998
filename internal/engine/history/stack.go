package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/ashdyer/quill/internal/engine/textbuf"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 100

// entry wraps an executed command with metadata.
type entry struct {
	id        uuid.UUID
	command   Command
	timestamp time.Time
}

// EntryInfo provides read-only information about a history entry, used
// for displaying the undo/redo log to users.
type EntryInfo struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
}

// History is a bounded, ordered log of executed commands with a cursor
// marking the last applied entry. Entries past the cursor form the redo
// branch; any new Execute discards them. The timeline is strictly
// linear - there is no redo tree.
//
// History is not safe for concurrent use; it is exclusively owned by
// one Editor.
type History struct {
	entries  []entry
	cursor   int // index of last executed entry, -1 = none
	capacity int
}

// New creates an empty history with the given capacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		cursor:   -1,
		capacity: capacity,
	}
}

// Execute runs a command against the buffer and appends it to the log.
// The redo branch, if any, is discarded. On failure the error propagates
// and the history is left untouched: a failed command is never recorded.
func (h *History) Execute(buf *textbuf.Buffer, cmd Command) error {
	if err := cmd.Execute(buf); err != nil {
		return err
	}

	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, entry{
		id:        uuid.New(),
		command:   cmd,
		timestamp: time.Now(),
	})
	h.cursor++

	h.evict()
	return nil
}

// evict drops the oldest entries until the log fits the capacity.
// Evicted undo steps are permanently lost.
func (h *History) evict() {
	if excess := len(h.entries) - h.capacity; excess > 0 {
		h.entries = h.entries[excess:]
		h.cursor -= excess
		if h.cursor < -1 {
			h.cursor = -1
		}
	}
}

// Undo reverses the entry at the cursor and moves the cursor back.
// Returns false if there is nothing to undo. A buffer failure leaves
// the cursor where it was.
func (h *History) Undo(buf *textbuf.Buffer) (bool, error) {
	if h.cursor < 0 {
		return false, nil
	}
	if err := h.entries[h.cursor].command.Undo(buf); err != nil {
		return false, err
	}
	h.cursor--
	return true, nil
}

// Redo re-executes the entry just past the cursor and advances it.
// Returns false if there is nothing to redo.
func (h *History) Redo(buf *textbuf.Buffer) (bool, error) {
	if h.cursor >= len(h.entries)-1 {
		return false, nil
	}
	if err := h.entries[h.cursor+1].command.Execute(buf); err != nil {
		return false, err
	}
	h.cursor++
	return true, nil
}

// CanUndo returns true if at least one entry can be undone.
func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo returns true if an undone entry can be re-applied.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Labels returns the description of every entry, oldest first,
// including the redo branch.
func (h *History) Labels() []string {
	labels := make([]string, len(h.entries))
	for i, e := range h.entries {
		labels[i] = e.command.Description()
	}
	return labels
}

// Entries returns read-only info about every entry, oldest first.
func (h *History) Entries() []EntryInfo {
	infos := make([]EntryInfo, len(h.entries))
	for i, e := range h.entries {
		infos[i] = EntryInfo{
			ID:          e.id,
			Description: e.command.Description(),
			Timestamp:   e.timestamp,
		}
	}
	return infos
}

// Position returns the cursor: the index of the last executed entry,
// or -1 when nothing is executed.
func (h *History) Position() int {
	return h.cursor
}

// Size returns the number of entries in the log.
func (h *History) Size() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries retained.
func (h *History) Capacity() int {
	return h.capacity
}

// SetCapacity changes the maximum number of entries. Shrinking below
// the current size evicts the oldest entries immediately.
func (h *History) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h.capacity = capacity
	h.evict()
}

// Clear resets the history to its initial empty state.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = -1
}
