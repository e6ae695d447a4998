package textbuf

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a position or length argument falls
// outside the buffer bounds.
var ErrOutOfRange = errors.New("position out of range")

// Buffer holds a mutable character sequence. The zero value is not
// usable; create buffers with New or NewFromString.
type Buffer struct {
	content []rune
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string) *Buffer {
	return &Buffer{content: []rune(s)}
}

// Content returns the full buffer content as a string.
func (b *Buffer) Content() string {
	return string(b.content)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.content)
}

// IsEmpty returns true if the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return len(b.content) == 0
}

// Insert inserts text at the given position. Position may equal Len,
// which appends.
func (b *Buffer) Insert(pos int, text string) error {
	if pos < 0 || pos > len(b.content) {
		return fmt.Errorf("insert at %d in buffer of length %d: %w", pos, len(b.content), ErrOutOfRange)
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	b.content = append(b.content[:pos], append(runes, b.content[pos:]...)...)
	return nil
}

// Delete removes length characters starting at pos and returns the
// removed text. A zero length is a no-op returning the empty string.
func (b *Buffer) Delete(pos, length int) (string, error) {
	if length == 0 {
		return "", nil
	}
	if pos < 0 || pos >= len(b.content) {
		return "", fmt.Errorf("delete at %d in buffer of length %d: %w", pos, len(b.content), ErrOutOfRange)
	}
	if length < 0 || pos+length > len(b.content) {
		return "", fmt.Errorf("delete %d chars at %d in buffer of length %d: %w", length, pos, len(b.content), ErrOutOfRange)
	}

	deleted := string(b.content[pos : pos+length])
	b.content = append(b.content[:pos], b.content[pos+length:]...)
	return deleted, nil
}

// Replace removes length characters at pos, inserts text in their place
// and returns the text that was removed.
func (b *Buffer) Replace(pos, length int, text string) (string, error) {
	old, err := b.Delete(pos, length)
	if err != nil {
		return "", err
	}
	if err := b.Insert(pos, text); err != nil {
		// Reachable only when length == 0, where Delete skips validation.
		return "", err
	}
	return old, nil
}

// Clear empties the buffer and returns the previous content.
func (b *Buffer) Clear() string {
	prev := string(b.content)
	b.content = nil
	return prev
}
