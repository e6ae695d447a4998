package textbuf

import (
	"errors"
	"testing"
)

func TestNewFromString(t *testing.T) {
	b := NewFromString("hello")
	if b.Content() != "hello" {
		t.Errorf("Content() = %q, want %q", b.Content(), "hello")
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
}

func TestNewEmpty(t *testing.T) {
	b := New()
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		pos     int
		text    string
		want    string
		wantErr bool
	}{
		{"at start", "world", 0, "hello ", "hello world", false},
		{"at end", "hello", 5, " world", "hello world", false},
		{"in middle", "hd", 1, "ea", "head", false},
		{"into empty", "", 0, "x", "x", false},
		{"empty text", "abc", 1, "", "abc", false},
		{"negative position", "abc", -1, "x", "abc", true},
		{"past end", "abc", 4, "x", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			err := b.Insert(tt.pos, tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("Insert() error = %v, want ErrOutOfRange", err)
				}
			} else if err != nil {
				t.Fatalf("Insert() failed: %v", err)
			}
			if b.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", b.Content(), tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		pos, length int
		wantDeleted string
		want        string
		wantErr     bool
	}{
		{"from start", "hello world", 0, 6, "hello ", "world", false},
		{"from end", "hello world", 5, 6, " world", "hello", false},
		{"from middle", "hello world", 5, 1, " ", "helloworld", false},
		{"entire buffer", "abc", 0, 3, "abc", "", false},
		{"zero length", "abc", 1, 0, "", "abc", false},
		{"zero length past end", "abc", 99, 0, "", "abc", false},
		{"negative position", "abc", -1, 1, "", "abc", true},
		{"position at end", "abc", 3, 1, "", "abc", true},
		{"length past end", "abc", 5, 1, "", "abc", true},
		{"span past end", "abc", 2, 5, "", "abc", true},
		{"negative length", "abc", 1, -2, "", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			deleted, err := b.Delete(tt.pos, tt.length)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("Delete() error = %v, want ErrOutOfRange", err)
				}
			} else if err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("deleted = %q, want %q", deleted, tt.wantDeleted)
			}
			if b.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", b.Content(), tt.want)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		pos, length int
		text        string
		wantOld     string
		want        string
		wantErr     bool
	}{
		{"same length", "the quick fox", 4, 5, "brown", "quick", "the brown fox", false},
		{"shorter", "hello world", 0, 5, "hi", "hello", "hi world", false},
		{"longer", "hi world", 0, 2, "hello", "hi", "hello world", false},
		{"insert via zero length", "helloworld", 5, 0, " ", "", "hello world", false},
		{"delete via empty text", "hello world", 5, 6, "", " world", "hello", false},
		{"out of range", "abc", 5, 1, "x", "", "abc", true},
		{"zero length past end", "abc", 9, 0, "x", "", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			old, err := b.Replace(tt.pos, tt.length, tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("Replace() error = %v, want ErrOutOfRange", err)
				}
			} else if err != nil {
				t.Fatalf("Replace() failed: %v", err)
			}
			if old != tt.wantOld {
				t.Errorf("old = %q, want %q", old, tt.wantOld)
			}
			if b.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", b.Content(), tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	b := NewFromString("hello")
	prev := b.Clear()

	if prev != "hello" {
		t.Errorf("Clear() = %q, want %q", prev, "hello")
	}
	if !b.IsEmpty() {
		t.Error("buffer should be empty after Clear")
	}

	if b.Clear() != "" {
		t.Error("second Clear should return empty string")
	}
}

func TestMultibyteRunePositions(t *testing.T) {
	b := NewFromString("héllo wörld")

	if b.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", b.Len())
	}

	deleted, err := b.Delete(1, 4)
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if deleted != "éllo" {
		t.Errorf("deleted = %q, want %q", deleted, "éllo")
	}
	if b.Content() != "h wörld" {
		t.Errorf("Content() = %q, want %q", b.Content(), "h wörld")
	}

	if err := b.Insert(2, "ü"); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if b.Content() != "h üwörld" {
		t.Errorf("Content() = %q, want %q", b.Content(), "h üwörld")
	}
}

func TestFailedOperationLeavesBufferUnchanged(t *testing.T) {
	b := NewFromString("abc")

	if _, err := b.Delete(5, 1); err == nil {
		t.Fatal("expected error")
	}
	if b.Content() != "abc" {
		t.Errorf("Content() = %q after failed delete, want %q", b.Content(), "abc")
	}

	if _, err := b.Replace(2, 5, "xyz"); err == nil {
		t.Fatal("expected error")
	}
	if b.Content() != "abc" {
		t.Errorf("Content() = %q after failed replace, want %q", b.Content(), "abc")
	}
}
