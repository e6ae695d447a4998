// Package textbuf provides the mutable text buffer at the core of the
// editing engine. It performs raw insert, delete, replace and clear
// operations with strict bounds checking.
//
// Positions and lengths are measured in characters (runes), not bytes,
// so multi-byte text behaves the way a user counts it.
//
// The buffer is mutated exclusively through command execution and undo;
// client code reads it via Content and Len. A Buffer is owned by a single
// Editor and is not safe for concurrent use - an embedding application
// that needs multi-goroutine access must serialize calls externally.
package textbuf
