// Package editor binds a text buffer to a command history behind a
// small façade of editing verbs. Each verb constructs the matching
// command and routes it through the history, so every edit is undoable.
//
//	ed := editor.New(editor.WithCapacity(50))
//	ed.Append("Hello")
//	ed.Insert(5, ", World")
//	ok, _ := ed.Undo()
//
// An Editor owns its buffer and history exclusively; a presentation
// layer reads Content, History and Stats but never mutates state
// directly. Editors are not safe for concurrent use.
package editor
