package main

import (
	"fmt"
	"io"

	"github.com/ashdyer/quill/internal/engine/editor"
	"github.com/ashdyer/quill/internal/engine/history"
)

// runDemo walks through the engine's features with a fresh editor per
// section, printing the document after each step.
func runDemo(w io.Writer, opts ...editor.Option) {
	fmt.Fprintf(w, "Quill: text editing with undo/redo\n\n")

	demoBasicCommands(w, opts)
	demoUndoRedo(w, opts)
	demoReplaceAndDelete(w, opts)
	demoMacro(w, opts)
	demoHistory(w, opts)
	demoStatistics(w, opts)
	demoClear(w, opts)
	demoRedoInvalidation(w, opts)

	fmt.Fprintln(w, "All demonstrations completed.")
}

func demoBasicCommands(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Basic Commands ===")
	ed := editor.New(opts...)

	ed.Insert(0, "Hello")
	fmt.Fprintf(w, "After insert: %q\n", ed.Content())

	ed.Append(" World")
	fmt.Fprintf(w, "After append: %q\n", ed.Content())

	ed.Insert(5, ",")
	fmt.Fprintf(w, "After insert comma: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoUndoRedo(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Undo and Redo ===")
	ed := editor.New(opts...)

	ed.Append("First")
	ed.Append(" Second")
	ed.Append(" Third")
	fmt.Fprintf(w, "After operations: %q\n", ed.Content())

	fmt.Fprintln(w, "\nUndoing...")
	ed.Undo()
	fmt.Fprintf(w, "After 1 undo: %q\n", ed.Content())
	ed.Undo()
	fmt.Fprintf(w, "After 2 undos: %q\n", ed.Content())

	fmt.Fprintln(w, "\nRedoing...")
	ed.Redo()
	fmt.Fprintf(w, "After 1 redo: %q\n", ed.Content())
	ed.Redo()
	fmt.Fprintf(w, "After 2 redos: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoReplaceAndDelete(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Replace and Delete ===")
	ed := editor.New(opts...)

	ed.Append("The quick brown fox")
	fmt.Fprintf(w, "Original: %q\n", ed.Content())

	ed.Replace(4, 5, "slow")
	fmt.Fprintf(w, "After replacing \"quick\" with \"slow\": %q\n", ed.Content())

	ed.Delete(9, 6)
	fmt.Fprintf(w, "After deleting \"brown \": %q\n", ed.Content())

	ed.Undo()
	fmt.Fprintf(w, "After undoing the delete: %q\n", ed.Content())
	ed.Undo()
	fmt.Fprintf(w, "After undoing the replace: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoMacro(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Macros ===")
	ed := editor.New(opts...)
	ed.Append("Chapter 1")

	fmt.Fprintln(w, "Formatting a heading with one macro...")
	ed.RunMacro("Format Heading",
		history.NewInsertCommand(0, "=== "),
		history.NewAppendCommand(" ==="),
	)
	fmt.Fprintf(w, "Result: %q\n", ed.Content())

	fmt.Fprintln(w, "\nUndoing the entire macro...")
	ed.Undo()
	fmt.Fprintf(w, "After undo: %q\n", ed.Content())

	fmt.Fprintln(w, "\nRedoing the macro...")
	ed.Redo()
	fmt.Fprintf(w, "After redo: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoHistory(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Command History ===")
	ed := editor.New(opts...)

	ed.Append("Hello")
	ed.Append(" ")
	ed.Append("World")
	ed.Insert(5, ",")
	ed.Replace(12, 0, "!")

	fmt.Fprintln(w, "History:")
	for i, desc := range ed.History() {
		fmt.Fprintf(w, "%d. %s\n", i+1, desc)
	}

	stats := ed.Stats()
	fmt.Fprintf(w, "\nCurrent position: %d/%d\n", stats.CurrentPosition+1, stats.HistorySize)
	fmt.Fprintf(w, "Content: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoStatistics(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Statistics ===")
	ed := editor.New(opts...)

	ed.Append("The Command Pattern")
	ed.Append(" is reversible")
	ed.Undo()
	ed.Undo()
	ed.Redo()

	stats := ed.Stats()
	fmt.Fprintln(w, "Current statistics:")
	fmt.Fprintf(w, "  Content length: %d characters\n", stats.ContentLength)
	fmt.Fprintf(w, "  History size: %d commands\n", stats.HistorySize)
	fmt.Fprintf(w, "  Can undo: %v\n", stats.CanUndo)
	fmt.Fprintf(w, "  Can redo: %v\n", stats.CanRedo)
	fmt.Fprintf(w, "  Current position: %d/%d\n", stats.CurrentPosition+1, stats.HistorySize)
	fmt.Fprintf(w, "\nContent: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoClear(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Clearing the Document ===")
	ed := editor.New(opts...)

	ed.Append("Important document content that took hours to write.")
	fmt.Fprintf(w, "Original: %q\n", ed.Content())

	ed.Clear()
	fmt.Fprintf(w, "After clear: %q\n", ed.Content())

	fmt.Fprintln(w, "\nUndoing the clear...")
	ed.Undo()
	fmt.Fprintf(w, "After undo: %q\n", ed.Content())

	fmt.Fprintln(w)
}

func demoRedoInvalidation(w io.Writer, opts []editor.Option) {
	fmt.Fprintln(w, "=== Redo Invalidation ===")
	ed := editor.New(opts...)

	ed.Append("One")
	ed.Append(" Two")
	ed.Append(" Three")

	ed.Undo()
	ed.Undo()
	fmt.Fprintf(w, "After 2 undos: %q\n", ed.Content())
	fmt.Fprintf(w, "Can redo: %v\n", ed.CanRedo())

	ed.Append(" Four")
	fmt.Fprintf(w, "\nAfter a new edit: %q\n", ed.Content())
	fmt.Fprintf(w, "Can redo: %v (the redo entries were discarded)\n", ed.CanRedo())

	fmt.Fprintln(w)
}
