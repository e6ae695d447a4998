// Package script embeds a sandboxed Lua interpreter for driving the
// editor from scripts.
//
// Scripts see a global `editor` table exposing the edit verbs, undo
// and redo, and a `macro` constructor that groups steps into a single
// undoable operation. Only the base, table, string and math libraries
// are opened; io, os, debug and module loading are unavailable.
package script
