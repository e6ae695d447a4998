package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ashdyer/quill/internal/engine/editor"
	"github.com/ashdyer/quill/internal/engine/history"
	"github.com/ashdyer/quill/internal/log"
)

// ErrEngineClosed is returned when executing on a closed engine.
var ErrEngineClosed = errors.New("script engine closed")

// DefaultInstructionLimit caps instructions per script execution.
// NOTE: Advisory only; gopher-lua provides no instruction hook, so the
// limit documents intent rather than enforcing a hard cutoff.
const DefaultInstructionLimit = 10_000_000

// Engine runs Lua scripts against an editor.
//
// gopher-lua's LState is not goroutine-safe; an Engine must be driven
// from a single goroutine.
type Engine struct {
	L  *lua.LState
	ed *editor.Editor

	logger           *log.Logger
	instructionLimit int64
	closed           bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to trace script execution.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l.WithComponent("script")
		}
	}
}

// WithInstructionLimit sets the advisory instruction limit.
func WithInstructionLimit(limit int64) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.instructionLimit = limit
		}
	}
}

// New creates a sandboxed engine bound to the given editor.
func New(ed *editor.Editor, opts ...Option) *Engine {
	e := &Engine{
		ed:               ed,
		logger:           log.Nop,
		instructionLimit: DefaultInstructionLimit,
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	e.L = L

	openSafeLibraries(L)
	removeUnsafeGlobals(L)
	e.registerEditorModule()

	return e
}

// openSafeLibraries opens only libraries that cannot reach outside
// the interpreter. io, os and debug stay closed. The package library
// is needed for require and module preloading; removeUnsafeGlobals
// strips its filesystem search paths.
func openSafeLibraries(L *lua.LState) {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // must be first
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// removeUnsafeGlobals strips base-library functions that load code
// from outside the script and disables require's disk search paths,
// leaving only preloaded modules reachable.
func removeUnsafeGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
}

// registerEditorModule builds the `editor` table and installs it both
// as a global and as a preloaded module, so plain access and
// require("editor") both work.
func (e *Engine) registerEditorModule() {
	mod := e.L.NewTable()
	e.L.SetFuncs(mod, map[string]lua.LGFunction{
		"insert":   e.luaInsert,
		"delete":   e.luaDelete,
		"replace":  e.luaReplace,
		"append":   e.luaAppend,
		"clear":    e.luaClear,
		"undo":     e.luaUndo,
		"redo":     e.luaRedo,
		"can_undo": e.luaCanUndo,
		"can_redo": e.luaCanRedo,
		"content":  e.luaContent,
		"len":      e.luaLen,
		"history":  e.luaHistory,
		"macro":    e.luaMacro,
	})

	e.L.SetGlobal("editor", mod)
	e.L.PreloadModule("editor", func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
}

// DoString executes Lua source code. The call is synchronous and
// recovers interpreter panics into errors.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrEngineClosed
	}
	return e.doWithRecovery(func() error {
		return e.L.DoString(code)
	})
}

// DoFile executes a Lua script file.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrEngineClosed
	}
	e.logger.Info("running script %s", path)
	return e.doWithRecovery(func() error {
		return e.L.DoFile(path)
	})
}

func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state. Further executions return
// ErrEngineClosed.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

func (e *Engine) luaInsert(L *lua.LState) int {
	pos := L.CheckInt(1)
	text := L.CheckString(2)
	if err := e.ed.Insert(pos, text); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

func (e *Engine) luaDelete(L *lua.LState) int {
	pos := L.CheckInt(1)
	length := L.CheckInt(2)
	if err := e.ed.Delete(pos, length); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

func (e *Engine) luaReplace(L *lua.LState) int {
	pos := L.CheckInt(1)
	length := L.CheckInt(2)
	text := L.CheckString(3)
	if err := e.ed.Replace(pos, length, text); err != nil {
		L.RaiseError("replace: %v", err)
	}
	return 0
}

func (e *Engine) luaAppend(L *lua.LState) int {
	text := L.CheckString(1)
	if err := e.ed.Append(text); err != nil {
		L.RaiseError("append: %v", err)
	}
	return 0
}

func (e *Engine) luaClear(L *lua.LState) int {
	if err := e.ed.Clear(); err != nil {
		L.RaiseError("clear: %v", err)
	}
	return 0
}

func (e *Engine) luaUndo(L *lua.LState) int {
	ok, err := e.ed.Undo()
	if err != nil {
		L.RaiseError("undo: %v", err)
	}
	L.Push(lua.LBool(ok))
	return 1
}

func (e *Engine) luaRedo(L *lua.LState) int {
	ok, err := e.ed.Redo()
	if err != nil {
		L.RaiseError("redo: %v", err)
	}
	L.Push(lua.LBool(ok))
	return 1
}

func (e *Engine) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.ed.CanUndo()))
	return 1
}

func (e *Engine) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.ed.CanRedo()))
	return 1
}

func (e *Engine) luaContent(L *lua.LState) int {
	L.Push(lua.LString(e.ed.Content()))
	return 1
}

func (e *Engine) luaLen(L *lua.LState) int {
	L.Push(lua.LNumber(e.ed.Length()))
	return 1
}

func (e *Engine) luaHistory(L *lua.LState) int {
	t := L.NewTable()
	for _, label := range e.ed.History() {
		t.Append(lua.LString(label))
	}
	L.Push(t)
	return 1
}

// luaMacro executes editor.macro(label, steps) where steps is an array
// of tables like {op="insert", pos=0, text="x"}. The whole batch
// becomes one undoable history entry.
func (e *Engine) luaMacro(L *lua.LState) int {
	label := L.CheckString(1)
	steps := L.CheckTable(2)

	var cmds []history.Command
	var buildErr error
	steps.ForEach(func(k, v lua.LValue) {
		if buildErr != nil {
			return
		}
		step, ok := v.(*lua.LTable)
		if !ok {
			buildErr = fmt.Errorf("step %s is not a table", k.String())
			return
		}
		cmd, err := stepToCommand(step)
		if err != nil {
			buildErr = fmt.Errorf("step %s: %w", k.String(), err)
			return
		}
		cmds = append(cmds, cmd)
	})
	if buildErr != nil {
		L.RaiseError("macro %q: %v", label, buildErr)
	}

	if err := e.ed.RunMacro(label, cmds...); err != nil {
		L.RaiseError("macro %q: %v", label, err)
	}
	e.logger.Debug("macro %q: %d steps", label, len(cmds))
	return 0
}

// stepToCommand converts one Lua step table into a command.
func stepToCommand(step *lua.LTable) (history.Command, error) {
	op, ok := tableString(step, "op")
	if !ok {
		return nil, errors.New(`missing "op" field`)
	}

	switch op {
	case "insert":
		pos, ok := tableInt(step, "pos")
		if !ok {
			return nil, errors.New(`missing "pos" field`)
		}
		text, ok := tableString(step, "text")
		if !ok {
			return nil, errors.New(`missing "text" field`)
		}
		return history.NewInsertCommand(pos, text), nil
	case "delete":
		pos, ok := tableInt(step, "pos")
		if !ok {
			return nil, errors.New(`missing "pos" field`)
		}
		length, ok := tableInt(step, "len")
		if !ok {
			return nil, errors.New(`missing "len" field`)
		}
		return history.NewDeleteCommand(pos, length), nil
	case "replace":
		pos, ok := tableInt(step, "pos")
		if !ok {
			return nil, errors.New(`missing "pos" field`)
		}
		length, ok := tableInt(step, "len")
		if !ok {
			return nil, errors.New(`missing "len" field`)
		}
		text, ok := tableString(step, "text")
		if !ok {
			return nil, errors.New(`missing "text" field`)
		}
		return history.NewReplaceCommand(pos, length, text), nil
	case "append":
		text, ok := tableString(step, "text")
		if !ok {
			return nil, errors.New(`missing "text" field`)
		}
		return history.NewAppendCommand(text), nil
	case "clear":
		return history.NewClearCommand(), nil
	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
}

func tableString(t *lua.LTable, key string) (string, bool) {
	v := t.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s), true
	}
	return "", false
}

func tableInt(t *lua.LTable, key string) (int, bool) {
	v := t.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n), true
	}
	return 0, false
}
