package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ashdyer/quill/internal/config"
	"github.com/ashdyer/quill/internal/config/watcher"
	"github.com/ashdyer/quill/internal/engine/editor"
	"github.com/ashdyer/quill/internal/log"
)

// repl is the interactive session. Reload notifications arrive from
// the watcher goroutine through a channel and are applied between
// commands, so the editor itself is only touched from one goroutine.
type repl struct {
	ed     *editor.Editor
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	reload <-chan string
}

func runREPL(ed *editor.Editor, logger *log.Logger, opts options) int {
	r := &repl{
		ed:     ed,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	if opts.watch {
		w, err := watcher.New(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer w.Stop()

		reload := make(chan string, 1)
		w.OnChange(func(path string) {
			select {
			case reload <- path:
			default:
			}
		})
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start watcher: %v\n", err)
			return 1
		}
		r.reload = reload
		logger.Info("watching %s for configuration changes", w.Path())
	}

	return r.run()
}

func (r *repl) run() int {
	fmt.Fprintln(r.out, `Quill interactive session. Type "help" for commands.`)

	scanner := bufio.NewScanner(r.in)
	for {
		r.applyReloads()
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		r.dispatch(line)
	}
	return 0
}

// applyReloads drains pending watcher notifications and applies the
// new settings.
func (r *repl) applyReloads() {
	for {
		select {
		case path := <-r.reload:
			cfg, err := config.Load(path)
			if err != nil {
				fmt.Fprintf(r.out, "config reload failed: %v\n", err)
				continue
			}
			r.ed.SetHistoryCapacity(cfg.History.Capacity)
			r.logger.SetLevel(log.ParseLevel(cfg.Logging.Level))
			fmt.Fprintf(r.out, "configuration reloaded: history capacity %d, log level %s\n",
				cfg.History.Capacity, cfg.Logging.Level)
		default:
			return
		}
	}
}

func (r *repl) dispatch(line string) {
	verb := line
	if i := strings.IndexByte(line, ' '); i >= 0 {
		verb = line[:i]
	}

	var err error
	switch verb {
	case "help":
		r.printHelp()
	case "show":
		fmt.Fprintf(r.out, "%q\n", r.ed.Content())
	case "insert":
		err = r.doInsert(line)
	case "delete":
		err = r.doDelete(line)
	case "replace":
		err = r.doReplace(line)
	case "append":
		err = r.doAppend(line)
	case "clear":
		err = r.ed.Clear()
		r.showContent(err)
	case "undo":
		var ok bool
		if ok, err = r.ed.Undo(); err == nil && !ok {
			fmt.Fprintln(r.out, "nothing to undo")
		} else {
			r.showContent(err)
		}
	case "redo":
		var ok bool
		if ok, err = r.ed.Redo(); err == nil && !ok {
			fmt.Fprintln(r.out, "nothing to redo")
		} else {
			r.showContent(err)
		}
	case "history":
		labels := r.ed.History()
		if len(labels) == 0 {
			fmt.Fprintln(r.out, "history is empty")
		}
		for i, label := range labels {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, label)
		}
	case "stats":
		stats := r.ed.Stats()
		fmt.Fprintf(r.out, "length %d, history %d/%d, undo %v, redo %v\n",
			stats.ContentLength, stats.CurrentPosition+1, stats.HistorySize,
			stats.CanUndo, stats.CanRedo)
	default:
		fmt.Fprintf(r.out, "unknown command %q; type \"help\"\n", verb)
	}

	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}

func (r *repl) printHelp() {
	fmt.Fprint(r.out, `Commands:
  insert <pos> <text>          Insert text at position
  delete <pos> <len>           Delete a range
  replace <pos> <len> <text>   Replace a range
  append <text>                Append text
  clear                        Clear the document
  undo                         Undo the last operation
  redo                         Redo the next operation
  show                         Print the document
  history                      List executed operations
  stats                        Show editor statistics
  quit                         Exit
`)
}

// showContent prints the document after a successful edit.
func (r *repl) showContent(err error) {
	if err == nil {
		fmt.Fprintf(r.out, "%q\n", r.ed.Content())
	}
}

func (r *repl) doInsert(line string) error {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return fmt.Errorf("usage: insert <pos> <text>")
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("position %q: %w", parts[1], err)
	}
	err = r.ed.Insert(pos, parts[2])
	r.showContent(err)
	return err
}

func (r *repl) doDelete(line string) error {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return fmt.Errorf("usage: delete <pos> <len>")
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("position %q: %w", parts[1], err)
	}
	length, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("length %q: %w", parts[2], err)
	}
	err = r.ed.Delete(pos, length)
	r.showContent(err)
	return err
}

func (r *repl) doReplace(line string) error {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 4 {
		return fmt.Errorf("usage: replace <pos> <len> <text>")
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("position %q: %w", parts[1], err)
	}
	length, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("length %q: %w", parts[2], err)
	}
	err = r.ed.Replace(pos, length, parts[3])
	r.showContent(err)
	return err
}

func (r *repl) doAppend(line string) error {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) < 2 {
		return fmt.Errorf("usage: append <text>")
	}
	err := r.ed.Append(parts[1])
	r.showContent(err)
	return err
}
