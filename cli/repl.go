// Package cli implements the interactive REPL for driving a Store from a
// terminal.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"kvwal/store"
)

// REPL is the interactive command loop over a Store.
type REPL struct {
	store       *store.Store
	prompt      string
	historyPath string
	line        *liner.State
}

// New returns a REPL over s. An empty prompt falls back to "kvwal> "; an
// empty historyPath means history is neither loaded nor saved.
func New(s *store.Store, prompt, historyPath string) *REPL {
	if prompt == "" {
		prompt = "kvwal> "
	}
	return &REPL{store: s, prompt: prompt, historyPath: historyPath}
}

// Run starts the loop, blocking until the user exits or input is closed.
func (r *REPL) Run() error {
	r.line = liner.NewLiner()
	defer r.line.Close()

	r.line.SetCtrlCAborts(true)
	r.line.SetCompleter(r.completer)

	if r.historyPath != "" {
		if f, err := os.Open(r.historyPath); err == nil {
			r.line.ReadHistory(f)
			f.Close()
		}
	}

	r.printHelp()

	for {
		input, err := r.line.Prompt(r.prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("bye")
				break
			}
			return fmt.Errorf("cli: read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if r.dispatch(input) {
			break
		}
	}

	r.saveHistory()
	return nil
}

// dispatch runs one command line and reports whether the REPL should exit.
func (r *REPL) dispatch(line string) bool {
	fields := strings.Fields(line)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "set":
		r.cmdSet(args)
	case "get":
		r.cmdGet(args)
	case "del", "delete":
		r.cmdDelete(args)
	case "count":
		fmt.Println(r.store.RecordCount())
	case "size":
		fmt.Println(r.store.CurrentSize())
	case "help", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Println("bye")
		return true
	default:
		fmt.Printf("unknown command %q (type help)\n", command)
	}
	return false
}

func (r *REPL) cmdSet(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: set <key> <value>")
		return
	}
	if err := r.store.Set([]byte(args[0]), []byte(args[1])); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("OK")
}

func (r *REPL) cmdGet(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: get <key>")
		return
	}
	entry, ok, err := r.store.Get([]byte(args[0]))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if !ok {
		fmt.Println("(not found)")
		return
	}
	fmt.Println(string(entry.Value))
}

func (r *REPL) cmdDelete(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: del <key>")
		return
	}
	if err := r.store.Delete([]byte(args[0])); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("OK")
}

func (r *REPL) printHelp() {
	fmt.Print(`
kvwal CLI

  set <key> <value>   insert or replace a key
  get <key>            retrieve a key's value
  del <key>            delete a key
  count                number of live and tombstone records
  size                 running byte-size estimate
  exit                 quit

`)
}

func (r *REPL) completer(line string) []string {
	commands := []string{"set", "get", "del", "delete", "count", "size", "help", "exit", "quit"}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}
	return out
}

func (r *REPL) saveHistory() {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Create(r.historyPath); err == nil {
		r.line.WriteHistory(f)
		f.Close()
	}
}
