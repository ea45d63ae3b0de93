package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/quartzite/calc"
)

const (
	prompt      = "calc> "
	historyFile = ".calc/repl_history"
)

const replHelp = `Enter an expression to evaluate it. Memory commands:
  :store [x]   store x (default: the last result) in memory
  :recall      print the memory cell
  :clear       reset the memory cell to 0
  :help        show this help
  :quit        exit`

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }
func dim(s string) string { return "\x1b[2m" + s + "\x1b[0m" }

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := cfg.openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "calc "+version+". Type :help for commands, :quit or Ctrl+D to exit.")

	sess := calc.NewSession()
	var last float64
	for {
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return nil
		case err != nil:
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(out, sess, line, last); quit {
				return nil
			}
			continue
		}

		v, err := sess.Evaluate(line)
		if err != nil {
			fmt.Fprintln(out, red(fmt.Sprintf("error: %v (%v)", err, calc.Kind(err))))
		} else {
			fmt.Fprintf(out, cfg.Format+"\n", v)
			last = v
		}
		recordResult(store, calc.Result{Expr: line, Value: v, Err: err})
	}
}

// replCommand handles a :-prefixed REPL command. It reports whether the
// REPL should exit.
func replCommand(out io.Writer, sess *calc.Session, line string, last float64) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(out, replHelp)
	case ":store":
		v := last
		if arg != "" {
			x, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				fmt.Fprintln(out, red("not a number: "+arg))
				return false
			}
			v = x
		}
		sess.Store(v)
		fmt.Fprintln(out, dim(fmt.Sprintf("stored %g", v)))
	case ":recall":
		fmt.Fprintf(out, "%g\n", sess.Recall())
	case ":clear":
		sess.Clear()
		fmt.Fprintln(out, dim("memory cleared"))
	default:
		fmt.Fprintln(out, red("unknown command "+name+"; try :help"))
	}
	return false
}
