package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quartzite/calc"
	"github.com/quartzite/calc/history"
)

func newEvalCmd() *cobra.Command {
	var (
		inname     string
		verb       string
		echo       bool
		concurrent bool
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "eval [expression ...]",
		Short: "Evaluate expressions from arguments, a file, or stdin",
		Long: "Evaluate one expression per argument, or one per line from --in or\n" +
			"stdin. A failing expression prints its error and does not stop the\n" +
			"rest of the batch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fmt") {
				verb = cfg.Format
			}
			if !cmd.Flags().Changed("timeout") {
				if timeout, err = cfg.timeout(); err != nil {
					return err
				}
			}
			exprs, err := gatherExprs(args, inname)
			if err != nil {
				return err
			}
			if len(exprs) == 0 {
				return fmt.Errorf("no expressions to evaluate")
			}

			store, err := cfg.openHistory()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			sess := calc.NewSession()
			var results []calc.Result
			if concurrent {
				ctx := context.Background()
				if timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}
				results = sess.EvaluateAll(ctx, exprs)
			} else {
				results = make([]calc.Result, len(exprs))
				for i, src := range exprs {
					results[i].Expr = src
					results[i].Value, results[i].Err = sess.Evaluate(src)
				}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if echo {
					if a, err := calc.ParseString(calc.Normalize(r.Expr)); err == nil {
						fmt.Fprintf(out, "%v : ", a)
					}
				}
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "%s = error: %v (%v)\n", r.Expr, r.Err, calc.Kind(r.Err))
				} else {
					fmt.Fprintf(out, "%s = "+verb+"\n", r.Expr, r.Value)
				}
				recordResult(store, r)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file, one expression per line (- for stdin)")
	cmd.Flags().StringVar(&verb, "fmt", "%g", "result formatting verb")
	cmd.Flags().BoolVar(&echo, "echo", false, "print parse trees before results")
	cmd.Flags().BoolVarP(&concurrent, "concurrent", "c", false, "evaluate the batch concurrently")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-batch deadline for concurrent evaluation")
	return cmd
}

// gatherExprs collects expressions from arguments and/or an input stream,
// skipping blank lines. With no arguments and no --in, stdin is read.
func gatherExprs(args []string, inname string) ([]string, error) {
	exprs := append([]string(nil), args...)
	var in io.Reader
	switch {
	case inname == "-":
		in = os.Stdin
	case inname != "":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	case len(args) == 0:
		in = os.Stdin
	}
	if in == nil {
		return exprs, nil
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			exprs = append(exprs, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return exprs, nil
}

func recordResult(store *history.Store, r calc.Result) {
	if store == nil {
		return
	}
	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}
	// History is best-effort; a full disk should not fail the evaluation.
	_ = store.Record(context.Background(), r.Expr, r.Value, errText)
}
