package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"slava0135/arraysum/harness"
	"slava0135/arraysum/ktest"
	"slava0135/arraysum/symexec"
)

type runFlags struct {
	strategy string
	maxPaths int
	outDir   string
	printSrc bool
	noOutput bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Explore every path of a program and write a test case per path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := harness.Lookup(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strategy") {
				a.cfg.Search.Strategy = f.strategy
			}
			if cmd.Flags().Changed("max-paths") {
				a.cfg.Search.MaxPaths = f.maxPaths
			}
			if cmd.Flags().Changed("output-dir") {
				a.cfg.Output.Dir = f.outDir
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "::", "analyzing program", "'"+p.Name+"'")
			if f.printSrc {
				harness.PrintSrc(out, p.Source)
			}

			start := time.Now()
			r, err := explore(cmd, a, p)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			printReport(out, r)

			if f.noOutput {
				return nil
			}
			dir, err := ktest.NewOutputDir(a.cfg.Output.Dir)
			if err != nil {
				return err
			}
			if _, err := ktest.WriteDir(dir, r.Tests); err != nil {
				return err
			}
			err = ktest.WriteInfo(dir, ktest.Info{
				Program:   p.Name,
				Strategy:  a.cfg.Search.Strategy,
				Completed: r.Completed,
				Partial:   r.Partial,
				Tests:     len(r.Tests),
				Queries:   r.Queries,
				Elapsed:   elapsed.String(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "::", "output directory is", "'"+dir+"'")
			return nil
		},
	}
	cmd.Flags().StringVar(&f.strategy, "strategy", "dfs", "search strategy (dfs, bfs, random)")
	cmd.Flags().IntVar(&f.maxPaths, "max-paths", 0, "stop after this many paths, 0 for no limit")
	cmd.Flags().StringVar(&f.outDir, "output-dir", ".", "directory receiving klee-out-N and klee-last")
	cmd.Flags().BoolVar(&f.printSrc, "src", false, "print the program source")
	cmd.Flags().BoolVar(&f.noOutput, "no-output", false, "do not write test cases")
	return cmd
}

func explore(cmd *cobra.Command, a *app, p harness.Program) (*symexec.Report, error) {
	q, err := symexec.NewQueue(a.cfg.Search.Strategy, a.cfg.Search.Seed)
	if err != nil {
		return nil, err
	}
	e := &symexec.Executor{
		Name:     p.Name,
		Program:  p.Run,
		Queue:    q,
		MaxPaths: a.cfg.Search.MaxPaths,
		Log:      a.log.With().Str("program", p.Name).Logger(),
	}
	return e.Run(cmd.Context())
}

func printReport(w io.Writer, r *symexec.Report) {
	for _, tc := range r.Faults() {
		fmt.Fprintf(w, ":: error: %s: %s\n", tc.Error, tc.Message)
	}
	if r.Truncated {
		fmt.Fprintln(w, ":: halting: path limit reached")
	}
	fmt.Fprintf(w, ":: done: completed paths = %d\n", r.Completed)
	fmt.Fprintf(w, ":: done: partially completed paths = %d\n", r.Partial)
	fmt.Fprintf(w, ":: done: generated tests = %d\n", len(r.Tests))
	fmt.Fprintf(w, ":: done: solver queries = %d\n", r.Queries)
}
