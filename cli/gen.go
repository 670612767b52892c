package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"slava0135/arraysum/harness"
	"slava0135/arraysum/symexec"
)

func newGenCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "gen <program>",
		Short: "Explore a program and generate Go tests from its paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := harness.Lookup(args[0])
			if err != nil {
				return err
			}
			r, err := explore(cmd, a, p)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := symexec.GenerateTests(w, p.Signature, r.Tests); err != nil {
				return fmt.Errorf("generating tests for '%s': %w", p.Name, err)
			}
			a.log.Info().Str("program", p.Name).Int("tests", len(r.Tests)).Str("output", output).Msg("generated tests")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
