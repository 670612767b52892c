package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slava0135/arraysum/harness"
	"slava0135/arraysum/ktest"
)

func newKtestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ktest <file>...",
		Short: "Print test case files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := ktestFiles(args)
			if err != nil {
				return err
			}
			for _, path := range files {
				tc, err := ktest.Read(path)
				if err != nil {
					return err
				}
				if err := ktest.Print(cmd.OutOrStdout(), path, tc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file|dir>...",
		Short: "Run the real function on recorded test cases and check the outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := ktestFiles(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range files {
				tc, err := ktest.Read(path)
				if err != nil {
					return err
				}
				p, err := harness.Lookup(tc.Program)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				res, err := harness.Verify(p, tc)
				if errors.Is(err, harness.ErrMismatch) {
					failed++
					a.log.Error().Str("file", path).Err(err).Msg("replay mismatch")
					fmt.Fprintf(out, "%s: %s [MISMATCH]\n", path, res)
					continue
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "%s: %s [OK]\n", path, res)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d test cases did not replay", failed, len(files))
			}
			return nil
		},
	}
}

// ktestFiles expands directories into the .ktest files they hold.
func ktestFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.ktest"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no test cases in '%s'", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}
