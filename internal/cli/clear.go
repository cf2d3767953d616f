package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	clearAll bool
	clearYes bool
)

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [<user> | --all]",
		Short: "Delete the sessions of one user or of everyone",
		Args: func(cmd *cobra.Command, args []string) error {
			if clearAll && len(args) > 0 {
				return fmt.Errorf("--all takes no user argument")
			}
			if !clearAll && len(args) != 1 {
				return fmt.Errorf("requires a user or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			question := "Delete every session of every user?"
			if !clearAll {
				if len(a.tracker.Sessions(args[0])) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No sessions for %s\n", args[0])
					return nil
				}
				question = fmt.Sprintf("Delete every session of %q?", args[0])
			}
			if !clearYes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			if clearAll {
				if err := a.tracker.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
				return nil
			}
			if err := a.tracker.ClearUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared sessions for %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "all", false, "delete the sessions of every user")
	cmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a y/N question on out and reads the answer from in. Anything
// other than y or yes, including EOF, is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
