package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lisquiz/lisquiz/internal/bank"
)

var checkCmd = &cobra.Command{
	Use:   "check <bank files>",
	Short: "Validate bank files",
	Long: `Parse each bank file, validate it against the bank schema and check that
it can be played. Questions whose correct answer is missing from their
options are listed: they still play, with the answer added first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if failed := checkBanks(cmd.OutOrStdout(), args); failed > 0 {
			return fmt.Errorf("%d of %d banks failed", failed, len(args))
		}
		return nil
	},
}

// checkBanks reports on each path and returns the number that failed.
func checkBanks(w io.Writer, paths []string) int {
	failed := 0
	for _, path := range paths {
		b, err := bank.LoadFile(path)
		if err == nil {
			err = b.Check()
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s, %s, %d questions\n", path, b.ID, b.Variant.Label(), len(b.Items))
		for _, i := range b.Repairs() {
			fmt.Fprintf(w, "    question %d: correct answer not among the options, it will be added\n", i+1)
		}
	}
	return failed
}
