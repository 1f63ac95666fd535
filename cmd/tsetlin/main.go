// Command tsetlin trains a single-output Tsetlin Machine on a bit file.
//
//	tsetlin train --data train.txt --test test.txt --config machine.yaml --epochs 20
//
// Each data line holds the feature bits of one example followed by its label,
// separated by whitespace or commas. Lines starting with '#' are ignored.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tsetlin",
		Short:        "Train and evaluate Tsetlin Machine clause banks",
		SilenceUsage: true,
	}
	root.AddCommand(newTrainCmd())
	return root
}
