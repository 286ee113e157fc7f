package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"instaquran/internal/quran"
	"instaquran/internal/validation"
)

func validateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate CHAPTER VERSE",
		Short: "Check a chapter and verse without fetching anything",
		Long: `Prints the same messages the studio shows under the fields.
Exits non-zero when the reference is invalid.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, errs := validation.Resolve(args[0], args[1])
			if !errs.OK() {
				printErrors(cmd, errs)
				return errInvalidReference
			}
			count, _ := quran.Bounds().VerseCount(ref.Chapter)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (chapter %d has %d verses)\n", ref, ref.Chapter, count)
			return nil
		},
	}
}
