package main

import (
	"fmt"

	"github.com/odvcencio/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newUpdateRefCmd() *cobra.Command {
	var symbolic bool

	cmd := &cobra.Command{
		Use:   "update-ref <name> <target>",
		Short: "Point a ref at a commit hash or, with --symbolic, at another ref",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if err := r.UpdateRef(args[0], args[1], symbolic); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated ref '%s' to '%s'\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&symbolic, "symbolic", false, "store the target as a symbolic ref")

	return cmd
}
