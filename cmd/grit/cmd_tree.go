package main

import (
	"fmt"

	"github.com/odvcencio/grit/pkg/object"
	"github.com/odvcencio/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newWriteTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-tree [directory]",
		Short: "Snapshot a directory as a tree object and print its hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			dir := r.RootDir
			if len(args) > 0 {
				dir = args[0]
			}

			h, err := r.WriteTree(dir)
			if err != nil {
				return err
			}
			if h == "" {
				return fmt.Errorf("cannot create tree from empty directory %q", dir)
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newReadTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-tree <hash> [target]",
		Short: "Expand a tree object into a directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if !object.ValidHash(args[0]) {
				return fmt.Errorf("invalid tree hash %q", args[0])
			}

			target := "restored"
			if len(args) == 2 {
				target = args[1]
			}

			if err := r.ReadTree(object.Hash(args[0]), target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tree %s restored to %s\n", args[0], target)
			return nil
		},
	}
}

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <hash>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if !object.ValidHash(args[0]) {
				return fmt.Errorf("invalid tree hash %q", args[0])
			}

			entries, err := r.ListTree(object.Hash(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				kind := object.TypeBlob
				if e.IsDir() {
					kind = object.TypeTree
				}
				fmt.Fprintf(out, "%s %s %s\t%s\n", e.Mode, kind, e.Hash, e.Name)
			}
			return nil
		},
	}
}
