package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/grit/pkg/object"
	"github.com/odvcencio/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Store a file as a blob and print its hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %q: %w", args[0], err)
			}

			h, err := r.Store.WriteBlob(&object.Blob{Data: data})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <hash>",
		Short: "Print a stored object's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if !object.ValidHash(args[0]) {
				return fmt.Errorf("invalid object hash %q", args[0])
			}

			objType, content, err := r.Store.Read(object.Hash(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if objType != object.TypeBlob {
				fmt.Fprintf(out, "object type: %s\n", objType)
			}
			out.Write(content)
			return nil
		},
	}
}
