package main

import (
	"fmt"

	"github.com/odvcencio/grit/pkg/object"
	"github.com/odvcencio/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <commit-hash>",
		Short: "Verify a commit's SSH signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if !object.ValidHash(args[0]) {
				return fmt.Errorf("invalid commit hash %q", args[0])
			}

			commit, err := r.Store.ReadCommit(object.Hash(args[0]))
			if err != nil {
				return err
			}
			if commit.Signature == "" {
				return fmt.Errorf("commit %s is not signed", args[0])
			}

			payload := object.CommitSigningPayload(commit)
			if err := verifyCommitSignature(commit.Signature, payload); err != nil {
				return fmt.Errorf("commit %s: bad signature: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: commit %s has a valid signature\n", args[0])
			return nil
		},
	}
}
