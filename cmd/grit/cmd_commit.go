package main

import (
	"fmt"

	"github.com/odvcencio/grit/pkg/object"
	"github.com/odvcencio/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd() *cobra.Command {
	var parent string
	var message string
	var sign bool
	var signKey string

	cmd := &cobra.Command{
		Use:   "commit-tree <tree-hash>",
		Short: "Create a commit object for a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if !object.ValidHash(args[0]) {
				return fmt.Errorf("invalid tree hash %q", args[0])
			}

			parentHash := object.Hash("")
			if parent != "" {
				resolved, err := r.ResolveRef(parent)
				if err != nil {
					return err
				}
				if resolved == "" {
					if !object.ValidHash(parent) {
						return fmt.Errorf("cannot resolve parent %q to a commit", parent)
					}
					resolved = object.Hash(parent)
				}
				parentHash = resolved
			}

			var signer repo.CommitSigner
			if sign || signKey != "" {
				s, keyPath, err := newSSHCommitSigner(signKey)
				if err != nil {
					return err
				}
				signer = s
				fmt.Fprintf(cmd.ErrOrStderr(), "signing with %s\n", keyPath)
			}

			h, err := r.CommitTreeWithSigner(object.Hash(args[0]), parentHash, message, signer)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent commit (ref name or hash)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVar(&sign, "sign", false, "sign the commit with the default ~/.ssh key")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "SSH private key to sign the commit with")

	return cmd
}
