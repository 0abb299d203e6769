package main

import (
	"fmt"

	"github.com/odvcencio/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var name string
	var email string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or set the commit identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if name != "" || email != "" {
				cfg, err := r.ReadConfig()
				if err != nil {
					return err
				}
				if name == "" {
					name = cfg.User.Name
				}
				if email == "" {
					email = cfg.User.Email
				}
				return r.SetUser(name, email)
			}

			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user.name = %s\nuser.email = %s\n", cfg.User.Name, cfg.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "set user.name")
	cmd.Flags().StringVar(&email, "email", "", "set user.email")

	return cmd
}
