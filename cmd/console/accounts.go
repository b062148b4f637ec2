package main

import (
	"operator_console/internal/account/domain"
	"operator_console/internal/console"

	"github.com/spf13/cobra"
)

func newAccountsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage operator accounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List accounts",
			Args:  cobra.NoArgs,
			RunE: withSession(opts, func(cmd *cobra.Command, s *session, _ []string) error {
				if err := s.app.AccountUI.Initialize(cmd.Context()); err != nil {
					s.term.Alert(domain.ErrMsgLoadFailed)
					return errReported
				}
				return nil
			}, console.RegionAccounts),
		},
		&cobra.Command{
			Use:   "add <email> <password>",
			Short: "Create an account",
			Args:  cobra.ExactArgs(2),
			RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
				return reported(s.app.AccountUI.HandleCreate(cmd.Context(), args[0], args[1]))
			}, console.RegionAccounts),
		},
		&cobra.Command{
			Use:   "update <email> <password>",
			Short: "Change an account password",
			Args:  cobra.ExactArgs(2),
			RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
				return reported(s.app.AccountUI.HandleUpdate(cmd.Context(), args[0], args[1]))
			}, console.RegionAccounts),
		},
		&cobra.Command{
			Use:   "delete <email>",
			Short: "Delete an account",
			Args:  cobra.ExactArgs(1),
			RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
				return reported(s.app.AccountUI.HandleDelete(cmd.Context(), args[0]))
			}, console.RegionAccounts),
		},
	)
	return cmd
}
