package main

import (
	"context"
	"fmt"
	"strings"

	"operator_console/internal/console"
	messagedomain "operator_console/internal/message/domain"
	"operator_console/internal/settings/domain"

	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change polling and telegram settings",
	}

	// 先載入目前設定再執行 fn
	run := func(fn func(ctx context.Context, s *session, args []string) error, regions ...string) func(*cobra.Command, []string) error {
		return withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			ctx := cmd.Context()
			if err := s.app.SettingsUI.Initialize(ctx); err != nil {
				s.term.Alert(domain.ErrMsgLoadSettings)
				return errReported
			}
			if fn == nil {
				return nil
			}
			return fn(ctx, s, args)
		}, regions...)
	}

	idcheck := &cobra.Command{
		Use:   "idcheck",
		Short: "Telegram chat ID discovery mode",
	}
	idcheck.AddCommand(
		&cobra.Command{
			Use:   "start <botToken>",
			Short: "Start ID discovery mode",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s *session, args []string) error {
				return reported(s.app.SettingsUI.HandleStartIDCheck(ctx, args[0]))
			}, console.RegionSettings),
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop ID discovery mode",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, s *session, _ []string) error {
				return reported(s.app.SettingsUI.HandleStopIDCheck(ctx))
			}, console.RegionSettings),
		},
	)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current settings",
			Args:  cobra.NoArgs,
			RunE:  run(nil, console.RegionSettings),
		},
		&cobra.Command{
			Use:   "interval <seconds>",
			Short: "Set the polling interval (>= 5 seconds)",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s *session, args []string) error {
				return reported(s.app.SettingsUI.HandleRefreshSave(ctx, args[0]))
			}, console.RegionSettings),
		},
		&cobra.Command{
			Use:   "telegram <botToken> <chatId>",
			Short: "Save telegram bot settings",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, s *session, args []string) error {
				return reported(s.app.SettingsUI.HandleTelegramSave(ctx, args[0], args[1]))
			}, console.RegionSettings),
		},
		&cobra.Command{
			Use:       "check <chatroomId> on|off",
			Short:     "Toggle telegram notification for a chatroom",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"on", "off"},
			RunE: run(func(ctx context.Context, s *session, args []string) error {
				id, err := messagedomain.ParseID(args[0])
				if err != nil {
					return err
				}
				checked, err := parseOnOff(args[1])
				if err != nil {
					return err
				}
				s.alertOnFail(s.app.MessageUI.Initialize(ctx), messagedomain.ErrMsgLoadChatrooms)
				return reported(s.app.MessageUI.HandleToggleCheck(ctx, id, checked))
			}, console.RegionChatrooms, console.RegionSettings),
		},
		idcheck,
		&cobra.Command{
			Use:   "test [message]",
			Short: "Send a telegram test message",
			RunE: run(func(ctx context.Context, s *session, args []string) error {
				return reported(s.app.SettingsUI.HandleTestMessage(ctx, strings.Join(args, " ")))
			}),
		},
	)
	return cmd
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid argument %q, want on|off", s)
}
