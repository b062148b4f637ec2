package main

import (
	"fmt"
	"strings"

	aireplydomain "operator_console/internal/aireply/domain"
	"operator_console/internal/console"
	"operator_console/internal/message/domain"
	settingsdomain "operator_console/internal/settings/domain"

	"github.com/spf13/cobra"
)

func newChatroomsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chatrooms",
		Short: "List chatrooms with unread counts",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, _ []string) error {
			ctx := cmd.Context()
			s.alertOnFail(s.app.SettingsUI.Initialize(ctx), settingsdomain.ErrMsgLoadSettings)
			if err := s.app.MessageUI.Initialize(ctx); err != nil {
				s.term.Alert(domain.ErrMsgLoadChatrooms)
				return errReported
			}
			return nil
		}, console.RegionChatrooms),
	}
}

func newOpenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open <chatroomId>",
		Short: "Open a chatroom and mark its messages as read",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			return s.selectChatroom(cmd, args[0])
		}, console.RegionChatrooms, console.RegionMessages),
	}
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <chatroomId> <text>",
		Short: "Send a reply to a chatroom",
		Args:  cobra.MinimumNArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			if err := s.selectChatroom(cmd, args[0]); err != nil {
				return err
			}
			s.app.MessageUI.SetDraft(strings.Join(args[1:], " "))
			return reported(s.app.MessageUI.HandleSend(cmd.Context()))
		}, console.RegionMessages),
	}
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <chatroomId>",
		Short: "Sync chat history of a chatroom",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			if err := s.selectChatroom(cmd, args[0]); err != nil {
				return err
			}
			if err := s.app.MessageUI.HandleSync(cmd.Context()); err != nil {
				return errReported
			}
			s.term.Alert("채팅 내역이 동기화되었습니다.")
			return nil
		}, console.RegionMessages),
	}
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var (
		pick string
		send bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <chatroomId>",
		Short: "Request AI reply suggestions for a chatroom",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			if send && pick == "" {
				return fmt.Errorf("--send requires --pick")
			}
			if err := s.selectChatroom(cmd, args[0]); err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := s.app.AiReplyModal.HandleOpen(ctx); err != nil {
				return errReported
			}
			s.term.Print(console.RegionAiReply)
			if pick == "" {
				return nil
			}

			t, ok := aireplydomain.ParseReplyType(pick)
			if !ok {
				return fmt.Errorf("unknown reply type %q", pick)
			}
			if !s.app.AiReplyModal.HandlePick(t) {
				s.term.Alert(t.Label() + ": " + s.app.AiReply.Reply(t))
				return errReported
			}
			if !send {
				s.term.Print(console.RegionComposer)
				return nil
			}
			return reported(s.app.MessageUI.HandleSend(ctx))
		}, console.RegionMessages),
	}

	cmd.Flags().StringVar(&pick, "pick", "", "reply type to put into the draft ("+replyTypeNames()+")")
	cmd.Flags().BoolVar(&send, "send", false, "send the picked reply")
	return cmd
}

func replyTypeNames() string {
	names := make([]string, 0, len(aireplydomain.ReplyTypes))
	for _, t := range aireplydomain.ReplyTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
