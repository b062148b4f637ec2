package main

import (
	"errors"

	"operator_console/internal/console"
	"operator_console/internal/message/domain"
	settingsdomain "operator_console/internal/settings/domain"
	"operator_console/pkg/apiclient"
	"operator_console/pkg/config"
	"operator_console/pkg/logger"

	"github.com/spf13/cobra"
)

// errReported 失敗已經以提示顯示給使用者
var errReported = errors.New("reported")

func reported(err error) error {
	if err != nil {
		return errReported
	}
	return nil
}

type rootOptions struct {
	configPath string
	server     string
	debug      bool
	width      int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "console",
		Short:         "Customer-service operator console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config directory (default $CONSOLE_YAML)")
	flags.StringVar(&opts.server, "server", "", "backend base URL, overrides config")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.IntVar(&opts.width, "width", 0, "render width, 0 for unlimited")

	root.AddCommand(
		newAccountsCmd(opts),
		newChatroomsCmd(opts),
		newOpenCmd(opts),
		newSendCmd(opts),
		newSyncCmd(opts),
		newSuggestCmd(opts),
		newSettingsCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// session 一次指令的執行環境
type session struct {
	cfg  config.Console
	term *console.Terminal
	app  *console.App
}

func openSession(cmd *cobra.Command, opts *rootOptions, live bool) (*session, error) {
	name := config.EnvConfig.Console
	dir := opts.configPath
	if dir == "" {
		dir = config.EnvConfig.ConsoleYAMLPath
	}

	cfg, err := config.LoadConfig[config.Console](name, dir, config.ConsoleDefaults())
	if err != nil {
		return nil, err
	}
	if opts.server != "" {
		cfg.Server.BaseURL = opts.server
	}

	logger.Log = logger.Initialize(name, cfg.Log.Dir)
	logger.Log.SetDebugMode(opts.debug || cfg.Log.Debug)

	term := console.NewTerminal(cmd.OutOrStdout(), opts.width, live)
	client := apiclient.New(cfg.ServerURL(), cfg.Server.Timeout)
	return &session{cfg: cfg, term: term, app: console.NewApp(client, term, term)}, nil
}

func (s *session) Close() {
	s.app.Close()
	logger.Log.Sync()
}

// withSession 開啟 session 執行 fn，結束後輸出 regions
func withSession(opts *rootOptions, fn func(cmd *cobra.Command, s *session, args []string) error, regions ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, opts, false)
		if err != nil {
			return err
		}
		defer s.Close()

		err = fn(cmd, s, args)
		s.term.Print(regions...)
		return err
	}
}

// alertOnFail 輔助區塊載入失敗時提示，指令繼續執行
func (s *session) alertOnFail(err error, message string) {
	if err != nil {
		s.term.Alert(message)
	}
}

// selectChatroom 載入聊天室與設定後選取
func (s *session) selectChatroom(cmd *cobra.Command, arg string) error {
	id, err := domain.ParseID(arg)
	if err != nil || id.IsZero() {
		return errors.New("invalid chatroom id: " + arg)
	}

	ctx := cmd.Context()
	if err := s.app.MessageUI.Initialize(ctx); err != nil {
		s.term.Alert(domain.ErrMsgLoadChatrooms)
		return errReported
	}
	s.alertOnFail(s.app.SettingsUI.Initialize(ctx), settingsdomain.ErrMsgLoadSettings)
	return reported(s.app.MessageUI.HandleSelectChatroom(ctx, id))
}
