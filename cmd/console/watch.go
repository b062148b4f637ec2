package main

import (
	"time"

	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the console open and refresh chatrooms periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.Close()

			if !cmd.Flags().Changed("interval") {
				interval = s.cfg.Refresh.ChatroomInterval
			}
			if !cmd.Flags().Changed("metrics-addr") {
				metricsAddr = s.cfg.Metrics.Addr
			}

			if metricsAddr != "" {
				srv := metrics.NewServer()
				go func() {
					logger.Log.Info("metrics server listening", zap.String("addr", metricsAddr))
					if err := srv.Listen(metricsAddr); err != nil {
						logger.Log.Error("metrics server stopped", zap.Error(err))
					}
				}()
				defer srv.Shutdown()
			}

			return s.app.Run(cmd.Context(), interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "chatroom refresh interval (default from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}
