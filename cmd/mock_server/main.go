package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"operator_console/pkg/config"
	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"
	testtool "operator_console/pkg/test_tool"

	"go.uber.org/zap"
)

// 本地開發用後端：in-memory 資料 + 固定或 OpenAI 產生的建議回覆
func main() {
	cfg, err := config.LoadConfig[config.MockServer](config.EnvConfig.MockServer, config.EnvConfig.MockServerYAMLPath, config.MockServerDefaults())
	logger.Log = logger.Initialize(config.EnvConfig.MockServer, cfg.Log.Dir)
	defer logger.Log.Sync()
	if err != nil {
		logger.Log.Fatal("load config failed", zap.Error(err))
	}
	logger.Log.SetDebugMode(cfg.Log.Debug)

	backend := testtool.NewMockBackend(testtool.NewSuggester(cfg.OpenAI))
	backend.SeedDemo()
	backend.App().Get("/metrics", metrics.Handler())

	testtool.StartPprof(cfg.Pprof)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := backend.Close(); err != nil {
			logger.Log.Error("shutdown failed", zap.Error(err))
		}
	}()

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		logger.Log.Fatal("listen failed", zap.String("port", cfg.Port), zap.Error(err))
	}
	logger.Log.Info("Mock server listening",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("openai", cfg.OpenAI.APIKey != ""),
	)
	if err := backend.Listen(ln); err != nil {
		logger.Log.Fatal("Failed to start Fiber", zap.Error(err))
	}
}
