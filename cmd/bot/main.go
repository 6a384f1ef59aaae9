package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httphandler "ovozbot/internal/adapters/handler/http"
	"ovozbot/internal/adapters/handler/telegram"
	"ovozbot/internal/adapters/repository/memory"
	"ovozbot/internal/config"
	"ovozbot/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("configuration error", zap.Error(err))
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	bot, err := telegram.NewBot(cfg.BotToken, cfg.PollTimeout)
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}
	transport := telegram.NewTransport(bot)

	channels := make([]string, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		channels = append(channels, services.NormalizeChannel(ch))
	}

	adminRegistry := memory.NewAdminRegistry(cfg.AdminIDs)
	channelRegistry := memory.NewChannelRegistry(channels)
	directory := memory.NewUserDirectory()
	pollRepo := memory.NewPollRepository()
	convRepo := memory.NewConversationRepository()

	accessSvc := services.NewAccessService(transport, adminRegistry, channelRegistry, logger)
	pollSvc := services.NewPollService(pollRepo, adminRegistry, directory, logger)
	reporter := telegram.NewBroadcastReporter(transport, logger)
	broadcastSvc := services.NewBroadcastService(transport, directory, reporter, cfg.BroadcastPace, cfg.BroadcastWorkers, logger)
	convoSvc := services.NewConversationService(convRepo, pollSvc, adminRegistry, channelRegistry, broadcastSvc, logger)

	router := telegram.NewRouter(transport, accessSvc, pollSvc, convoSvc, adminRegistry, channelRegistry, directory, logger)
	router.Register(bot)

	statsHandler := httphandler.NewStatsHandler(pollSvc, logger)
	opsServer := &stdhttp.Server{
		Addr:    cfg.OpsAddr,
		Handler: httphandler.NewHandler(statsHandler),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("ops server failed", zap.Error(err))
		}
	}()

	go bot.Start()
	logger.Info("bot started",
		zap.Int("admins", len(cfg.AdminIDs)),
		zap.Int("channels", len(channels)),
		zap.String("ops_addr", cfg.OpsAddr))

	<-ctx.Done()
	logger.Info("shutting down")

	bot.Stop()
	broadcastSvc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
