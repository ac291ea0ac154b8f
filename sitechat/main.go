package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitechat/sitechat/config"
	"sitechat/sitechat/controllers"
	"sitechat/sitechat/routes"
	"sitechat/sitechat/services/llm"
	"sitechat/sitechat/services/responder"
	"sitechat/sitechat/services/scraper"
	"sitechat/sitechat/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	opts, err := scraper.LoadOptions(cfg)
	if err != nil {
		logging.ErrorLogger.Error("extractor config error", zap.Error(err))
		os.Exit(1)
	}
	ext := scraper.New(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	gen, err := llm.New(ctx, cfg)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		// extraction still works; chat answers 503 until a key is set
		logging.AppLogger.Warn("language model not configured", zap.String("provider", cfg.LLMProvider))
	case err != nil:
		logging.ErrorLogger.Error("language model setup error", zap.Error(err))
		os.Exit(1)
	}
	resp := responder.New(gen, cfg.LLMTimeout)

	r := routes.NewRouter(cfg, routes.Controllers{
		Scrape: controllers.NewScrapeController(ext, cfg.ScrapeParallel),
		Chat:   controllers.NewChatController(resp),
		Health: controllers.NewHealthController(resp.Configured()),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", cfg.LLMProvider),
			zap.Bool("llm_configured", resp.Configured()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
