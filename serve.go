package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/config"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/controlers"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/database"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/routes"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/services"
)

const shutdownTimeout = 30 * time.Second

// openStore is replaced in tests.
var openStore = database.Open

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := conf.Validate(); err != nil {
				return err
			}

			log, err := config.NewLogger(conf.LogDir, conf.IsProduction())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			return serve(cmd.Context(), conf, log)
		},
	}
}

func serve(ctx context.Context, conf config.Config, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, conf.StorageDriver, conf.MongoURL, conf.DatabaseName, conf.SQLitePath)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", conf.StorageDriver, err)
	}
	log.Infow("storage connected", "driver", conf.StorageDriver)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Errorw("storage disconnect failed", "error", err)
		}
	}()

	gen, err := libs.NewGenerator(ctx, conf.LLMProvider, conf.APIKey(), conf.LLMModel, conf.LLMBaseURL)
	if err != nil {
		return fmt.Errorf("init %s model client: %w", conf.LLMProvider, err)
	}
	if gen == nil {
		log.Warnw("no model API key configured, replies use the fallback tables", "provider", conf.LLMProvider)
	}

	var limiter gin.HandlerFunc
	if conf.RedisAddr != "" {
		counter, err := libs.NewRedisCounter(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer counter.Close()
		limiter = libs.RateLimit(counter, conf.ChatRateLimit, time.Minute, log)
		log.Infow("chat rate limit enabled", "per_minute", conf.ChatRateLimit)
	}

	tokens := libs.NewTokens(conf.SecretKey, conf.TokenTTL())
	classifier := services.NewClassifier(gen, conf.LLMTimeout, log)
	responder := services.NewResponder(gen, conf.LLMTimeout, log)

	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), libs.RequestLogger(log), libs.CORS(conf.AllowedOrigins()))

	routes.InitRoutes(r, routes.Deps{
		Users:       controlers.NewUserController(services.NewAuthService(store, tokens, conf.DBTimeout), log),
		Chat:        controlers.NewChatController(services.NewChatService(store, classifier, responder, conf.DBTimeout), log),
		Analytics:   controlers.NewAnalyticsController(services.NewAnalyticsService(store, conf.DBTimeout), log),
		Verifier:    tokens,
		ChatLimiter: limiter,
	})

	srv := &http.Server{
		Addr:    ":" + conf.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "addr", srv.Addr, "environment", conf.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}
	log.Infow("server stopped")
	return nil
}
