// README: Entry point; loads config, wires the agent pipeline and planner, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"wandersmart/internal/ai"
	"wandersmart/internal/config"
	httptransport "wandersmart/internal/http"
	"wandersmart/internal/http/handlers"
	"wandersmart/internal/infra"
	"wandersmart/internal/itinerary"
	"wandersmart/internal/logging"
	"wandersmart/internal/maps"
	"wandersmart/internal/modules/quota"
	"wandersmart/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, closeModel, err := newModel(ctx, cfg)
	if err != nil {
		log.Fatalf("ai init: %v", err)
	}
	defer closeModel()

	crew := ai.NewCrew(model, ai.DefaultTasks(), logger)
	processor := itinerary.NewProcessor(logger, itinerary.Options{
		Repair:   cfg.Decode.Repair,
		MaxDepth: cfg.Decode.MaxDepth,
	})

	var destinations service.DestinationResolver
	if cfg.Maps.APIKey != "" {
		svc, err := maps.NewDestinationService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		destinations = svc
	}
	planner := service.NewTripPlanner(crew, destinations, processor, logger)

	var guard handlers.QuotaGuard
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()
		guard = quota.NewService(quota.NewStore(redisClient), cfg.Quota.DailyPlans)
	}

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:  handlers.NewTripHandler(planner, guard, cfg.AI.Timeout),
		Logger: logger,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", slog.String("addr", cfg.HTTP.Addr), slog.String("provider", cfg.AI.Provider))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// newModel builds the configured text model and its cleanup function.
func newModel(ctx context.Context, cfg config.Config) (ai.TextModel, func(), error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		return ai.NewOpenAIModel(cfg.AI.OpenAIKey, cfg.AI.Model), func() {}, nil
	default:
		m, err := ai.NewGeminiModel(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { _ = m.Close() }, nil
	}
}
