package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	"github.com/mr1hm/go-sachet-alerts/internal/api"
	"github.com/mr1hm/go-sachet-alerts/internal/broadcast"
	"github.com/mr1hm/go-sachet-alerts/internal/capalert"
	"github.com/mr1hm/go-sachet-alerts/internal/config"
	"github.com/mr1hm/go-sachet-alerts/internal/feed"
	"github.com/mr1hm/go-sachet-alerts/internal/gazetteer"
	"github.com/mr1hm/go-sachet-alerts/internal/ingestion"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/logging"
	"github.com/mr1hm/go-sachet-alerts/internal/observability"
	"github.com/mr1hm/go-sachet-alerts/internal/repository"
	"github.com/mr1hm/go-sachet-alerts/internal/sink"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	store, err := repository.NewStore(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()
	filter := livefilter.New(clock, cfg.Location())
	gaz := gazetteer.Default()
	parser := feed.NewParser(gaz, capalert.NewParser(gaz, filter), filter)
	orch := ingestion.NewOrchestrator(cfg.Feed, parser, filter, metrics)

	// Broadcaster feeds the SSE stream
	broadcaster := broadcast.NewBroadcaster()

	sinks := []ingestion.Sink{store, broadcaster}
	if cfg.Redis.URL != "" {
		rs, err := sink.NewRedisFromURL(cfg.Redis)
		if err != nil {
			logging.Fatalf("Failed to initialize redis sink: %v", err)
		}
		defer rs.Close()
		sinks = append(sinks, rs)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		ks := sink.NewKafka(cfg.Kafka)
		defer ks.Close()
		sinks = append(sinks, ks)
	}

	// Start ingestion manager
	mgr := ingestion.NewManager(cfg, orch, clock, metrics, sinks...)
	mgr.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimit))

	handler := api.NewHandler(store, broadcaster, metrics)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
