package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-records/internal/api/http"
	"github.com/i474232898/weather-records/internal/config"
	"github.com/i474232898/weather-records/internal/scheduler"
	"github.com/i474232898/weather-records/internal/store"
	"github.com/i474232898/weather-records/internal/weather"
	"github.com/i474232898/weather-records/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.WeatherstackAPIKey == "" {
		log.Println("INFO: WEATHERSTACK_API_KEY is not set; weather creation requests will fail")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Records live in memory for the lifetime of the process.
	memStore := store.NewMemoryStore()

	provider := providers.NewWeatherstackProvider(httpClient, providers.WeatherstackConfig{
		BaseURL:        cfg.WeatherstackBaseURL,
		APIKey:         cfg.WeatherstackAPIKey,
		MaxRetries:     cfg.ProviderMaxRetries,
		CircuitBreaker: cfg.ProviderCircuitBreaker,
	})

	service := weather.NewService(memStore, provider, weather.WithStoreOnCreate(cfg.StoreOnCreate))

	sched := scheduler.New(memStore, cfg.StoreStatsInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := newApp(cfg, service)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// newApp builds the Fiber app with middleware, health check and API routes.
func newApp(cfg *config.AppConfig, service *weather.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-records",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-records",
		})
	})

	httpapi.RegisterRoutes(app, service)
	return app
}
