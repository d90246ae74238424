package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/menna-app/menna-backend/api/controllers"
	"github.com/menna-app/menna-backend/api/routes"
	"github.com/menna-app/menna-backend/internal/analytics"
	"github.com/menna-app/menna-backend/internal/auth"
	"github.com/menna-app/menna-backend/internal/catalog"
	"github.com/menna-app/menna-backend/internal/contacts"
	"github.com/menna-app/menna-backend/internal/leads"
	"github.com/menna-app/menna-backend/internal/plans"
	"github.com/menna-app/menna-backend/internal/providers"
	"github.com/menna-app/menna-backend/internal/reviews"
	"github.com/menna-app/menna-backend/internal/subscriptions"
	"github.com/menna-app/menna-backend/internal/users"
	"github.com/menna-app/menna-backend/pkg/config"
	"github.com/menna-app/menna-backend/pkg/db"
	"github.com/menna-app/menna-backend/pkg/logger"
	"github.com/menna-app/menna-backend/pkg/metrics"
	"github.com/menna-app/menna-backend/pkg/migrate"
	"github.com/menna-app/menna-backend/pkg/otp"
	"github.com/menna-app/menna-backend/pkg/pubsub"
	"github.com/menna-app/menna-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pingers := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var tracker analytics.Tracker = analytics.NopTracker{}
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()

		pubsubTracker, err := analytics.NewTracker(pubsubClient.AnalyticsPublisher(), logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create analytics tracker", err)
			os.Exit(1)
		}
		defer pubsubTracker.Wait()
		tracker = pubsubTracker
		pingers["pubsub"] = pubsubClient
	} else {
		logg.Warn(context.Background(), "gcp project not configured, analytics events are dropped")
	}

	otpService, err := otp.NewService(otp.ServiceParams{
		Store:  redisClient,
		Config: cfg.OTP,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create otp service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:        users.NewRepository(dbClient.DB()),
		RateLimiter:     redisClient,
		OTP:             otpService,
		JWTConfig:       cfg.JWT,
		PasswordConfig:  cfg.Password,
		RateLimitConfig: cfg.RateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	providerRepo := providers.NewRepository(dbClient.DB())

	providerService, err := providers.NewService(providers.ServiceParams{
		Repo:    providerRepo,
		Tracker: tracker,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create providers service", err)
		os.Exit(1)
	}

	contactService, err := contacts.NewService(contacts.ServiceParams{
		Repo:    contacts.NewRepository(dbClient.DB()),
		Tracker: tracker,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create contacts service", err)
		os.Exit(1)
	}

	leadService, err := leads.NewService(leads.ServiceParams{
		DB:               dbClient,
		LeadRepo:         leads.NewRepository(dbClient.DB()),
		SubscriptionRepo: subscriptions.NewRepository(dbClient.DB()),
		Tracker:          tracker,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create leads service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(dbClient.DB()),
		Contacts: contactService,
		Raters:   providerRepo,
		Tracker:  tracker,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo: catalog.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	planService, err := plans.NewService(plans.ServiceParams{
		Repo: plans.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create plans service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, httpMetrics, metricsHandler, pingers, routes.Services{
			Auth:      authService,
			Providers: providerService,
			Contacts:  contactService,
			Leads:     leadService,
			Reviews:   reviewService,
			Catalog:   catalogService,
			Plans:     planService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
