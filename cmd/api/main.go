package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stridekart/backend/api/routes"
	"github.com/stridekart/backend/internal/accounts"
	"github.com/stridekart/backend/internal/cart"
	"github.com/stridekart/backend/internal/catalog"
	"github.com/stridekart/backend/internal/complaints"
	"github.com/stridekart/backend/internal/orders"
	"github.com/stridekart/backend/internal/reviews"
	"github.com/stridekart/backend/pkg/auth/session"
	"github.com/stridekart/backend/pkg/config"
	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/identity"
	"github.com/stridekart/backend/pkg/logger"
	"github.com/stridekart/backend/pkg/mailer"
	"github.com/stridekart/backend/pkg/metrics"
	"github.com/stridekart/backend/pkg/migrate"
	"github.com/stridekart/backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	identityClient, err := identity.NewClient(cfg.Identity)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity client", err)
		os.Exit(1)
	}

	mail := mailer.NewSMTPMailer(cfg.Mail, logg)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	accountService, err := accounts.NewService(accounts.ServiceParams{
		DB:             dbClient,
		Identity:       identityClient,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	registerService, err := accounts.NewRegisterService(accounts.RegisterServiceParams{
		DB:             dbClient,
		Identity:       identityClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	complaintService, err := complaints.NewService(complaints.ServiceParams{
		DB:     dbClient,
		Mailer: mail,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create complaint service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			HTTPMetrics:     httpMetrics,
			ProfileLoader:   accounts.NewRepository(dbClient.DB()),
			AccountService:  accountService,
			RegisterService: registerService,
			CatalogService:  catalogService,
			CartService:     cartService,
			OrderService:    orderService,
			ReviewService:   reviewService,
			ComplaintSvc:    complaintService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
