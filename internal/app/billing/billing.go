package billing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/billing-service/internal/cache"
	"github.com/magabrotheeeer/billing-service/internal/config"
	"github.com/magabrotheeeer/billing-service/internal/gateway"
	"github.com/magabrotheeeer/billing-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/billing-service/internal/metrics"
	"github.com/magabrotheeeer/billing-service/internal/migrations"
	"github.com/magabrotheeeer/billing-service/internal/notify"
	billingservice "github.com/magabrotheeeer/billing-service/internal/services/billing"
	customerservice "github.com/magabrotheeeer/billing-service/internal/services/customer"
	dunningservice "github.com/magabrotheeeer/billing-service/internal/services/dunning"
	"github.com/magabrotheeeer/billing-service/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	billingMetrics := metrics.NewBillingMetrics(registry)

	notifier := notify.New(ch, billingMetrics, logger)
	dunningService := dunningservice.New(notifier, logger)
	gw := gateway.New(gateway.DefaultSource(), cfg.GatewaySuccessRate, logger)

	customerService := customerservice.New(db, cacheRedis, logger)
	billingService := billingservice.New(db, gw, dunningService, notifier, cacheRedis, billingMetrics, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, billingService, customerService, registry)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.amqp.Close()
		_ = a.db.DB.Close()
		return err
	}
}
