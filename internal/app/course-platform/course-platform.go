// Package courseplatform собирает и запускает основное приложение платформы.
package courseplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-platform/internal/cache"
	"github.com/magabrotheeeer/course-platform/internal/config"
	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/migrations"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/course-platform/internal/rabbitmq"
	adminservice "github.com/magabrotheeeer/course-platform/internal/services/admin"
	authservice "github.com/magabrotheeeer/course-platform/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/course-platform/internal/services/catalog"
	checkoutservice "github.com/magabrotheeeer/course-platform/internal/services/checkout"
	paymentservice "github.com/magabrotheeeer/course-platform/internal/services/payment"
	progressservice "github.com/magabrotheeeer/course-platform/internal/services/progress"
	"github.com/magabrotheeeer/course-platform/internal/storage/repository"
)

// App хранит все проинициализированные зависимости приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	broker *amqp.Connection
}

// New собирает приложение: хранилище, миграции, кеш, платёжный провайдер,
// брокер событий, сервисы и HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	providerClient := paymentprovider.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.Timeout)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	// Брокер событий опционален: без него покупки проходят,
	// но событие purchase.completed не публикуется.
	var broker *amqp.Connection
	var publisher paymentservice.EventPublisher
	if cfg.RabbitMQ.AMQPAddress != "" {
		broker, err = rabbitmq.Connect(cfg.RabbitMQ.AMQPAddress, 5, 2*time.Second)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, purchase events will not be published", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(broker, cfg.RabbitMQ.Exchange, rabbitmq.GetPurchaseQueues())
			if err != nil {
				return nil, err
			}
			publisher = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
		}
	}

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	checkoutService := checkoutservice.NewCheckoutService(db, providerClient, cfg.Stripe, logger)
	paymentService := paymentservice.New(db, providerClient, publisher, cfg.Stripe.Currency, logger)
	progressService := progressservice.NewProgressService(db, logger)
	adminService := adminservice.NewAdminService(db, catalogService, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, catalogService, checkoutService,
		paymentService, progressService, adminService)

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
		cache:  cacheRedis,
		broker: broker,
	}, nil
}

// Run запускает HTTP-сервер и завершает его по отмене контекста.
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
		a.db.DB.Close()
		if a.broker != nil {
			a.broker.Close()
		}
		return err
	}
}
