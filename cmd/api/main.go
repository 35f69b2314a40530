package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bookseller-api/internal/api/dto"
	httptransport "github.com/spec-kit/bookseller-api/internal/api/http"
	"github.com/spec-kit/bookseller-api/internal/api/http/handlers"
	"github.com/spec-kit/bookseller-api/internal/auth"
	"github.com/spec-kit/bookseller-api/internal/config"
	"github.com/spec-kit/bookseller-api/internal/domain"
	"github.com/spec-kit/bookseller-api/internal/observability"
	"github.com/spec-kit/bookseller-api/internal/persistence"
	"github.com/spec-kit/bookseller-api/internal/repository"
	"github.com/spec-kit/bookseller-api/internal/service"
	"github.com/spec-kit/bookseller-api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	tx := repository.NewTransactor(pool)
	authorRepo := repository.NewAuthorRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	merge := cfg.Resources.UpdateMode == config.UpdateModeMerge
	authorOpts := []service.ResourceOption[domain.Author, domain.AuthorFields]{
		service.WithDependents[domain.Author, domain.AuthorFields](bookRepo.ClearAuthor),
	}
	bookOpts := []service.ResourceOption[domain.Book, domain.BookFields]{
		service.WithDependents[domain.Book, domain.BookFields](orderRepo.ClearBook),
	}
	customerOpts := []service.ResourceOption[domain.Customer, domain.CustomerFields]{
		service.WithDependents[domain.Customer, domain.CustomerFields](orderRepo.ClearCustomer),
	}
	var orderOpts []service.ResourceOption[domain.Order, domain.OrderFields]
	if merge {
		authorOpts = append(authorOpts, service.WithMerge[domain.Author, domain.AuthorFields](domain.MergeAuthor))
		bookOpts = append(bookOpts, service.WithMerge[domain.Book, domain.BookFields](domain.MergeBook))
		customerOpts = append(customerOpts, service.WithMerge[domain.Customer, domain.CustomerFields](domain.MergeCustomer))
		orderOpts = append(orderOpts, service.WithMerge[domain.Order, domain.OrderFields](domain.MergeOrder))
	}

	authorSvc := service.NewResourceService[domain.Author, domain.AuthorFields](domain.AuthorResource, authorRepo, tx, logger, authorOpts...)
	bookSvc := service.NewResourceService[domain.Book, domain.BookFields](domain.BookResource, bookRepo, tx, logger, bookOpts...)
	customerSvc := service.NewResourceService[domain.Customer, domain.CustomerFields](domain.CustomerResource, customerRepo, tx, logger, customerOpts...)
	orderSvc := service.NewResourceService[domain.Order, domain.OrderFields](domain.OrderResource, orderRepo, tx, logger, orderOpts...)

	validator := validation.New()
	resources := map[string]httptransport.ResourceRoutes{
		domain.AuthorResource.Collection: handlers.NewResourceHandler[dto.AuthorCreateRequest, dto.AuthorUpdateRequest](
			authorSvc, validator, func(a domain.Author) any { return dto.NewAuthorResponse(a) }),
		domain.BookResource.Collection: handlers.NewResourceHandler[dto.BookCreateRequest, dto.BookUpdateRequest](
			bookSvc, validator, func(b domain.Book) any { return dto.NewBookResponse(b) }),
		domain.CustomerResource.Collection: handlers.NewResourceHandler[dto.CustomerCreateRequest, dto.CustomerUpdateRequest](
			customerSvc, validator, func(c domain.Customer) any { return dto.NewCustomerResponse(c) }),
		domain.OrderResource.Collection: handlers.NewResourceHandler[dto.OrderCreateRequest, dto.OrderUpdateRequest](
			orderSvc, validator, func(o domain.Order) any { return dto.NewOrderResponse(o) }),
	}

	routeCfg := httptransport.RouteConfig{
		AuthEnabled: cfg.Auth.Enabled,
		Resources:   resources,
		Policy:      auth.Policy{},
	}
	if cfg.Auth.Enabled {
		var users repository.CredentialStore
		if cfg.Auth.CredentialStore == config.CredentialStoreRedis {
			users = repository.NewRedisUserRepository(redis.Client)
		} else {
			users = repository.NewUserRepository(pool)
		}
		authService := service.NewAuthService(cfg.Auth, users, logger)

		routeCfg.Auth = handlers.NewAuthHandler(authService, validator)
		routeCfg.AuthMiddleware = auth.NewAuthMiddleware(authService)
		routeCfg.AuthLimiter = httptransport.NewRateLimiter(cfg.Auth.RateLimitPerMinute)
		routeCfg.Policy = auth.WritePolicy(domain.Role(cfg.Auth.WriteRole),
			domain.AuthorResource.Collection,
			domain.BookResource.Collection,
			domain.CustomerResource.Collection,
			domain.OrderResource.Collection)
		logger.Info("auth enabled",
			zap.String("credential_store", cfg.Auth.CredentialStore),
			zap.String("write_role", cfg.Auth.WriteRole))
	} else {
		logger.Warn("auth disabled; write routes are open")
	}

	deps := map[string]handlers.Pinger{"postgres": pg}
	if redis.Enabled() {
		deps["redis"] = redis
	}
	routeCfg.Health = handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps)

	metrics := observability.NewMetrics()
	routeCfg.Metrics = metrics.Handler()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:           cfg.App.RequestTimeout(),
		ExposeStoreErrors: cfg.App.ExposeStoreErrors,
	})
	httptransport.RegisterRoutes(app, routeCfg)

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
