package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/batisuivi/batisuivi/config"
	"github.com/batisuivi/batisuivi/internal/data"
	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	httpx "github.com/batisuivi/batisuivi/internal/http"
	"github.com/batisuivi/batisuivi/internal/observability/metrics"
	"github.com/batisuivi/batisuivi/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Salaries  *service.SalarieService
	Chantiers *service.ChantierService
	Dashboard *service.DashboardService

	Sessions *httpx.SessionManager
	Metrics  *metrics.Collector
	Registry *prometheus.Registry

	HealthChecks []httpx.HealthCheck
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, adapters and services.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil || deps.DB == nil {
		return nil, errors.New("service deps require config and database")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if err := domainauth.ValidateSpaceTable(); err != nil {
		return nil, fmt.Errorf("space table: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	authCfg := AuthConfig{Auth: cfg.Auth, IsDev: cfg.IsDev, RedisClient: deps.RedisClient, Logger: logger}
	sessions, err := BuildSessionManager(authCfg)
	if err != nil {
		return nil, err
	}
	hasher := BuildPasswordHasher(cfg.Auth)

	checks := []httpx.HealthCheck{{Name: "postgres", Probe: deps.DB.PingContext}}
	if deps.RedisClient != nil {
		checks = append(checks, httpx.HealthCheck{Name: "redis", Probe: func(ctx context.Context) error {
			return deps.RedisClient.Ping(ctx).Err()
		}})
	}

	users := data.NewUserRepo(deps.DB)
	salaries := data.NewSalarieRepo(deps.DB)
	chantiers := data.NewChantierRepo(deps.DB)

	return &ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:  users,
			Hasher: hasher,
			Config: service.AuthServiceConfig{
				Throttle: BuildLoginThrottle(authCfg),
				Metrics:  collector,
				Logger:   logger,
			},
		}),
		Users:     service.NewUserService(service.UserServiceOptions{Users: users, Hasher: hasher, Logger: logger}),
		Salaries:  service.NewSalarieService(service.SalarieServiceOptions{Repo: salaries, Hasher: hasher}),
		Chantiers: service.NewChantierService(service.ChantierServiceOptions{Repo: chantiers}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Chantiers: chantiers,
			Salaries:  salaries,
			Users:     users,
		}),
		Sessions:     sessions,
		Metrics:      collector,
		Registry:     registry,
		HealthChecks: checks,
	}, nil
}

// RateLimiterConfig converts the per-minute settings into token bucket limits.
func RateLimiterConfig(cfg config.RateLimitConfig) httpx.RateLimiterConfig {
	out := httpx.DefaultRateLimiterConfig()
	out.LoginRate = rate.Limit(float64(cfg.LoginPerMinute) / 60)
	out.LoginBurst = cfg.LoginBurst
	out.APIRate = rate.Limit(float64(cfg.APIPerMinute) / 60)
	out.APIBurst = cfg.APIBurst
	return out
}

// RouterServices builds the router dependencies from the container.
func RouterServices(cfg *config.AppConfig, svc *ServiceContainer, limiter *httpx.RateLimiter, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		Auth:         svc.Auth,
		Sessions:     svc.Sessions,
		Users:        svc.Users,
		Salaries:     svc.Salaries,
		Chantiers:    svc.Chantiers,
		Dashboard:    svc.Dashboard,
		RateLimiter:  limiter,
		Metrics:      svc.Metrics,
		HealthChecks: svc.HealthChecks,
		IsDev:        cfg.IsDev,
		Logger:       logger,
	}
	if cfg.HTTP.MetricsEnabled && svc.Registry != nil {
		rs.Gatherer = svc.Registry
	}
	return rs
}

// ServiceOrchestrationConfig contains everything needed to run the server.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until a signal or a
// server error, then shuts down gracefully.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *httpx.RateLimiter
	if cfg.Config.RateLimit.Enabled {
		limiter = httpx.NewRateLimiter(RateLimiterConfig(cfg.Config.RateLimit), cfg.Services.Metrics, logger)
		defer limiter.Stop()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		HTTP:    cfg.Config.HTTP,
		Handler: httpx.NewRouter(RouterServices(cfg.Config, cfg.Services, limiter, logger)),
		Logger:  logger,
		ErrCh:   errCh,
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Info("shutting down services...")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}

	if err := ShutdownHTTPServer(ShutdownConfig{
		Context: context.WithoutCancel(ctx),
		Server:  server,
		Timeout: cfg.Config.HTTP.ShutdownTimeout,
		Logger:  logger,
	}); err != nil {
		return errors.Join(runErr, fmt.Errorf("shutdown http server: %w", err))
	}
	return runErr
}
