// The server binary wires the back-office core: it selects a store backend,
// registers the entity factories, bootstraps the first admin account, runs
// the verification-code sweep on a cron schedule and serves Prometheus
// metrics. The HTTP API lives in the outer deployment, not here.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/infra/notifier"
	"magazine-backoffice/internal/observability/logging"
	"magazine-backoffice/internal/observability/metrics"
	"magazine-backoffice/internal/pkg/config"
	"magazine-backoffice/internal/repository"
	"magazine-backoffice/internal/roles"
	"magazine-backoffice/internal/store"
	authUC "magazine-backoffice/internal/usecase/auth"
	publishUC "magazine-backoffice/internal/usecase/publish"
	userUC "magazine-backoffice/internal/usecase/user"
	verifyUC "magazine-backoffice/internal/usecase/verify"
)

// services is the fully wired core handed to the outer transport layer.
type services struct {
	Users    *userUC.Service
	Auth     *authUC.Service
	Verify   *verifyUC.Service
	Publish  *publishUC.Service
	UserRepo *repository.UserRepository
}

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	st, cleanup, err := openStore(cfg.Store)
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	svc, err := buildServices(st, cfg, logger)
	if err != nil {
		logger.Error("wire services", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bootstrapAdmin(ctx, cfg.Bootstrap, svc, logger); err != nil {
		logger.Error("bootstrap admin", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(ctx, cfg, svc, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// openStore builds the configured backend, instrumented with store metrics.
func openStore(cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.Instrument(store.NewMemoryStore(), cfg.Backend), func() {}, nil
	case config.BackendFile:
		fs, err := store.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store.Instrument(fs, cfg.Backend), func() {}, nil
	case config.BackendSQLite:
		ss, err := store.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store.Instrument(ss, cfg.Backend), func() { _ = ss.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func buildServices(st store.Store, cfg config.Config, logger *slog.Logger) (*services, error) {
	reg := repository.NewRegistry()
	if err := repository.RegisterFactories(reg); err != nil {
		return nil, err
	}

	users, err := repository.NewUserRepository(reg, st)
	if err != nil {
		return nil, err
	}
	contacts, err := repository.NewContactRepository(reg, st)
	if err != nil {
		return nil, err
	}
	secrets, err := repository.NewTwoFactorRepository(reg, st)
	if err != nil {
		return nil, err
	}
	codes, err := repository.NewVerificationRepository(reg, st)
	if err != nil {
		return nil, err
	}
	articles, err := repository.NewArticleRepository(reg, st)
	if err != nil {
		return nil, err
	}
	tasks, err := repository.NewTaskRepository(reg, st)
	if err != nil {
		return nil, err
	}

	checker := roles.NewChecker(users)
	sender := notifier.NewBreakerNotifier("notifications", notifier.NewLogNotifier(logger), 30*time.Second)
	verifySvc := verifyUC.NewService(codes, sender, logger, cfg.Verify.CodeTTL.Duration)

	return &services{
		Users:    userUC.NewService(users, contacts, secrets, codes, checker, verifySvc, sender, logger),
		Auth:     authUC.NewService(users, logger, []byte(cfg.Auth.Secret), cfg.Auth.TokenTTL.Duration),
		Verify:   verifySvc,
		Publish:  publishUC.NewService(articles, tasks, checker, logger),
		UserRepo: users,
	}, nil
}

// bootstrapAdmin creates the first admin account on an empty store so a fresh
// deployment can be signed into. The account skips login confirmation.
func bootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig, svc *services, logger *slog.Logger) error {
	if cfg.AdminLogin == "" || cfg.AdminPassword == "" {
		return nil
	}
	existing, err := svc.UserRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	admin, err := svc.Users.Create(ctx, cfg.AdminLogin, cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin.SetRole(entity.RoleAdmin)
	admin.ConfirmLogin()
	if err := svc.UserRepo.Save(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin account bootstrapped", slog.Int64("user_id", admin.ID()))
	return nil
}

func run(ctx context.Context, cfg config.Config, svc *services, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		logger.Info("metrics listener started", slog.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics listener: %w", err)
		}
		return nil
	})

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.Verify.SweepSchedule, func() {
		swept, err := svc.Verify.Sweep(context.Background())
		if err != nil {
			logger.Error("verification sweep failed", slog.Any("error", err))
			return
		}
		metrics.RecordCodesSwept(swept)
	}); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	if _, err := sched.AddFunc("@every 1m", func() {
		users, err := svc.UserRepo.GetAll(context.Background())
		if err != nil {
			return
		}
		metrics.UpdateUsersTotal(len(users))
	}); err != nil {
		return fmt.Errorf("schedule user gauge: %w", err)
	}
	sched.Start()

	g.Go(func() error {
		<-ctx.Done()
		sched.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
