package app

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/foodhub/config"
	"github.com/talkincode/foodhub/internal/domain"
	"github.com/talkincode/foodhub/internal/mailer"
	"github.com/talkincode/foodhub/internal/repository"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const startupCheckTimeout = 15 * time.Second

type Application struct {
	appConfig *config.AppConfig
	store     repository.Store
	mailer    mailer.Sender
	sched     *cron.Cron
	pool      *ants.Pool
	stats     *runtimeStats
	storeUp   atomic.Bool
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ StoreProvider   = (*Application)(nil)
	_ MailerProvider  = (*Application)(nil)
	_ MetricsProvider = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig, stats: newRuntimeStats()}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() repository.Store {
	return a.store
}

func (a *Application) Menus() repository.Repository[domain.MenuItem] {
	return a.store.Menus()
}

func (a *Application) Contacts() repository.Repository[domain.ContactMessage] {
	return a.store.Contacts()
}

func (a *Application) Orders() repository.Repository[domain.Order] {
	return a.store.Orders()
}

func (a *Application) Mailer() mailer.Sender {
	return a.mailer
}

// Collectors returns the application gauges for the metrics endpoint
func (a *Application) Collectors() []prometheus.Collector {
	return []prometheus.Collector{a.stats}
}

// OverrideStore replaces the application's store (used in tests).
func (a *Application) OverrideStore(store repository.Store) {
	a.store = store
}

// OverrideMailer replaces the application's mail sender (used in tests).
func (a *Application) OverrideMailer(m mailer.Sender) {
	a.mailer = m
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg)

	// The store and mail handles live for the whole process. Neither a
	// failed connection nor a failed mail check stops the server.
	a.store = openStore(cfg.Database, cfg.GetDataDir())
	zap.S().Infof("Document store ready, type: %s", a.store.Name())

	ctx, cancel := context.WithTimeout(context.Background(), startupCheckTimeout)
	defer cancel()
	if err := a.store.Ping(ctx); err != nil {
		zap.L().Error("document store connection error", zap.Error(err))
	} else {
		zap.L().Info("document store connected")
		a.storeUp.Store(true)
		a.stats.storeUp.Set(1)
	}
	if err := a.MigrateDB(ctx); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.mailer = mailer.NewSMTPMailer(cfg.Mail)
	go a.checkMailer()

	a.initJob()
}

func initLogger(cfg *config.AppConfig) {
	logger, err := newLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// newLogger writes to stdout and, when enabled, to a rotated JSON file
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	console := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if cfg.Mode == "production" {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		console = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	cores := []zapcore.Core{zapcore.NewCore(console, zapcore.Lock(os.Stdout), level)}
	if cfg.FileEnable {
		if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
			return nil, errors.Wrap(err, "create log dir")
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(logRotator(cfg)),
			level,
		))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func logRotator(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// checkMailer verifies the mail transport once, log only
func (a *Application) checkMailer() {
	ctx, cancel := context.WithTimeout(context.Background(), startupCheckTimeout)
	defer cancel()
	if err := a.mailer.Verify(ctx); err != nil {
		zap.L().Error("mail transport error", zap.Error(err))
		return
	}
	zap.L().Info("mail transport ready")
}

func (a *Application) MigrateDB(ctx context.Context) error {
	return a.store.Migrate(ctx)
}

// InitDb drops every collection and recreates the schema
func (a *Application) InitDb(ctx context.Context) error {
	if err := a.store.Drop(ctx); err != nil {
		zap.L().Error("drop collections failed", zap.Error(err))
	}
	return a.store.Migrate(ctx)
}

// Ping reports whether the store answers
func (a *Application) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// Release releases application resources
func (a *Application) Release() {
	a.stopJob()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			zap.L().Warn("close document store", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
