package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/talkincode/foodhub/config"
	"github.com/talkincode/foodhub/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// snowflake node id for gorm-backed stores
	storeNodeID = 1

	defaultPostgresDSN = "host=127.0.0.1 user=postgres password=postgres dbname=foodhub port=5432 sslmode=disable"
	defaultMongoURI    = "mongodb://127.0.0.1:27017"
)

// openStore never fails: a store that cannot be opened is replaced by one
// whose every operation returns repository.ErrUnavailable.
func openStore(cfg config.DBConfig, datadir string) repository.Store {
	dbType := strings.ToLower(strings.TrimSpace(cfg.Type))
	store, err := newStore(dbType, cfg, datadir)
	if err != nil {
		zap.L().Error("open document store failed", zap.String("type", dbType), zap.Error(err))
		return repository.NewUnavailableStore(dbType, err)
	}
	return store
}

func newStore(dbType string, cfg config.DBConfig, datadir string) (repository.Store, error) {
	switch dbType {
	case "mongodb", "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return repository.OpenMongoStore(ctx, valueOr(cfg.URL, defaultMongoURI), cfg.Name)
	case "bolt", "bbolt":
		path, err := filePath(cfg.URL, datadir, "foodhub.bolt")
		if err != nil {
			return nil, err
		}
		return repository.OpenBoltStore(path)
	case "sqlite", "sqlite3":
		path, err := filePath(cfg.URL, datadir, "foodhub.db")
		if err != nil {
			return nil, err
		}
		return newGormStore(sqlite.Open(path), cfg.Debug)
	default:
		return newGormStore(postgres.Open(valueOr(cfg.URL, defaultPostgresDSN)), cfg.Debug)
	}
}

func newGormStore(dialector gorm.Dialector, debug bool) (repository.Store, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		// startup must survive an unreachable database
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	node, err := snowflake.NewNode(storeNodeID)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db, node), nil
}

// filePath resolves an embedded store file, defaulting into the data dir
func filePath(url, datadir, name string) (string, error) {
	path := strings.TrimSpace(url)
	if path == "" {
		path = filepath.Join(datadir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
