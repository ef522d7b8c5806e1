package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/foodhub/config"
	"github.com/talkincode/foodhub/internal/repository"
	"go.uber.org/zap"
)

func newTestApplication(t *testing.T, dbType string) *Application {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.Database.Type = dbType

	a := NewApplication(cfg)
	a.OverrideStore(openStore(cfg.Database, cfg.GetDataDir()))
	require.NoError(t, a.MigrateDB(context.Background()))
	t.Cleanup(a.Release)
	return a
}

func TestOpenStoreByType(t *testing.T) {
	dir := t.TempDir()

	bolt := openStore(config.DBConfig{Type: "bolt"}, dir)
	assert.Equal(t, "bolt", bolt.Name())
	require.NoError(t, bolt.Close())

	sqlite := openStore(config.DBConfig{Type: "SQLite", URL: filepath.Join(dir, "x", "foodhub.db")}, dir)
	assert.Equal(t, "sqlite", sqlite.Name())
	require.NoError(t, sqlite.Close())
}

func TestOpenStoreFailureKeepsServing(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be opened as a bolt file
	store := openStore(config.DBConfig{Type: "bolt", URL: dir}, dir)

	_, err := store.Menus().List(context.Background())
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestSeedMenuIsNotIdempotent(t *testing.T) {
	for _, dbType := range []string{"sqlite", "bolt"} {
		t.Run(dbType, func(t *testing.T) {
			ctx := context.Background()
			a := newTestApplication(t, dbType)

			n, err := a.SeedMenu(ctx)
			require.NoError(t, err)
			assert.Equal(t, 12, n)

			rows, err := a.Menus().List(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 12)
			assert.Equal(t, "Margherita Pizza", rows[0].FoodName)
			assert.Equal(t, "$8.99", rows[0].Price)
			assert.Equal(t, "food12.jpg", rows[11].Image)

			_, err = a.SeedMenu(ctx)
			require.NoError(t, err)
			rows, err = a.Menus().List(ctx)
			require.NoError(t, err)
			assert.Len(t, rows, 24)
		})
	}
}

func TestInitDbClearsCollections(t *testing.T) {
	ctx := context.Background()
	a := newTestApplication(t, "bolt")
	_, err := a.SeedMenu(ctx)
	require.NoError(t, err)

	require.NoError(t, a.InitDb(ctx))

	rows, err := a.Menus().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, a.Ping(ctx))
}

func TestDefaultMenuItemsFreshCopies(t *testing.T) {
	first := defaultMenuItems()
	first[0].ID = "taken"
	assert.Empty(t, defaultMenuItems()[0].ID)
}

func TestStoreMonitorTracksReachability(t *testing.T) {
	a := newTestApplication(t, "sqlite")

	a.SchedStoreMonitorTask()
	assert.Equal(t, float64(1), testutil.ToFloat64(a.stats.storeUp))
	assert.True(t, a.storeUp.Load())

	sqlite := a.Store()
	t.Cleanup(func() { _ = sqlite.Close() })
	a.OverrideStore(repository.NewUnavailableStore("postgres", errors.New("connection refused")))
	a.SchedStoreMonitorTask()
	assert.Equal(t, float64(0), testutil.ToFloat64(a.stats.storeUp))
	assert.False(t, a.storeUp.Load())
}

func TestProcessMonitorReportsMemory(t *testing.T) {
	a := NewApplication(config.DefaultAppConfig())
	a.SchedProcessMonitorTask()
	assert.Greater(t, testutil.ToFloat64(a.stats.memUse), float64(0))
	assert.Len(t, a.Collectors(), 1)
}

func TestJobLifecycle(t *testing.T) {
	a := newTestApplication(t, "bolt")
	a.initJob()
	require.NotNil(t, a.sched)
	require.NotNil(t, a.pool)
	assert.Len(t, a.sched.Entries(), 1)
	a.stopJob()
	assert.True(t, a.pool.IsClosed())
}

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	cfg := config.LogConfig{
		Mode:       "production",
		FileEnable: true,
		Filename:   filepath.Join(t.TempDir(), "logs", "foodhub.log"),
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 3,
	}
	logger, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Info("order saved", zap.String("id", "42"))
	logger.Debug("not written in production mode")
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"order saved"`)
	assert.NotContains(t, string(data), "not written")

	rot := logRotator(cfg)
	assert.Equal(t, 1, rot.MaxSize)
	assert.Equal(t, 2, rot.MaxBackups)
	assert.Equal(t, 3, rot.MaxAge)
}
