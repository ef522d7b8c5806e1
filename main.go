package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talkincode/foodhub/config"
	"github.com/talkincode/foodhub/internal/api"
	"github.com/talkincode/foodhub/internal/app"
	"github.com/talkincode/foodhub/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	BuildVersion = "latest"
	BuildTime    = ""
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop all collections, recreate the schema and exit")
	seed     = flag.Bool("seed", false, "insert the starter menu and exit")
)

const shutdownTimeout = 10 * time.Second

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("foodhub %s %s\n", BuildVersion, BuildTime)
		return
	}
	if *h {
		flag.Usage()
		return
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		if err := application.InitDb(context.Background()); err != nil {
			zap.L().Fatal("init database failed", zap.Error(err))
		}
		zap.L().Info("database initialized")
		return
	}
	if *seed {
		n, err := application.SeedMenu(context.Background())
		if err != nil {
			zap.L().Fatal("seed menu failed", zap.Error(err))
		}
		zap.L().Info("menu seeded", zap.Int("count", n))
		return
	}

	api.Init()
	server := webserver.NewWebServer(application)
	for _, r := range webserver.Routes() {
		zap.L().Debug("route", zap.String("route", r))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		zap.L().Info("shutting down web server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("web server stopped", zap.Error(err))
	}
}
