package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/fiesta-awwards/cliparse"
	"github.com/danielhkuo/fiesta-awwards/countdown"
	"github.com/danielhkuo/fiesta-awwards/db"
	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/feed"
	"github.com/danielhkuo/fiesta-awwards/identity"
	"github.com/danielhkuo/fiesta-awwards/middleware"
	"github.com/danielhkuo/fiesta-awwards/router"
	"github.com/danielhkuo/fiesta-awwards/rules"
	"github.com/danielhkuo/fiesta-awwards/users"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "driver", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", cfg.DatabaseType)

	store := docstore.New(dbConn, cfg.DatabaseType)
	defer store.Close()

	// Rules and jury list, reloaded on change
	loaded, err := rules.Load(cfg.RulesPath)
	if err != nil {
		slog.Error("rules load failed", "error", err, "path", cfg.RulesPath)
		os.Exit(1)
	}
	ruleStore := rules.NewStore(loaded)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idc := identity.New(cfg.IdentitySecret, cfg.SessionTTL, users.New(store))

	appFeed := feed.New(feed.StoreSource{Client: store})
	if err := appFeed.Start(ctx); err != nil {
		slog.Error("feed start failed", "error", err)
		os.Exit(1)
	}
	defer appFeed.Stop()

	ticker := countdown.NewTicker(cfg.Deadline)

	mux := router.NewRouter(router.Deps{
		Store:    store,
		Feed:     appFeed,
		Identity: idc,
		Rules:    ruleStore,
		Ticker:   ticker,
		Config:   cfg,
	})

	// Create server. Hijacked websocket connections only see ctx.
	server := http.Server{
		Handler:     middleware.CORS(mux),
		Addr:        ":" + strconv.Itoa(cfg.Port),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return rules.NewWatcher(cfg.RulesPath, ruleStore).Run(gctx)
	})
	g.Go(func() error {
		return idc.RunJanitor(gctx, time.Minute)
	})
	g.Go(func() error {
		return ticker.Run(gctx, nil)
	})
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "deadline", cfg.Deadline.Format(countdown.DeadlineLayout))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
