package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"shelf/internal/config"
	"shelf/internal/httpapi"
	"shelf/internal/metrics"
	"shelf/internal/metrics/datadog"
	"shelf/internal/metrics/prompush"
	"shelf/internal/orm"
	"shelf/internal/storage"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// listen is a test hook so tests can bind an ephemeral port.
var listen = func(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

// run opens the store, creates the API tables and serves HTTP until ctx is
// cancelled. Metrics are flushed on the configured interval and once more on
// the way out.
func run(ctx context.Context, cfg config.App, logger *log.Logger, verbose bool) error {
	closeMetrics, err := setupMetrics(cfg.Metrics, logger, verbose)
	if err != nil {
		return err
	}
	defer closeMetrics()

	ormLogger := logger
	if !verbose {
		ormLogger = log.New(io.Discard, "", 0)
	}
	db, err := orm.Open(ctx, storage.Config{
		Kind:        cfg.Storage.Kind,
		DSN:         cfg.Storage.DSN,
		BusyTimeout: cfg.Storage.BusyTimeout(),
	}, orm.WithLogger(ormLogger))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateAll(ctx, httpapi.Schemas()...); err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if strings.TrimSpace(addr) == "" {
		addr = config.DefaultAddr
	}
	ln, err := listen(addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           httpapi.NewServer(db, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Printf("shelf: serving addr=%s storage=%s", ln.Addr(), cfg.Storage.Kind)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Printf("shelf: shutting down")
		return srv.Shutdown(sctx)
	})
	if every := time.Duration(cfg.Metrics.FlushIntervalMS) * time.Millisecond; every > 0 {
		g.Go(func() error {
			flushEvery(gctx, every, logger)
			return nil
		})
	}
	return g.Wait()
}

// setupMetrics installs the configured metrics backend and returns a func
// that flushes (and for DogStatsD, closes) it.
func setupMetrics(m config.Metrics, logger *log.Logger, verbose bool) (func(), error) {
	flush := func() {
		if err := metrics.Flush(); err != nil {
			logger.Printf("metrics: flush error: %v", err)
		}
	}

	switch m.Backend {
	case "prompush":
		gwURL := m.PushgatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		job := m.Job
		if job == "" {
			job = "shelf"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			return nil, fmt.Errorf("metrics: prompush: %w", err)
		}
		logger.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, m.Backend, job)
		metrics.SetBackend(b)
		return flush, nil

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       m.Datadog.Addr,
			Namespace:  m.Datadog.Namespace,
			GlobalTags: m.Datadog.Tags,
		})
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		logger.Printf("metrics: addr=%v, backend=%v", m.Datadog.Addr, m.Backend)
		metrics.SetBackend(b)
		return func() {
			flush()
			if err := b.Close(); err != nil {
				logger.Printf("metrics: close error: %v", err)
			}
		}, nil

	case "", "none":
		if verbose {
			logger.Printf("metrics: disabled (backend=%q)", m.Backend)
		}
		return func() {}, nil

	default:
		return nil, fmt.Errorf("metrics: unknown backend %q", m.Backend)
	}
}

func flushEvery(ctx context.Context, every time.Duration, logger *log.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := metrics.Flush(); err != nil {
				logger.Printf("metrics: flush error: %v", err)
			}
		}
	}
}
