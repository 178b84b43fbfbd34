package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pathecho/internal/config"
	"pathecho/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	port := flag.Int("port", 0, "override listen port")
	metricsAddr := flag.String("metrics-addr", "", "override metrics listen address (e.g. :9100)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
		log.Printf("metrics on %s/metrics", cfg.MetricsAddr)
	}

	srv := server.New(cfg, logger)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("pathecho listening on %s", srv.Addr())
		errCh <- srv.Serve(ctx)
	}()

	select {
	case <-done:
		log.Println("shutting down...")
		cancel()
		if err := <-errCh; err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("serve: %v", err)
		}
	}
	log.Println("server stopped")
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics listener: %v", err)
	}
}
