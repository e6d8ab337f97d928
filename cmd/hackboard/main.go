package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openhack/hackboard/internal/app"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/pkg/zerodb"
)

var (
	version = "dev"
)

// envOr returns the HACKBOARD_* environment value for key, or fallback
func envOr(key, fallback string) string {
	if v := os.Getenv("HACKBOARD_" + key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; real environment variables win over flag defaults
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "HTTP server port")
	baseURL := flag.String("base-url", envOr("BASE_URL", "http://localhost:8080"), "Externally reachable base URL for invitation links")
	zerodbURL := flag.String("zerodb-url", envOr("ZERODB_URL", ""), "ZeroDB API base URL")
	zerodbKey := flag.String("zerodb-key", envOr("ZERODB_API_KEY", ""), "ZeroDB API key")
	zerodbProject := flag.String("zerodb-project", envOr("ZERODB_PROJECT_ID", ""), "ZeroDB project id")
	corsOrigin := flag.String("cors-origin", envOr("CORS_ORIGIN", ""), "Allowed CORS origin for the frontend (empty allows all)")
	logLevel := flag.String("loglevel", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	httpLog := flag.Bool("http-log", false, "Log every HTTP request")
	mockBackend := flag.Bool("mock-backend", false, "Use an in-memory backend instead of ZeroDB (development only)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `HackBoard - Hackathon Management Server

Usage:
  hackboard [options]

Options:
  -port int           HTTP server port (default 8080)
  -base-url str       Externally reachable base URL for invitation links
  -zerodb-url str     ZeroDB API base URL
  -zerodb-key str     ZeroDB API key
  -zerodb-project str ZeroDB project id
  -cors-origin str    Allowed CORS origin (empty allows all)
  -loglevel str       Log level: debug, info, warn, error (default "info")
  -http-log           Log every HTTP request
  -mock-backend       Use an in-memory backend instead of ZeroDB
  -version            Show version and exit
  -help               Show this help message

Every string option also reads a HACKBOARD_* environment variable
(e.g. HACKBOARD_ZERODB_API_KEY), loaded from a .env file if present.

Examples:
  hackboard -mock-backend                # Local development, no backend
  hackboard -zerodb-url https://api.zerodb.example -zerodb-key k -zerodb-project p
  hackboard -port 80 -cors-origin https://hack.example.org

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("hackboard %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))
	if *httpLog {
		appLog.EnableHTTPLogging()
	}

	var client zerodb.Client
	if *mockBackend {
		appLog.Warn("Using in-memory mock backend, data will not persist")
		client = zerodb.NewMockClient()
	} else {
		if *zerodbURL == "" {
			log.Fatal("ZeroDB URL is required (set -zerodb-url or HACKBOARD_ZERODB_URL, or use -mock-backend)")
		}
		client = zerodb.NewHTTPClient(*zerodbURL, *zerodbKey, *zerodbProject, appLog)
	}

	var origins []string
	if *corsOrigin != "" {
		origins = []string{*corsOrigin}
	}

	a := app.New(appLog, client, app.Config{
		BaseURL:        *baseURL,
		AllowedOrigins: origins,
	})

	addr := fmt.Sprintf(":%d", *port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	case <-stop:
		appLog.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			appLog.Error("Shutdown failed", "error", err)
		}
	}
}
