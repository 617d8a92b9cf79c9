package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"sales-insights-go/internal/dashboard"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/server"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "sales-insights-go").Info("starting service")

	dataDir := envOr("DATA_DIR", "data")
	variant := dashboard.VariantByName(os.Getenv("DASHBOARD_VARIANT"))
	log.WithField("data_dir", dataDir).WithField("variant", variant.Name).Info("loading dataset")

	srv := server.New(dataDir, variant)
	if _, err := srv.Reload(); err != nil {
		// a missing data root is user-visible but not fatal for the
		// process; the dashboard shows the error over an empty dataset
		log.WithError(err).Error("initial load failed")
	} else {
		snap := srv.Snapshot()
		log.WithField("records", len(snap.Dataset.Rows)).
			WithField("warnings", len(snap.Warnings)).
			Info("dataset loaded")
	}

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
