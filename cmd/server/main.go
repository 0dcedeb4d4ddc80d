package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"curator/internal/audit"
	"curator/internal/auth"
	"curator/internal/exhibit"
	"curator/internal/maintenance"
	"curator/internal/museum"
	"curator/internal/platform/config"
	"curator/internal/platform/httpserver"
	"curator/internal/platform/logger"
	"curator/internal/platform/metrics"
	"curator/internal/storage/sqlite"
	httptransport "curator/internal/transport/http"
	"curator/internal/visitor"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userStore := sqlite.NewUserStore(db)
	if err := bootstrapAdmin(context.Background(), userStore); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	m := metrics.New()
	auditRec := audit.NewRecorder(sqlite.NewAuditStore(db), log)

	tokens := auth.NewTokenManager(cfg.JWTSigningKey, cfg.TokenTTL)
	authSvc := auth.NewService(userStore, auditRec, db)
	museumSvc := museum.NewService(sqlite.NewMuseumStore(db), auditRec, db)
	exhibitSvc := exhibit.NewService(sqlite.NewExhibitStore(db), auditRec, db)
	visitorSvc := visitor.NewService(sqlite.NewVisitorStore(db), auditRec, db)
	maintenanceSvc := maintenance.NewService(sqlite.NewMaintenanceStore(db), auditRec, db)

	handler := httptransport.NewHandler(log, m, tokens, authSvc, museumSvc, exhibitSvc, visitorSvc, maintenanceSvc, auditRec)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Printf("starting curator on %s (db %s)", cfg.Addr, cfg.DBPath)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}
