// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripplanner/internal/ai"
	"tripplanner/internal/config"
	httptransport "tripplanner/internal/http"
	"tripplanner/internal/infra"
	"tripplanner/internal/maps"
	"tripplanner/internal/modules/quota"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("TRIP_FIREBASE_PROJECT_ID is required")
	}
	firestoreClient, err := infra.NewFirestore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer firestoreClient.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	generator, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer generator.Close()

	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	sessionStore := session.NewRedisStore(redisClient)
	sessionSvc := session.NewService(sessionStore)

	// The quota bound is optional: without a DSN generations are unlimited.
	var quotaSvc trip.QuotaChecker
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		quotaSvc = quota.NewService(quota.NewStore(dbPool))
	}

	tripStore := trip.NewStore(firestoreClient)
	tripSvc := trip.NewService(generator, tripStore, quotaSvc)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:    tripSvc,
		Sessions: sessionSvc,
		Places:   placesSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
