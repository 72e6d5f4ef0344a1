package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/priyan-sh/dropgate/internal/api"
	"github.com/priyan-sh/dropgate/internal/api/handlers"
	"github.com/priyan-sh/dropgate/internal/blob"
	"github.com/priyan-sh/dropgate/internal/config"
	"github.com/priyan-sh/dropgate/internal/repositories"
	"github.com/priyan-sh/dropgate/internal/services"
)

// @title DropGate API
// @version 1.0
// @description File-sharing service: upload files, mint share links with expiry and download limits, download through tokenized links.
// @BasePath /api/v1
func main() {
	cfg := config.Load()

	db, err := repositories.ConnectDatabase(cfg.DBURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	blobs := blob.NewS3Store(cfg.S3)

	users := repositories.NewUserRepository(db)
	files := repositories.NewFileRepository(db)
	shares := repositories.NewShareRepository(db)

	shareSvc := services.NewShareService(shares, files, blobs, cfg.ShareBaseURL, cfg.StrictQuota)
	fileSvc := services.NewFileService(files, blobs, shareSvc)
	viewSvc := services.NewViewService(files, shares)
	identity := services.NewIdentityService(users, cfg.JWTSecret)

	h := handlers.New(cfg, users, fileSvc, shareSvc, viewSvc)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(cfg, h, identity),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting DropGate server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
