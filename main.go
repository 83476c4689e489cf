package main

import (
	"context"
	"embed"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cartsight/adapters/dataset"
	"cartsight/app"
	"cartsight/internal/config"
	"cartsight/ui"
)

//go:embed ui/templates/* ui/static/* ui/about.md
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := dataset.NewLoader(appConfig.Data.ReportsDir)
	service := app.NewReportService(loader)

	// First load; a missing dataset degrades to an empty dashboard, anything
	// else is fatal at startup.
	if err := service.Reload(ctx); err != nil {
		log.Fatalf("Failed to load analysis dataset: %v", err)
	}

	server := ui.NewServer(embeddedFiles)
	if err := server.Initialize(service, appConfig.Data.ReportsDir); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return server.Start(":" + appConfig.Server.Port)
	})

	group.Go(func() error {
		return service.RefreshLoop(ctx, appConfig.Data.RefreshInterval)
	})

	if appConfig.Profiling.Enabled {
		group.Go(func() error {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			return http.ListenAndServe(":"+appConfig.Profiling.Port, nil)
		})
	}

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("Server exited: %v", err)
	}
}
