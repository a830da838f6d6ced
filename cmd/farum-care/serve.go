package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/PabloGalante/farum-care/internal/adapters/http"
	"github.com/PabloGalante/farum-care/internal/adapters/llm"
	"github.com/PabloGalante/farum-care/internal/adapters/notify"
	firestorestore "github.com/PabloGalante/farum-care/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/farum-care/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-care/internal/app/demo"
	"github.com/PabloGalante/farum-care/internal/app/notifications"
	"github.com/PabloGalante/farum-care/internal/app/treatmentplan"
	"github.com/PabloGalante/farum-care/internal/app/userplan"
	"github.com/PabloGalante/farum-care/internal/config"
	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "port to listen on")
	serveCmd.Flags().String("storage-backend", config.StorageMemory, "storage backend: memory or firestore")
	serveCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")

	_ = v.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyStorageBackend, serveCmd.Flags().Lookup("storage-backend"))
	_ = v.BindPFlag(config.KeyLogLevel, serveCmd.Flags().Lookup("log-level"))
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.Configure(os.Stdout, cfg.LogLevel)
	log := observability.Logger()

	// Choose between mock and Vertex by config (mock is the local default)
	var generator domain.PlanGenerator
	if cfg.UseMockLLM {
		log.Info("using mock plan generator")
		generator = llm.NewMockGenerator()
	} else {
		log.Info("using Vertex plan generator", "model", cfg.ModelName)
		g, err := llm.NewVertexGenerator(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			return fmt.Errorf("initializing Vertex plan generator: %w", err)
		}
		generator = g
	}

	// Storage: Firestore or Memory
	var store domain.Store
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		log.Info("using Firestore storage", "project", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return fmt.Errorf("initializing Firestore store: %w", err)
		}
		defer fsStore.Close()
		store = fsStore
	default:
		log.Info("using in-memory storage")
		store = memstore.NewStore()
	}

	seeder, err := demo.NewSeeder(store)
	if err != nil {
		return err
	}
	if cfg.SeedOnStart {
		if _, err := seeder.Reset(ctx); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	handler := httpadapter.NewServer(httpadapter.Services{
		TreatmentPlans: treatmentplan.NewService(store, generator),
		UserPlans:      userplan.NewService(store),
		Notifications:  notifications.NewService(notify.NewLogNotifier()),
		Seeder:         seeder,
	}, httpadapter.Options{AllowedOrigin: cfg.CORSAllowedOrigin})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("farum-care API listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
