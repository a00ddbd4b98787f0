package main

import (
	"context"
	dbsql "database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/config"
	httpAPI "github.com/iyhunko/product-catalog/internal/http"
	"github.com/iyhunko/product-catalog/internal/http/controller"
	"github.com/iyhunko/product-catalog/internal/logger"
	"github.com/iyhunko/product-catalog/internal/metrics"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"github.com/iyhunko/product-catalog/internal/repository/memory"
	"github.com/iyhunko/product-catalog/internal/repository/sql"
	"github.com/iyhunko/product-catalog/internal/service"
	sqspkg "github.com/iyhunko/product-catalog/internal/sqs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(logger.ParseLevel(conf.LogLevel, conf.DebugMode))
	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, db, err := openStore(ctx, conf)
	handleErr("opening product store", err)
	if db != nil {
		defer db.Close()
	}

	notifier, err := newNotifier(ctx, conf)
	handleErr("creating notifier", err)

	sessions := service.NewSessions(conf.Wizard.SessionTTL)
	catalogService := service.NewCatalogService(store, sessions, notifier)

	sweeper := service.NewSessionSweeper(sessions, max(conf.Wizard.SessionTTL/4, time.Second))
	go sweeper.Start(ctx)

	// Start HTTP server
	ctr := controller.New(conf)
	productCtr := controller.NewProductController(catalogService)
	wizardCtr := controller.NewWizardController(catalogService)
	router := httpAPI.InitRouter(gin.New(), ctr, productCtr, wizardCtr)

	httpServer := &http.Server{
		Addr:              ":" + conf.HTTPServer.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("HTTP server starting", slog.String("port", conf.HTTPServer.Port), slog.String("store", conf.Store.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metricsServer := metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	slog.Info("Shutting down gracefully...")

	sweeper.Stop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", slog.Any("err", err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics server shutdown failed", slog.Any("err", err))
	}
}

// openStore returns the configured product store. The database handle is nil for the memory driver.
func openStore(ctx context.Context, conf *config.Config) (repository.ProductStore, *dbsql.DB, error) {
	if conf.Store.Driver != config.StoreDriverPostgres {
		var seed []*model.Product
		if conf.Store.SeedDefaultProduct {
			seed = append(seed, memory.DefaultProduct())
		}
		return memory.NewProductStore(seed...), nil, nil
	}

	db, err := sql.StartDB(ctx, conf.Database)
	if err != nil {
		return nil, nil, err
	}
	store := sql.NewProductStore(db)
	if conf.Store.SeedDefaultProduct {
		if err := seedEmptyStore(ctx, store); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return store, db, nil
}

func seedEmptyStore(ctx context.Context, store repository.ProductStore) error {
	query := repository.NewQuery()
	query.Limit = 1
	existing, err := store.List(ctx, *query)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = store.Add(ctx, memory.DefaultProduct())
	return err
}

// newNotifier publishes to SQS when a queue is configured and logs events otherwise.
func newNotifier(ctx context.Context, conf *config.Config) (service.Notifier, error) {
	if conf.AWS.SQSQueueURL == "" {
		return service.LogNotifier{}, nil
	}

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS)
	if err != nil {
		return nil, err
	}
	return sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL), nil
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
