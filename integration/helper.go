package integration

import (
	"database/sql"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/config"
	httpAPI "github.com/iyhunko/product-catalog/internal/http"
	"github.com/iyhunko/product-catalog/internal/http/controller"
	"github.com/iyhunko/product-catalog/internal/repository"
	reposql "github.com/iyhunko/product-catalog/internal/repository/sql"
	"github.com/iyhunko/product-catalog/internal/service"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	postgresImage     = "postgres"
	postgresTag       = "16"
	containerLifetime = 120 // seconds
	migrationsDir     = "../migrations"
)

// TestDB is a migrated PostgreSQL instance running in a throwaway container.
type TestDB struct {
	DB       *sql.DB
	Pool     *dockertest.Pool
	Resource *dockertest.Resource
}

// SetupTestDB starts PostgreSQL and applies the product migrations. The test
// is skipped in -short mode or when docker is unreachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test that needs docker")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Could not connect to docker: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Docker is not reachable: %s", err)
	}
	pool.MaxWait = containerLifetime * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: postgresImage,
		Tag:        postgresTag,
		Env:        []string{"POSTGRES_PASSWORD=secret", "POSTGRES_USER=catalog", "POSTGRES_DB=catalog"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("Could not start postgres: %s", err)
	}
	if err := resource.Expire(containerLifetime); err != nil {
		t.Fatalf("Could not set expiration: %s", err)
	}

	url := fmt.Sprintf("postgres://catalog:secret@%s/catalog?sslmode=disable", resource.GetHostPort("5432/tcp"))
	slog.Info("Waiting for test database", slog.String("url", url))

	var db *sql.DB
	err = pool.Retry(func() error {
		var openErr error
		if db, openErr = sql.Open("postgres", url); openErr != nil {
			return openErr
		}
		return db.Ping()
	})
	if err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("Could not reach postgres: %s", err)
	}

	if err := reposql.RunMigrations(db, migrationsDir); err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("Could not migrate: %s", err)
	}

	return &TestDB{DB: db, Pool: pool, Resource: resource}
}

// Cleanup closes the connection and removes the container.
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()

	if tdb.DB != nil {
		if err := tdb.DB.Close(); err != nil {
			t.Errorf("Could not close database: %s", err)
		}
	}
	if tdb.Pool != nil && tdb.Resource != nil {
		if err := tdb.Pool.Purge(tdb.Resource); err != nil {
			t.Errorf("Could not purge resource: %s", err)
		}
	}
}

// TruncateTables empties the products table and resets its sequence.
func (tdb *TestDB) TruncateTables(t *testing.T) {
	t.Helper()

	if _, err := tdb.DB.Exec("TRUNCATE TABLE products RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Could not truncate products: %s", err)
	}
}

// NewTestRouter wires the full HTTP API on top of store.
func NewTestRouter(store repository.ProductStore, notifier service.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalogService := service.NewCatalogService(store, service.NewSessions(time.Minute), notifier)
	return httpAPI.InitRouter(gin.New(),
		controller.New(&config.Config{}),
		controller.NewProductController(catalogService),
		controller.NewWizardController(catalogService),
	)
}
