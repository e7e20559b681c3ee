package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pulsohq/pulso/internal/api"
	dbstore "github.com/pulsohq/pulso/internal/db"
	"github.com/pulsohq/pulso/internal/logger"
	"github.com/pulsohq/pulso/internal/middleware"
	"github.com/pulsohq/pulso/internal/utils"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	log.WithField("service", "pulso").Info("starting server")

	addr := utils.EnvOr("PULSO_ADDR", ":8080")
	sqlitePath := os.Getenv("PULSO_SQLITE_PATH")
	migrationsDir := os.Getenv("PULSO_MIGRATIONS_DIR")

	var store api.Store
	if sqlitePath != "" {
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
			log.WithError(err).Fatal("create sqlite dir")
		}
		dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(sqlitePath))
		sqliteDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			log.WithError(err).Fatal("open sqlite")
		}
		if err := dbstore.Migrate(sqliteDB, migrationsDir); err != nil {
			log.WithError(err).Fatal("run migrations")
		}
		store, err = dbstore.NewStore(sqliteDB)
		if err != nil {
			log.WithError(err).Fatal("init sqlite store")
		}
		log.WithField("sqlite_path", sqlitePath).Info("using sqlite store")
	} else {
		store = api.NewMemoryStore()
		log.Warn("PULSO_SQLITE_PATH not set, using in-memory store; data is lost on restart")
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(store).Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"name":"Pulso API"}`))
	})

	// Serve the built dashboard SPA when a static dir is configured.
	if staticDir := os.Getenv("PULSO_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(middleware.RequestLog(log)(mux))))

	log.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
