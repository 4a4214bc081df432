package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"dms-backend/internal/documents"
	"dms-backend/internal/services/health"
	"dms-backend/internal/shared/auth"
	"dms-backend/internal/shared/config"
	"dms-backend/internal/shared/crypto"
	"dms-backend/internal/shared/server"
	"dms-backend/internal/shared/storage/db"
	"dms-backend/internal/users"
)

var errDatabaseRequired = errors.New("DATABASE_URL is required")

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Signer           auth.Signer
	Hasher           crypto.Hasher
	UsersRepo        users.Repo
	DocumentsRepo    documents.Repo
	UsersService     *users.Service
	DocumentsService *documents.Service
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and the router. Without a database URL it
// falls back to in-memory repositories in dev-like environments, which is also
// how tests run.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		cfg.JWTSecret = "dev-secret"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Signer: auth.NewJWTSigner(cfg.JWTSecret, cfg.JWTTTL),
		Hasher: crypto.NewBcryptHasher(cfg.BcryptCost),
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.DocumentsRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Hasher, app.Signer)
	app.DocumentsService = documents.NewService(app.DocumentsRepo, app.UsersRepo)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Signer:          app.Signer,
		Health:          health.NewService(sqlDB),
		UserHandler:     app.UsersHandler,
		DocumentHandler: app.DocumentsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
