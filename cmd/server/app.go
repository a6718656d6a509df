package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/amityhq/amity-api/internal/config"
	"github.com/amityhq/amity-api/internal/platform/postgres"
	"github.com/amityhq/amity-api/internal/service"
	"github.com/amityhq/amity-api/internal/service/auth"
	"github.com/amityhq/amity-api/internal/store"
)

// application holds the shared dependencies of the server: configuration,
// the database handle, and the fully wired service graph.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	userService      service.UserService
	friendService    service.FriendService
	directoryService service.DirectoryService
}

// newApplication wires the store, auth, and service layers onto the given
// database connection.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	transactor := store.NewSQLTransactor(db)
	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		userService:      service.NewUserService(userStore, transactor, passwordHasher, logger),
		friendService:    service.NewFriendService(userStore, transactor, logger),
		directoryService: service.NewDirectoryService(userStore, logger),
	}, nil
}
