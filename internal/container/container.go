package container

import (
	"log/slog"

	"github.com/joshua-takyi/gather/internal/config"
	"github.com/joshua-takyi/gather/internal/helpers"
	"github.com/joshua-takyi/gather/internal/models"
	"github.com/joshua-takyi/gather/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *slog.Logger
	Store        models.Store
	AuthService  *services.AuthService
	EventService *services.EventService
}

// NewContainer wires the services on top of store.
func NewContainer(cfg *config.Config, logger *slog.Logger, store models.Store) *Container {
	tokens := helpers.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		AuthService:  services.NewAuthService(store, tokens, cfg.BcryptCost, logger),
		EventService: services.NewEventService(store, store, logger),
	}
}
