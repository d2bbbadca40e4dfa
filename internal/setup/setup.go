package setup

import (
	"github.com/converse-dev/converse/internal/config"
	"github.com/converse-dev/converse/internal/handler"
	"github.com/converse-dev/converse/internal/jwt"
	"github.com/converse-dev/converse/internal/realtime"
	"github.com/converse-dev/converse/internal/service"
	"github.com/converse-dev/converse/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Hub     *realtime.Hub
	Jwt     jwt.JwtService
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	hub := realtime.NewHub()
	publisher := realtime.NewPublisher(hub)

	membership := service.NewMembership(storage)
	chat := service.NewChat(storage, membership, publisher,
		cfg.Public.MaxAttachmentSize, cfg.Public.MessagesPerPage, cfg.Public.MessagesPerPageLimit)
	user := service.NewUser(storage, jwtService)

	h := handler.New(user, chat, hub, jwtService, cfg, storage)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Hub:     hub,
		Jwt:     jwtService,
		Config:  cfg,
	}, nil
}
