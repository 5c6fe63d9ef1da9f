package handler

import (
	"github.com/go-telegram/bot"

	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/dispatcher"
	"github.com/luiscast/ventasbot/internal/repository"
	"github.com/luiscast/ventasbot/internal/service"
	"github.com/luiscast/ventasbot/internal/session"
)

// Handler holds all dependencies needed by command and text handlers.
type Handler struct {
	bot        *bot.Bot
	cfg        *config.Config
	dispatcher *dispatcher.Dispatcher
	sessions   *session.Store
	data       *repository.Interactions
	agent      *service.SQLAgent
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot        *bot.Bot
	Cfg        *config.Config
	Dispatcher *dispatcher.Dispatcher
	Sessions   *session.Store
	Data       *repository.Interactions
	Agent      *service.SQLAgent
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:        deps.Bot,
		cfg:        deps.Cfg,
		dispatcher: deps.Dispatcher,
		sessions:   deps.Sessions,
		data:       deps.Data,
		agent:      deps.Agent,
	}
}
