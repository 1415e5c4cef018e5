package journalistdirectory

import (
	"log/slog"

	httpadapter "pressroom/contexts/release-lifecycle/journalist-directory/adapters/http"
	"pressroom/contexts/release-lifecycle/journalist-directory/adapters/memory"
	"pressroom/contexts/release-lifecycle/journalist-directory/application/commands"
	"pressroom/contexts/release-lifecycle/journalist-directory/application/queries"
	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	"pressroom/contexts/release-lifecycle/journalist-directory/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Matcher queries.MatchUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	matcher := queries.MatchUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Upsert: commands.UpsertContactUseCase{
				Repository: deps.Repository,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Matcher: matcher,
		},
		Matcher: matcher,
	}
}

func NewInMemoryModule(seed []entities.JournalistContact, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
