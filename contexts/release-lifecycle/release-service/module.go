package releaseservice

import (
	"log/slog"
	"time"

	httpadapter "pressroom/contexts/release-lifecycle/release-service/adapters/http"
	"pressroom/contexts/release-lifecycle/release-service/adapters/memory"
	application "pressroom/contexts/release-lifecycle/release-service/application"
	"pressroom/contexts/release-lifecycle/release-service/application/commands"
	"pressroom/contexts/release-lifecycle/release-service/application/queries"
	"pressroom/contexts/release-lifecycle/release-service/application/workers"
	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	"pressroom/contexts/release-lifecycle/release-service/domain/services"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Store     *memory.Store
	Settings  *application.ModerationSettings
	Observers *application.Observers
	Targets   commands.SetTargetJournalistsUseCase
	Queries   queries.QueryUseCase
	Publisher workers.ScheduledPublishJob
	Retention workers.HistoryRetentionJob
}

type Dependencies struct {
	Repository       ports.Repository
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	Analyzer         ports.ContentAnalyzer
	Metrics          ports.Metrics
	Thresholds       services.Thresholds
	PriorityKeywords []string
	AnalyzerTimeout  time.Duration
	HistoryRetention time.Duration
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	thresholds := deps.Thresholds
	if thresholds == (services.Thresholds{}) {
		thresholds = services.DefaultThresholds()
	}
	settings := application.NewModerationSettings(thresholds, deps.PriorityKeywords)
	observers := &application.Observers{}

	transition := commands.TransitionReleaseUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Observers:  []ports.TransitionObserver{observers},
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateRelease: commands.CreateReleaseUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			TransitionRelease: transition,
			Moderate: commands.ModerateReleaseUseCase{
				Transition: transition,
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			AppendAction: commands.AppendModerationActionUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Queries: queryUseCase,
			Queue: queries.ModerationQueueUseCase{
				Repository: deps.Repository,
				Analyzer:   deps.Analyzer,
				Settings:   settings,
				Timeout:    deps.AnalyzerTimeout,
				Metrics:    deps.Metrics,
				Logger:     deps.Logger,
			},
			Settings: settings,
			Logger:   deps.Logger,
		},
		Settings:  settings,
		Observers: observers,
		Targets: commands.SetTargetJournalistsUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		Queries: queryUseCase,
		Publisher: workers.ScheduledPublishJob{
			Repository: deps.Repository,
			Transition: transition,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		Retention: workers.HistoryRetentionJob{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Retention:  deps.HistoryRetention,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Release, analyzer ports.ContentAnalyzer, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Analyzer:   analyzer,
		Logger:     logger,
	})
	module.Store = store
	return module
}
