package monitoringservice

import (
	"log/slog"
	"time"

	httpadapter "pressroom/contexts/release-lifecycle/monitoring-service/adapters/http"
	"pressroom/contexts/release-lifecycle/monitoring-service/adapters/memory"
	application "pressroom/contexts/release-lifecycle/monitoring-service/application"
	"pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	"pressroom/contexts/release-lifecycle/monitoring-service/application/queries"
	"pressroom/contexts/release-lifecycle/monitoring-service/application/workers"
	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	"pressroom/contexts/release-lifecycle/monitoring-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Create     commands.CreateMonitoringUseCase
	Observers  *application.Observers
	Dispatcher workers.CheckDispatcherJob
	Retention  workers.ResultRetentionJob
	Store      *memory.Store
}

type Dependencies struct {
	Repository       ports.Repository
	Releases         ports.ReleaseLookup
	Checker          ports.PublicationChecker
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	Metrics          ports.Metrics
	Policy           commands.RetryPolicy
	DefaultFrequency entities.Frequency
	Concurrency      int
	HistoryRetention time.Duration
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	observers := &application.Observers{}
	cycles := application.NewCycleRegistry()

	create := commands.CreateMonitoringUseCase{
		Repository:       deps.Repository,
		Releases:         deps.Releases,
		Clock:            deps.Clock,
		IDGen:            deps.IDGen,
		DefaultFrequency: deps.DefaultFrequency,
		Logger:           deps.Logger,
	}
	cycle := commands.RunCheckCycleUseCase{
		Repository: deps.Repository,
		Checker:    deps.Checker,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Locks:      application.NewKeyedLocks(),
		Cycles:     cycles,
		Observers:  observers,
		Metrics:    deps.Metrics,
		Policy:     deps.Policy,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Create: create,
			Cycle:  cycle,
			Status: commands.ChangeStatusUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				Cycles:     cycles,
				Observers:  observers,
				Logger:     deps.Logger,
			},
			Verify: commands.VerifyResultUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Targets: commands.UpdateTargetsUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{Repository: deps.Repository},
		},
		Create:    create,
		Observers: observers,
		Dispatcher: workers.CheckDispatcherJob{
			Repository:  deps.Repository,
			Cycle:       cycle,
			Clock:       deps.Clock,
			Concurrency: deps.Concurrency,
			Logger:      deps.Logger,
		},
		Retention: workers.ResultRetentionJob{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Retention:  deps.HistoryRetention,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(
	seed []entities.Monitoring,
	checker ports.PublicationChecker,
	releases ports.ReleaseLookup,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Releases:   releases,
		Checker:    checker,
		Clock:      store,
		IDGen:      store,
		Policy: commands.RetryPolicy{
			Attempts:       3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     4 * time.Millisecond,
			Timeout:        time.Second,
		},
		Logger: logger,
	})
	module.Store = store
	return module
}
