package alertdispatcher

import (
	"log/slog"

	httpadapter "pressroom/contexts/release-lifecycle/alert-dispatcher/adapters/http"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/adapters/memory"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/adapters/sinks"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/application/commands"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/application/queries"
	"pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Dispatcher commands.Dispatcher
	Recorder   *memory.Recorder
}

type Dependencies struct {
	// Sinks are delivered to after the recorder.
	Sinks            []ports.Sink
	Recorder         *memory.Recorder
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	Metrics          ports.Metrics
	BacklogThreshold int
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = memory.NewRecorder(0)
	}
	clock := deps.Clock
	if clock == nil {
		clock = recorder
	}
	idGen := deps.IDGen
	if idGen == nil {
		idGen = recorder
	}

	dispatcher := commands.Dispatcher{
		Sinks:            append([]ports.Sink{recorder}, deps.Sinks...),
		Clock:            clock,
		IDGen:            idGen,
		Metrics:          deps.Metrics,
		BacklogThreshold: deps.BacklogThreshold,
		Logger:           deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Dispatcher: dispatcher,
			Queries:    queries.QueryUseCase{Log: recorder},
		},
		Dispatcher: dispatcher,
		Recorder:   recorder,
	}
}

// NewInMemoryModule records alerts and writes them to the log.
func NewInMemoryModule(backlogThreshold int, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Sinks:            []ports.Sink{sinks.LogSink{Logger: logger}},
		BacklogThreshold: backlogThreshold,
		Logger:           logger,
	})
}
