package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	alertdispatcher "pressroom/contexts/release-lifecycle/alert-dispatcher"
	alertsinks "pressroom/contexts/release-lifecycle/alert-dispatcher/adapters/sinks"
	alertports "pressroom/contexts/release-lifecycle/alert-dispatcher/ports"
	journalistdirectory "pressroom/contexts/release-lifecycle/journalist-directory"
	journalistmemory "pressroom/contexts/release-lifecycle/journalist-directory/adapters/memory"
	journalistpostgres "pressroom/contexts/release-lifecycle/journalist-directory/adapters/postgres"
	monitoringservice "pressroom/contexts/release-lifecycle/monitoring-service"
	monitoringchecker "pressroom/contexts/release-lifecycle/monitoring-service/adapters/checker"
	monitoringmemory "pressroom/contexts/release-lifecycle/monitoring-service/adapters/memory"
	monitoringpostgres "pressroom/contexts/release-lifecycle/monitoring-service/adapters/postgres"
	monitoringcommands "pressroom/contexts/release-lifecycle/monitoring-service/application/commands"
	monitoringentities "pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	monitoringports "pressroom/contexts/release-lifecycle/monitoring-service/ports"
	releaseservice "pressroom/contexts/release-lifecycle/release-service"
	releaseanalyzer "pressroom/contexts/release-lifecycle/release-service/adapters/analyzer"
	releasememory "pressroom/contexts/release-lifecycle/release-service/adapters/memory"
	releasepostgres "pressroom/contexts/release-lifecycle/release-service/adapters/postgres"
	releaseservices "pressroom/contexts/release-lifecycle/release-service/domain/services"
	releaseports "pressroom/contexts/release-lifecycle/release-service/ports"
	"pressroom/internal/platform/config"
	"pressroom/internal/platform/messaging"
	"pressroom/internal/platform/metrics"

	"gorm.io/gorm"
)

// Platform is every module of one process with the cross-module bridges
// already registered.
type Platform struct {
	Releases    releaseservice.Module
	Monitoring  monitoringservice.Module
	Journalists journalistdirectory.Module
	Alerts      alertdispatcher.Module
	Metrics     *metrics.Metrics
	Bus         *messaging.Kafka
}

// Adapters overrides the outbound adapters chosen from config. A nil
// Database selects the in-memory stores.
type Adapters struct {
	Database *gorm.DB
	Analyzer releaseports.ContentAnalyzer
	Checker  monitoringports.PublicationChecker
	Bus      *messaging.Kafka
	Metrics  *metrics.Metrics
}

func NewPlatform(cfg config.Config, adapters Adapters, logger *slog.Logger) (Platform, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bus := adapters.Bus
	if bus == nil {
		created, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
		if err != nil {
			return Platform{}, err
		}
		bus = created
	}
	appMetrics := adapters.Metrics
	if appMetrics == nil {
		appMetrics = metrics.New()
	}
	analyzer := adapters.Analyzer
	if analyzer == nil && cfg.Moderation.AnalyzerURL != "" {
		analyzer = releaseanalyzer.NewClient(cfg.Moderation.AnalyzerURL, cfg.Moderation.AnalyzerAPIKey, cfg.Moderation.AnalyzerTimeout)
	}
	checker := adapters.Checker
	if checker == nil {
		checker = monitoringchecker.NewHTTPChecker(&http.Client{Timeout: cfg.Monitoring.CheckerTimeout}, cfg.Monitoring.CheckerSearchPath)
	}

	releaseDeps := releaseservice.Dependencies{
		Analyzer: analyzer,
		Metrics:  appMetrics,
		Thresholds: releaseservices.Thresholds{
			RiskHigh:      cfg.Moderation.RiskThresholdHigh,
			RiskLow:       cfg.Moderation.RiskThresholdLow,
			SimilarityMax: cfg.Moderation.SimilarityMax,
			EngagementMin: cfg.Moderation.EngagementMin,
		},
		PriorityKeywords: cfg.Moderation.PriorityKeywords,
		AnalyzerTimeout:  cfg.Moderation.AnalyzerTimeout,
		HistoryRetention: cfg.HistoryRetention(),
		Logger:           logger,
	}
	frequency, _ := monitoringentities.ParseFrequency(cfg.Monitoring.DefaultFrequency)
	monitoringDeps := monitoringservice.Dependencies{
		Checker: checker,
		Metrics: appMetrics,
		Policy: monitoringcommands.RetryPolicy{
			Attempts:       cfg.Monitoring.RetryAttempts,
			InitialBackoff: cfg.Monitoring.RetryInitialBackoff,
			MaxBackoff:     cfg.Monitoring.RetryMaxBackoff,
			Timeout:        cfg.Monitoring.CheckerTimeout,
			PauseAfter:     cfg.Monitoring.PauseAfterFailures,
		},
		DefaultFrequency: frequency,
		Concurrency:      cfg.Workers.Concurrency,
		HistoryRetention: cfg.HistoryRetention(),
		Logger:           logger,
	}
	journalistDeps := journalistdirectory.Dependencies{Logger: logger}

	var (
		releaseStore    *releasememory.Store
		monitoringStore *monitoringmemory.Store
		journalistStore *journalistmemory.Store
	)
	if adapters.Database != nil {
		releaseRepo := releasepostgres.NewRepository(adapters.Database, logger)
		releaseDeps.Repository = releaseRepo
		releaseDeps.Clock = releasepostgres.SystemClock{}
		releaseDeps.IDGen = releasepostgres.UUIDGenerator{}

		monitoringDeps.Repository = monitoringpostgres.NewRepository(adapters.Database, logger)
		monitoringDeps.Clock = monitoringpostgres.SystemClock{}
		monitoringDeps.IDGen = monitoringpostgres.UUIDGenerator{}

		journalistDeps.Repository = journalistpostgres.NewRepository(adapters.Database, logger)
		journalistDeps.IDGen = journalistpostgres.UUIDGenerator{}
	} else {
		releaseStore = releasememory.NewStore(nil)
		releaseDeps.Repository = releaseStore
		releaseDeps.Clock = releaseStore
		releaseDeps.IDGen = releaseStore

		monitoringStore = monitoringmemory.NewStore(nil)
		monitoringDeps.Repository = monitoringStore
		monitoringDeps.Clock = monitoringStore
		monitoringDeps.IDGen = monitoringStore

		journalistStore = journalistmemory.NewStore(nil)
		journalistDeps.Repository = journalistStore
		journalistDeps.IDGen = journalistStore
	}

	sinks := []alertports.Sink{
		alertsinks.LogSink{Logger: logger},
		alertsinks.BusSink{Publisher: bus},
	}
	if cfg.Alerts.WebhookURL != "" {
		sinks = append(sinks, alertsinks.NewWebhookSink(cfg.Alerts.WebhookURL, 10*time.Second))
	}

	releases := releaseservice.NewModule(releaseDeps)
	monitoringDeps.Releases = releaseLookup{releases: releases.Queries}

	platform := Platform{
		Releases:    releases,
		Monitoring:  monitoringservice.NewModule(monitoringDeps),
		Journalists: journalistdirectory.NewModule(journalistDeps),
		Alerts: alertdispatcher.NewModule(alertdispatcher.Dependencies{
			Sinks:            sinks,
			Metrics:          appMetrics,
			BacklogThreshold: cfg.Alerts.QueueBacklogThreshold,
			Logger:           logger,
		}),
		Metrics: appMetrics,
		Bus:     bus,
	}
	platform.Releases.Store = releaseStore
	platform.Monitoring.Store = monitoringStore
	platform.Journalists.Store = journalistStore

	platform.Monitoring.Dispatcher.Disabled = !cfg.Workers.EnableCheckCycles
	platform.Monitoring.Retention.Disabled = !cfg.Workers.EnableRetention
	platform.Releases.Publisher.Disabled = !cfg.Workers.EnableScheduledPub
	platform.Releases.Retention.Disabled = !cfg.Workers.EnableRetention

	registerBridges(platform, logger)
	return platform, nil
}
