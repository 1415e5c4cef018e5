package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	alertdispatcher "pressroom/contexts/release-lifecycle/alert-dispatcher"
	journalistdirectory "pressroom/contexts/release-lifecycle/journalist-directory"
	monitoringservice "pressroom/contexts/release-lifecycle/monitoring-service"
	releaseservice "pressroom/contexts/release-lifecycle/release-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "pressroom/internal/platform/httpserver/docs"
)

// Modules are the bounded contexts served by the API process.
type Modules struct {
	Releases    releaseservice.Module
	Monitoring  monitoringservice.Module
	Journalists journalistdirectory.Module
	Alerts      alertdispatcher.Module
}

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	releases    releaseservice.Module
	monitoring  monitoringservice.Module
	journalists journalistdirectory.Module
	alerts      alertdispatcher.Module
	metrics     http.Handler
}

func New(modules Modules, metrics http.Handler, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		releases:    modules.Releases,
		monitoring:  modules.Monitoring,
		journalists: modules.Journalists,
		alerts:      modules.Alerts,
		metrics:     metrics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}

	s.mux.HandleFunc("POST /api/releases", s.handleCreateRelease)
	s.mux.HandleFunc("GET /api/releases", s.handleListReleases)
	s.mux.HandleFunc("GET /api/releases/{release_id}", s.handleGetRelease)
	s.mux.HandleFunc("POST /api/releases/{release_id}/submit", s.handleSubmitRelease)
	s.mux.HandleFunc("POST /api/releases/{release_id}/transition", s.handleTransitionRelease)
	s.mux.HandleFunc("POST /api/releases/{release_id}/approve", s.handleApproveRelease)
	s.mux.HandleFunc("POST /api/releases/{release_id}/reject", s.handleRejectRelease)
	s.mux.HandleFunc("POST /api/releases/{release_id}/edit", s.handleEditRelease)
	s.mux.HandleFunc("POST /api/releases/{release_id}/actions", s.handleAppendModerationAction)
	s.mux.HandleFunc("GET /api/releases/{release_id}/actions", s.handleListModerationActions)
	s.mux.HandleFunc("POST /api/releases/{release_id}/analyze", s.handleAnalyzeRelease)
	s.mux.HandleFunc("GET /api/releases/{release_id}/monitoring", s.handleGetMonitoringByRelease)
	s.mux.HandleFunc("GET /api/moderation/queue", s.handleModerationQueue)
	s.mux.HandleFunc("GET /api/moderation/thresholds", s.handleGetThresholds)
	s.mux.HandleFunc("PUT /api/moderation/thresholds", s.handleUpdateThresholds)

	s.mux.HandleFunc("POST /api/monitorings", s.handleCreateMonitoring)
	s.mux.HandleFunc("GET /api/monitorings", s.handleListMonitorings)
	s.mux.HandleFunc("GET /api/monitorings/{monitoring_id}", s.handleGetMonitoring)
	s.mux.HandleFunc("POST /api/monitorings/{monitoring_id}/check", s.handleRunCheckCycle)
	s.mux.HandleFunc("POST /api/monitorings/{monitoring_id}/pause", s.handlePauseMonitoring)
	s.mux.HandleFunc("POST /api/monitorings/{monitoring_id}/resume", s.handleResumeMonitoring)
	s.mux.HandleFunc("POST /api/monitorings/{monitoring_id}/complete", s.handleCompleteMonitoring)
	s.mux.HandleFunc("PUT /api/monitorings/{monitoring_id}/targets", s.handleUpdateTargets)
	s.mux.HandleFunc("GET /api/monitorings/{monitoring_id}/cycles", s.handleListCycles)
	s.mux.HandleFunc("POST /api/monitoring-results/{result_id}/verify", s.handleVerifyResult)

	s.mux.HandleFunc("GET /api/journalists", s.handleListContacts)
	s.mux.HandleFunc("POST /api/journalists", s.handleCreateContact)
	s.mux.HandleFunc("POST /api/journalists/match", s.handleMatchJournalists)
	s.mux.HandleFunc("GET /api/journalists/{contact_id}", s.handleGetContact)
	s.mux.HandleFunc("PUT /api/journalists/{contact_id}", s.handleUpdateContact)

	s.mux.HandleFunc("GET /api/alerts", s.handleListAlerts)
	s.mux.HandleFunc("POST /api/alerts/queue-check", s.handleQueueCheck)

	s.logger.Debug("http routes registered",
		"event", "http_routes_registered",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// moderatorFromHeaders reads the acting moderator. Identity is asserted by
// the gateway in front of this process.
func moderatorFromHeaders(r *http.Request) (string, string) {
	return strings.TrimSpace(r.Header.Get("X-User-Id")), strings.TrimSpace(r.Header.Get("X-User-Name"))
}

func queryInt(r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
