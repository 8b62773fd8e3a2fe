package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/opennml/gonml/pkg/events"
	"github.com/opennml/gonml/pkg/gql"
	"github.com/opennml/gonml/pkg/health"
	"github.com/opennml/gonml/pkg/logging"
	"github.com/opennml/gonml/pkg/metrics"
	"github.com/opennml/gonml/pkg/nmlxml"
	"github.com/opennml/gonml/pkg/snapshot"
	"github.com/opennml/gonml/pkg/topology"
)

// Config holds the server wiring. Zero fields get sensible defaults.
type Config struct {
	Addr    string
	Version string

	Bus       *events.Bus
	Snapshots *snapshot.Store
	Metrics   *metrics.Registry
	Logger    logging.Logger
}

// Server is the HTTP surface over a namespace.
type Server struct {
	ns         *topology.Manager
	bus        *events.Bus
	snapshots  *snapshot.Store
	registry   *metrics.Registry
	logger     logging.Logger
	checker    *health.HealthChecker
	gqlHandler *gql.Handler
	httpServer *http.Server
	startTime  time.Time
	version    string
	addr       string
}

// NewServer creates an API server over the given namespace.
func NewServer(ns *topology.Manager, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}

	s := &Server{
		ns:        ns,
		bus:       cfg.Bus,
		snapshots: cfg.Snapshots,
		registry:  cfg.Metrics,
		logger:    cfg.Logger.With(logging.Component("api")),
		startTime: time.Now(),
		version:   cfg.Version,
		addr:      cfg.Addr,
	}
	s.checker = s.buildHealthChecker()

	schema, err := gql.GenerateSchema(ns)
	if err != nil {
		s.logger.Error("graphql schema generation failed", logging.Error(err))
	} else {
		s.gqlHandler = gql.NewHandler(schema)
	}

	return s
}

// buildHealthChecker wires the namespace, snapshot store and event bus
// into health checks.
func (s *Server) buildHealthChecker() *health.HealthChecker {
	checker := health.NewHealthChecker()

	checker.RegisterCheck("namespace", health.NamespaceCheck(func() (objects, registered, rejected uint64) {
		stats := s.ns.Stats()
		return stats.Registered, stats.Registered, stats.Rejected
	}))
	checker.RegisterCheck("constraints", health.ConstraintCheck(func() (int, error) {
		result, err := s.validate()
		if err != nil {
			return 0, err
		}
		return len(result.Violations), nil
	}))
	if s.snapshots != nil {
		checker.RegisterReadinessCheck("snapshot_dir", health.SnapshotDirCheck(s.snapshots.Probe))
	}
	if s.bus != nil {
		checker.RegisterCheck("event_bus", health.EventBusCheck(func() int {
			total := 0
			for _, topic := range []string{
				topology.TopicNode, topology.TopicPort, topology.TopicLink,
				topology.TopicBiport, topology.TopicBilink,
				topology.TopicTopology, topology.TopicService,
			} {
				total += s.bus.SubscriberCount(topic)
			}
			return total
		}))
	}

	return checker
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleInfo)
	mux.HandleFunc("/health", s.checker.HTTPHandler())
	mux.HandleFunc("/health/ready", s.checker.ReadinessHandler())
	mux.HandleFunc("/health/live", s.checker.LivenessHandler())
	mux.Handle("/metrics", s.metricsHandler())

	mux.HandleFunc("/nodes", s.handleNodes)
	mux.HandleFunc("/nodes/", s.handleNode)
	mux.HandleFunc("/nodes/batch", s.handleBatchNodes)
	mux.HandleFunc("/ports", s.handlePorts)
	mux.HandleFunc("/ports/", s.handlePort)
	mux.HandleFunc("/links", s.handleLinks)
	mux.HandleFunc("/links/", s.handleLink)
	mux.HandleFunc("/links/batch", s.handleBatchLinks)
	mux.HandleFunc("/biports", s.handleBiports)
	mux.HandleFunc("/biports/", s.handleBiport)
	mux.HandleFunc("/bilinks", s.handleBilinks)
	mux.HandleFunc("/bilinks/", s.handleBilink)

	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/export/nml", s.handleExportNML)
	mux.HandleFunc("/export/dot", s.handleExportDOT)
	mux.HandleFunc("/visualization", s.handleVisualization)
	mux.HandleFunc("/snapshot", s.handleSnapshot)

	mux.HandleFunc("/graphql", s.handleGraphQL)

	var handler http.Handler = mux
	handler = s.bodySizeLimitMiddleware(handler, 1<<20)
	handler = s.metricsMiddleware(handler)
	handler = s.corsMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = s.panicRecoveryMiddleware(handler)
	return handler
}

// Start runs the HTTP server until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("server starting",
		logging.String("addr", s.addr),
		logging.String("version", s.version))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}
	s.respondJSON(w, http.StatusOK, InfoResponse{
		Service: "gonml",
		Version: s.version,
		Schema:  nmlxml.Namespace,
		Uptime:  time.Since(s.startTime).String(),
	})
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if s.gqlHandler == nil {
		s.respondError(w, http.StatusServiceUnavailable, "GraphQL endpoint not available")
		return
	}
	s.gqlHandler.ServeHTTP(w, r)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("response encoding failed", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
