// plugins/metrics/metrics.go
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bethropolis/med/internal/event"
	"github.com/bethropolis/med/internal/logger"
	"github.com/bethropolis/med/internal/plugin"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ plugin.Plugin = (*Metrics)(nil)

const shutdownTimeout = 2 * time.Second

// Metrics exports editing counters in the Prometheus format. When Addr is
// set they are served at /metrics.
type Metrics struct {
	Addr string

	registry   *prometheus.Registry
	inputs     prometheus.Counter
	operations *prometheus.CounterVec
	edits      prometheus.Counter
	rejected   prometheus.Counter
	undos      prometheus.Counter
	redos      prometheus.Counter
	nodes      prometheus.Gauge
	modes      *prometheus.CounterVec

	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// New creates the plugin. An empty addr only collects.
func New(addr string) *Metrics {
	m := &Metrics{
		Addr:     addr,
		registry: prometheus.NewRegistry(),
		inputs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "med_input_tokens_total",
			Help: "Tokens fed to the editor.",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "med_operations_applied_total",
			Help: "Operations interpreted and applied, by edit classification.",
		}, []string{"edit"}),
		edits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "med_edits_recorded_total",
			Help: "Diffs appended to the history tree.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "med_operations_rejected_total",
			Help: "Operations the document refused to interpret.",
		}),
		undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "med_undo_total",
			Help: "Successful undo moves.",
		}),
		redos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "med_redo_total",
			Help: "Successful redo moves.",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "med_history_nodes",
			Help: "Nodes in the history tree, the root excluded.",
		}),
		modes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "med_mode_changes_total",
			Help: "Mode transitions, by target mode.",
		}, []string{"to"}),
	}
	m.registry.MustRegister(m.inputs, m.operations, m.edits, m.rejected, m.undos, m.redos, m.nodes, m.modes)
	return m
}

// Name returns the unique name of the plugin.
func (m *Metrics) Name() string {
	return "Metrics"
}

// Initialize subscribes to editing events and starts the HTTP endpoint
// when an address is configured.
func (m *Metrics) Initialize(api plugin.EditorAPI) error {
	api.SubscribeEvent(event.TypeInputReceived, func(event.Event) bool {
		m.inputs.Inc()
		return false
	})
	api.SubscribeEvent(event.TypeOperationApplied, func(e event.Event) bool {
		edit := "false"
		if data, ok := e.Data.(event.OperationData); ok && data.IsEdit {
			edit = "true"
		}
		m.operations.WithLabelValues(edit).Inc()
		return false
	})
	api.SubscribeEvent(event.TypeEditRecorded, func(e event.Event) bool {
		m.edits.Inc()
		if data, ok := e.Data.(event.EditRecordedData); ok {
			m.nodes.Set(float64(data.Nodes))
		}
		return false
	})
	api.SubscribeEvent(event.TypeOperationRejected, func(event.Event) bool {
		m.rejected.Inc()
		return false
	})
	api.SubscribeEvent(event.TypeUndo, func(event.Event) bool {
		m.undos.Inc()
		return false
	})
	api.SubscribeEvent(event.TypeRedo, func(event.Event) bool {
		m.redos.Inc()
		return false
	})
	api.SubscribeEvent(event.TypeModeChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.ModeChangedData); ok {
			m.modes.WithLabelValues(data.To).Inc()
		}
		return false
	})

	if m.Addr == "" {
		return nil
	}
	return m.serve()
}

// Router returns the HTTP routes: /metrics and /healthz.
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// Registry exposes the collectors, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ListenAddr returns the bound address while serving, or "".
func (m *Metrics) ListenAddr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

func (m *Metrics) serve() error {
	ln, err := net.Listen("tcp", m.Addr)
	if err != nil {
		return fmt.Errorf("metrics listen on %s: %w", m.Addr, err)
	}
	m.listener = ln
	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Metrics: server stopped: %v", err)
		}
	}()
	logger.Infof("Metrics: serving on http://%s/metrics", ln.Addr())
	return nil
}

// Shutdown stops the HTTP endpoint, if any.
func (m *Metrics) Shutdown() error {
	if m.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := m.server.Shutdown(ctx)
	<-m.done
	m.server = nil
	m.listener = nil
	return err
}
