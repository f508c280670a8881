// Package introspect implements the optional loopback-only status
// server (SPEC_FULL.md §B, §D internal/introspect): a small gin router
// exposing the dispatcher's lifecycle state, ring-buffer occupancy and
// current per-domain throttle table to an operator, mirroring the
// teacher's own status/healthz endpoints (client/v1/status.go,
// client/healthz.go) without pulling any of the teacher's component
// registry in.
package introspect

import (
	"net"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/att-ves/vesagent/dispatcher"
	"github.com/att-ves/vesagent/event"
	"github.com/att-ves/vesagent/ringbuffer"
	"github.com/att-ves/vesagent/throttle"
)

// StatusSource is the subset of *agent.Agent introspect needs, narrowed
// to an interface so this package never imports agent (agent already
// imports dispatcher; agent importing introspect and introspect
// importing agent would cycle).
type StatusSource interface {
	State() dispatcher.State
	Queue() *ringbuffer.Buffer
	Throttle() *throttle.Store
	MeasurementInterval() int
}

// Server is the loopback status HTTP server. The zero value is not
// usable; construct with New.
type Server struct {
	engine *gin.Engine
	src    StatusSource
}

// New builds a Server backed by src. Call ListenAndServe (or use Engine
// directly in tests) to start it; introspect never binds a socket on
// its own so callers control the listen address (spec §6.1 has no
// option for this — it is agent-facade-level, not core).
func New(src StatusSource) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestid.New(), gin.Recovery())

	s := &Server{engine: engine, src: src}
	engine.GET("/status", s.handleStatus)
	engine.GET("/throttle", s.handleThrottle)
	return s
}

// Engine exposes the underlying *gin.Engine for tests (httptest.Server)
// and for callers that want to mount it under their own http.Server.
func (s *Server) Engine() *gin.Engine { return s.engine }

// ListenAndServe binds addr (intended to be loopback-only, e.g.
// "127.0.0.1:0") and serves until the listener errors or is closed.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return http.Serve(ln, s.engine)
}

type statusResponse struct {
	DispatcherState     string `json:"dispatcherState"`
	QueueDepth          int    `json:"queueDepth"`
	MeasurementInterval int    `json:"measurementInterval"`
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		DispatcherState:     s.src.State().String(),
		QueueDepth:          s.src.Queue().Len(),
		MeasurementInterval: s.src.MeasurementInterval(),
	})
}

type throttleDomain struct {
	Domain               string   `json:"domain"`
	SuppressedFieldNames []string `json:"suppressedFieldNames,omitempty"`
}

func (s *Server) handleThrottle(c *gin.Context) {
	domains := s.src.Throttle().ThrottledDomains()
	out := make([]throttleDomain, 0, len(domains))
	for _, d := range domains {
		spec := s.src.Throttle().Get(d)
		if spec == nil {
			continue
		}
		out = append(out, throttleDomain{
			Domain:               event.Domain(d).String(),
			SuppressedFieldNames: spec.SuppressedFieldNames,
		})
	}
	c.JSON(http.StatusOK, gin.H{"throttledDomains": out})
}
