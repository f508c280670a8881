// Package agent wires together the event model, ring buffer, dispatcher,
// throttle store, command parser, identity source and transport into the
// public library entry point the spec's PURPOSE & SCOPE describes as
// "a reusable component linked into a VNF": Initialize, PostEvent,
// PostPriorityEvent and Terminate (spec §6.1).
package agent

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/att-ves/vesagent/command"
	"github.com/att-ves/vesagent/dispatcher"
	"github.com/att-ves/vesagent/errdefs"
	"github.com/att-ves/vesagent/event"
	"github.com/att-ves/vesagent/identity"
	"github.com/att-ves/vesagent/log"
	"github.com/att-ves/vesagent/ringbuffer"
	"github.com/att-ves/vesagent/throttle"
	"github.com/att-ves/vesagent/transport"
)

const defaultRingBufferSize = 100

// defaultMaxJSONBytes mirrors the original library's EVEL_MAX_JSON_BODY
// class of buffer (spec §4.2, §4.5 step 3 "16-KiB-class buffer").
const defaultMaxJSONBytes = 16 * 1024

// options collects everything Initialize needs (spec §6.1's option
// table). Construct with functional Option values passed to Initialize.
type options struct {
	primary transport.EndpointConfig
	backup  *transport.EndpointConfig

	ringBufferSize int
	maxJSONBytes   int

	metadataURL string

	role                string
	sourceType          event.SourceType
	measurementInterval int
	logFile             string
	logLevel            zap.AtomicLevel

	recorder dispatcher.Recorder
}

// Option configures Initialize. Mirrors the original library's
// evel_initialize option list (spec §6.1); unrecognized/omitted options
// take documented defaults.
type Option func(*options)

func WithPrimaryCollector(cfg transport.EndpointConfig) Option {
	return func(o *options) { o.primary = cfg }
}

func WithBackupCollector(cfg transport.EndpointConfig) Option {
	return func(o *options) { o.backup = &cfg }
}

func WithRingBufferSize(n int) Option {
	return func(o *options) { o.ringBufferSize = n }
}

func WithMaxJSONBytes(n int) Option {
	return func(o *options) { o.maxJSONBytes = n }
}

func WithMetadataURL(url string) Option {
	return func(o *options) { o.metadataURL = url }
}

// WithRole records the library's functional_role init option (spec §6.1
// "role"). The value is only stored and returned by Role; the agent does
// not apply it to any event's name or header.
func WithRole(role string) Option {
	return func(o *options) { o.role = role }
}

func WithSourceType(st event.SourceType) Option {
	return func(o *options) { o.sourceType = st }
}

func WithMeasurementInterval(seconds int) Option {
	return func(o *options) { o.measurementInterval = seconds }
}

func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

func WithLogLevel(lvl zap.AtomicLevel) Option {
	return func(o *options) { o.logLevel = lvl }
}

// WithRecorder installs an observability sink (internal/metrics.Collector
// in production) for queue depth, POST outcomes and priority posts.
func WithRecorder(r dispatcher.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// Agent is the library's public facade. The zero value is not usable;
// construct with Initialize.
type Agent struct {
	opts options

	queue     *ringbuffer.Buffer
	transport *transport.Collector
	throttle  *throttle.Store
	interval  *command.IntervalStore
	commands  *command.Parser
	identity  *identity.Source
	disp      *dispatcher.Dispatcher

	mu     sync.Mutex
	active bool // true from Run() until RequestTerminate
	cancel context.CancelFunc
	done   chan struct{}
}

// Initialize constructs an Agent and its transport, but does not start
// the dispatcher goroutine; call Run for that (spec §6.1, §4.5's
// Uninitialized --Initialize--> Inactive transition). Initialization of
// the HTTP transport must complete before any other goroutine touches
// the agent (spec §5).
func Initialize(opts ...Option) (*Agent, error) {
	o := options{
		ringBufferSize: defaultRingBufferSize,
		maxJSONBytes:   defaultMaxJSONBytes,
		logLevel:       zap.NewAtomicLevelAt(zap.InfoLevel),
	}
	for _, fn := range opts {
		fn(&o)
	}

	log.Logger = log.CreateLogger(o.logLevel, o.logFile)

	coll, err := transport.NewCollector(o.primary, o.backup)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}

	a := &Agent{
		opts:      o,
		queue:     ringbuffer.New(o.ringBufferSize),
		transport: coll,
		throttle:  throttle.NewStore(),
		interval:  command.NewIntervalStore(o.measurementInterval),
		identity:  identity.New(o.metadataURL),
	}
	a.commands = &command.Parser{Throttle: a.throttle, Interval: a.interval}
	a.disp = dispatcher.New(dispatcher.Config{
		Queue:        a.queue,
		Transport:    a.transport,
		Throttle:     a.throttle,
		Commands:     a.commands,
		MaxJSONBytes: o.maxJSONBytes,
		Recorder:     o.recorder,
	})
	log.Logger.Infow("agent initialized", "primary", o.primary.EventURL(), "ring_buffer_size", o.ringBufferSize)
	return a, nil
}

// Role returns the functional_role init option (spec §6.1).
func (a *Agent) Role() string { return a.opts.role }

// SourceType returns the source_type init option (spec §6.1, §3.4).
func (a *Agent) SourceType() event.SourceType { return a.opts.sourceType }

// Identity returns the agent's best-effort vm_name/vm_uuid source, used
// by callers to default reportingEntityName/sourceId per spec §3.2.
func (a *Agent) Identity() *identity.Source { return a.identity }

// MeasurementInterval returns the current collector-controlled
// measurement interval in seconds (spec §3.6, §8 property 8).
func (a *Agent) MeasurementInterval() int { return a.interval.Get() }

// Throttle exposes the live per-domain throttle table, read by the
// introspection server and by callers wanting to inspect suppression
// state directly.
func (a *Agent) Throttle() *throttle.Store { return a.throttle }

// Queue exposes the ring buffer, read by the introspection server for
// queue-depth reporting.
func (a *Agent) Queue() *ringbuffer.Buffer { return a.queue }

// State returns the dispatcher's lifecycle state (spec §4.5).
func (a *Agent) State() dispatcher.State { return a.disp.State() }

// Run starts the dispatcher goroutine and transitions the agent from
// Inactive to Active (spec §4.5). It returns once the dispatcher
// goroutine has been launched; it does not block for the dispatcher's
// entire lifetime.
func (a *Agent) Run() {
	a.mu.Lock()
	if a.active {
		a.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	a.active = true
	a.mu.Unlock()

	go func() {
		defer close(a.done)
		a.disp.Run(ctx)
	}()
}

// PostEvent hands ev to the ring buffer for the dispatcher to encode and
// POST (spec §6.1, §7). Before queuing, the header's reportingEntityName/
// sourceName/reportingEntityId/sourceId are defaulted from the identity
// source wherever the caller hasn't already set them explicitly (spec
// §3.2). Ownership transfers to the library on success; on
// EventBufferFull or EventHandlerInactive the event is considered freed
// and the caller must not reuse it (spec §7 "ownership retained, event
// freed by library on its behalf").
func (a *Agent) PostEvent(ev event.Event) error {
	if !a.isActive() {
		return fmt.Errorf("agent: %w", errdefs.ErrEventHandlerInactive)
	}
	a.applyIdentityDefaults(ev)
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return fmt.Errorf("agent: %w", errdefs.ErrEventHandlerInactive)
	}
	if !a.queue.Write(ev) {
		return fmt.Errorf("agent: %w", errdefs.ErrEventBufferFull)
	}
	return nil
}

// PostPriorityEvent bypasses the ring buffer and has the dispatcher send
// ev ahead of the next regular dequeue (SPEC_FULL.md §C.3). Returns
// ErrEventHandlerInactive if the agent isn't running, or an error if a
// priority post is already pending or the ring buffer cannot take the
// dispatcher's wake marker.
func (a *Agent) PostPriorityEvent(ev event.Event) error {
	if !a.isActive() {
		return fmt.Errorf("agent: %w", errdefs.ErrEventHandlerInactive)
	}
	a.applyIdentityDefaults(ev)
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return fmt.Errorf("agent: %w", errdefs.ErrEventHandlerInactive)
	}
	if !a.disp.PostPriority(ev) {
		return fmt.Errorf("agent: priority post already pending or event queue full")
	}
	return nil
}

// applyIdentityDefaults fills ev's header identity fields from the
// agent's identity source (spec §3.2, §4.8). DomainInternal control
// events carry no header and are never passed here by production
// callers, but the nil check keeps this safe regardless.
func (a *Agent) applyIdentityDefaults(ev event.Event) {
	hdr := ev.Header()
	if hdr == nil {
		return
	}
	ctx := context.Background()
	hdr.ApplyIdentityDefaults(a.identity.VMName(ctx), a.identity.VMUUID(ctx))
}

// isActive reports whether the agent is between Run() and
// RequestTerminate() per the strict "reject after RequestTerminate"
// semantics decided in DESIGN.md for the spec's open question on
// PostEvent's behavior during shutdown.
func (a *Agent) isActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Terminate implements the shutdown drain (spec §4.5, §6.1): it stops
// accepting new PostEvent calls immediately, then lets the dispatcher
// drain and free every already-queued event before returning. Safe to
// call once; a second call is a no-op.
func (a *Agent) Terminate() error {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return nil
	}
	a.active = false
	done := a.done
	a.mu.Unlock()

	a.disp.RequestTerminate()
	<-done
	if a.cancel != nil {
		a.cancel()
	}
	a.transport.Close()
	return nil
}
