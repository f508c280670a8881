// Package dispatcher implements the single worker described in spec
// §4.5: it owns the ring buffer's consumer side, drives the throttled
// JSON encoder, POSTs to the collector transport, hands non-empty
// responses to the command parser, and runs the lifecycle state machine
// from Active through the shutdown drain.
package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/att-ves/vesagent/command"
	"github.com/att-ves/vesagent/event"
	"github.com/att-ves/vesagent/jsonbuf"
	"github.com/att-ves/vesagent/log"
	"github.com/att-ves/vesagent/ringbuffer"
	"github.com/att-ves/vesagent/throttle"
	"github.com/att-ves/vesagent/transport"
)

// State is the dispatcher lifecycle state (spec §4.5):
//
//	Uninitialized --Initialize--> Inactive --Run--> Active
//	Active --Terminate()--> RequestTerminate --(TERMINATE consumed)--> Terminating --(drain)--> Terminated
//
// New returns a Dispatcher already in Inactive; agent.Initialize is the
// only caller, so the Uninitialized state itself has no Go representation.
type State int32

const (
	StateUninitialized State = iota
	StateInactive
	StateActive
	StateRequestTerminate
	StateTerminating
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInactive:
		return "Inactive"
	case StateActive:
		return "Active"
	case StateRequestTerminate:
		return "RequestTerminate"
	case StateTerminating:
		return "Terminating"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Recorder receives dispatcher observability events. A nil Recorder
// passed to New is replaced with a no-op implementation.
type Recorder interface {
	QueueDepth(n int)
	PostResult(domain string, success bool)
	PriorityPosted()
	SetMeasurementInterval(seconds int)
	SetThrottledDomainCount(n int)
}

type noopRecorder struct{}

func (noopRecorder) QueueDepth(int)              {}
func (noopRecorder) PostResult(string, bool)     {}
func (noopRecorder) PriorityPosted()             {}
func (noopRecorder) SetMeasurementInterval(int)  {}
func (noopRecorder) SetThrottledDomainCount(int) {}

// Config collects a Dispatcher's dependencies. All fields except
// Recorder are required.
type Config struct {
	Queue        *ringbuffer.Buffer
	Transport    transport.Poster
	Throttle     *throttle.Store
	Commands     *command.Parser
	MaxJSONBytes int
	Recorder     Recorder
}

// Dispatcher is the single worker goroutine. The zero value is not
// usable; construct with New.
type Dispatcher struct {
	queue     *ringbuffer.Buffer
	transport transport.Poster
	throttle  *throttle.Store
	commands  *command.Parser
	maxBytes  int
	rec       Recorder

	state atomic.Int32

	prioMu   sync.Mutex
	prioSlot event.Event
}

// New constructs a Dispatcher in the Inactive state.
func New(cfg Config) *Dispatcher {
	rec := cfg.Recorder
	if rec == nil {
		rec = noopRecorder{}
	}
	d := &Dispatcher{
		queue:     cfg.Queue,
		transport: cfg.Transport,
		throttle:  cfg.Throttle,
		commands:  cfg.Commands,
		maxBytes:  cfg.MaxJSONBytes,
		rec:       rec,
	}
	d.state.Store(int32(StateInactive))
	return d
}

// State returns the dispatcher's current lifecycle state. Safe to call
// from any goroutine (used by the introspection server).
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// PostPriority installs ev in the single priority slot and wakes the
// dispatcher so it is sent ahead of the next regular dequeue, bypassing
// the ring buffer (SPEC_FULL.md §C.3, the evel_event_mgr.c priority
// path). Returns false if a priority post is already pending or the
// queue can no longer accept the wake signal.
func (d *Dispatcher) PostPriority(ev event.Event) bool {
	d.prioMu.Lock()
	if d.prioSlot != nil {
		d.prioMu.Unlock()
		return false
	}
	d.prioSlot = ev
	d.prioMu.Unlock()

	if !d.queue.Write(event.NewInternal(event.CommandWake)) {
		d.prioMu.Lock()
		if d.prioSlot == ev {
			d.prioSlot = nil
		}
		d.prioMu.Unlock()
		return false
	}
	return true
}

func (d *Dispatcher) takePriority() event.Event {
	d.prioMu.Lock()
	defer d.prioMu.Unlock()
	ev := d.prioSlot
	d.prioSlot = nil
	return ev
}

// RequestTerminate implements the Active --Terminate()--> RequestTerminate
// transition (spec §4.5): it enqueues the internal TERMINATE event Run's
// loop is watching for, then closes the queue so that once every
// already-queued item (including TERMINATE) has drained, Run's blocking
// Read returns ok=false and the loop exits into Terminated. Callers are
// expected to have already stopped accepting new PostEvent calls by the
// time this is called (agent owns that half of "reject and free").
func (d *Dispatcher) RequestTerminate() {
	d.state.Store(int32(StateRequestTerminate))
	d.queue.Write(event.NewInternal(event.CommandTerminate))
	d.queue.Close()
}

// Run executes the dispatch loop (spec §4.5 steps 1-6) until the queue
// is closed and fully drained. Intended to run on its own goroutine,
// started once by agent.Run.
func (d *Dispatcher) Run(ctx context.Context) {
	d.state.Store(int32(StateActive))
	log.Logger.Infow("dispatcher active")

	for {
		if ev := d.takePriority(); ev != nil {
			d.postAndFree(ctx, ev)
			continue
		}

		item, ok := d.queue.Read()
		d.rec.QueueDepth(d.queue.Len())
		if !ok {
			break
		}

		ev, ok := item.(event.Event)
		if !ok {
			log.Logger.Warnw("dropping unrecognized queue item", "item", item)
			continue
		}

		if internal, ok := ev.(*event.Internal); ok {
			if internal.Command == event.CommandTerminate {
				d.state.Store(int32(StateTerminating))
				log.Logger.Infow("dispatcher draining for termination")
			}
			continue
		}

		if d.State() == StateTerminating {
			log.Logger.Warnw("dropping queued event during shutdown drain", "domain", ev.Domain().String())
			continue
		}

		d.postAndFree(ctx, ev)
	}

	d.state.Store(int32(StateTerminated))
	log.Logger.Infow("dispatcher terminated")
}

// postAndFree encodes ev with throttle suppression applied, POSTs it,
// and if the response carries a command list, applies it and
// priority-posts any resulting throttle-state report (spec §4.5 steps
// 3-6). ev is always considered "freed" on return; Go's GC does the
// actual reclamation once the caller's reference is dropped.
func (d *Dispatcher) postAndFree(ctx context.Context, ev event.Event) {
	spec := d.throttle.Get(int(ev.Domain()))
	buf := jsonbuf.New(d.maxBytes, spec)
	ev.Encode(buf)

	status, body, err := d.transport.Post(ctx, transport.EventURL, buf.Bytes())
	d.rec.PostResult(ev.Domain().String(), err == nil)
	if err != nil {
		log.Logger.Warnw("event post failed, dropping event", "domain", ev.Domain().String(), "status", status, "error", err)
		return
	}

	if len(body) == 0 {
		return
	}

	priorityPost, err := d.commands.Handle(body)
	if err != nil {
		log.Logger.Warnw("collector response rejected", "error", err)
		return
	}
	d.rec.SetMeasurementInterval(d.commands.Interval.Get())
	d.rec.SetThrottledDomainCount(len(d.throttle.ThrottledDomains()))
	if priorityPost == nil {
		return
	}

	d.rec.PriorityPosted()
	if _, _, err := d.transport.Post(ctx, transport.ThrottlingStateURL, priorityPost); err != nil {
		log.Logger.Warnw("throttle-state priority post failed", "error", err)
	}
}
