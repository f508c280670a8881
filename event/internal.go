package event

import "github.com/att-ves/vesagent/jsonbuf"

// InternalCommand tags the single in-band control messages the
// dispatcher accepts through the same queue as ordinary events.
type InternalCommand string

const (
	// CommandTerminate is the control message the dispatcher looks for
	// to move from RequestTerminate to Terminating (spec §4.5).
	CommandTerminate InternalCommand = "TERMINATE"

	// CommandWake carries no state of its own; it exists only to unblock
	// a dispatcher parked in ring_buffer.read() so it notices a pending
	// priority post (SPEC_FULL.md §C.3). Never reaches the collector.
	CommandWake InternalCommand = "WAKE"
)

// Internal is the DomainInternal control event: dispatcher-to-dispatcher
// signaling that rides the regular ring buffer but is never serialized
// or posted to a collector (spec §4.5 step 2).
type Internal struct {
	Command InternalCommand
}

var _ Event = (*Internal)(nil)

// NewInternal constructs a control event carrying cmd.
func NewInternal(cmd InternalCommand) *Internal {
	return &Internal{Command: cmd}
}

func (e *Internal) Domain() Domain  { return DomainInternal }
func (e *Internal) Header() *Header { return nil }

// Encode is never called: the dispatcher intercepts DomainInternal
// events before reaching the encode/POST step.
func (e *Internal) Encode(buf *jsonbuf.Buffer) {}
