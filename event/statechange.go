package event

import "github.com/att-ves/vesagent/jsonbuf"

const (
	stateChangeMajorVersion = 3
	stateChangeMinorVersion = 0
)

// State is the state-change event's new/old state enum (spec §3.4).
type State string

const (
	StateInService    State = "inService"
	StateOutOfService State = "outOfService"
)

// StateChange reports an interface or resource transitioning between
// states (spec §3.4).
type StateChange struct {
	hdr Header

	NewState      State
	OldState      State
	InterfaceName string

	AdditionalFields NameValuePairs
}

var _ Event = (*StateChange)(nil)

func NewStateChange(eventName, eventID string, newState, oldState State, interfaceName string) *StateChange {
	sc := &StateChange{
		hdr:           NewHeader(DomainStateChange, eventName, eventID),
		NewState:      newState,
		OldState:      oldState,
		InterfaceName: interfaceName,
	}
	sc.hdr.Priority = PriorityNormal
	return sc
}

func (sc *StateChange) Domain() Domain  { return DomainStateChange }
func (sc *StateChange) Header() *Header { return &sc.hdr }

func (sc *StateChange) AddAdditionalField(name, value string) {
	sc.AdditionalFields.Add(name, value)
}

func (sc *StateChange) Encode(buf *jsonbuf.Buffer) {
	encodeEnvelope(buf, &sc.hdr, func() {
		buf.OpenNamedObject("stateChangeFields")
		buf.EncVersion("stateChangeFieldsVersion", stateChangeMajorVersion, stateChangeMinorVersion)
		buf.EncKVString("newState", string(sc.NewState))
		buf.EncKVString("oldState", string(sc.OldState))
		buf.EncKVString("stateInterface", sc.InterfaceName)
		sc.AdditionalFields.EncodeOpt(buf, "additionalFields")
		buf.CloseObject()
	})
}
