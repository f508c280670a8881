// Package command parses collector response bodies and applies their
// effect to the agent's throttle table and measurement interval (spec
// §4.7). Parsing uses encoding/json's streaming Decoder rather than a
// hand-rolled tokenizer: the decoder already walks the document as a
// token stream with its own bounded recursion, so re-implementing a SAX
// loop on top of it would only duplicate that safety net (see
// DESIGN.md). The semantic state machine the spec describes —
// Start/CommandList/CommandListEntry/Command/Spec/FieldNames/PairsList —
// is realized as the Go struct hierarchy below plus the per-command-type
// switch in Handle; the structure of the JSON document is exactly the
// sequence of states the parser visits.
package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/att-ves/vesagent/errdefs"
	"github.com/att-ves/vesagent/event"
	"github.com/att-ves/vesagent/log"
	"github.com/att-ves/vesagent/throttle"
)

// Command type strings recognized in a commandList entry (spec §4.7).
const (
	CommandTypeMeasurementIntervalChange = "measurementIntervalChange"
	CommandTypeThrottlingSpecification   = "throttlingSpecification"
	CommandTypeProvideThrottlingState    = "provideThrottlingState"
)

// maxMeasurementInterval mirrors the spec's "non-negative integer <=
// INT_MAX" bound on measurementIntervalChange.
const maxMeasurementInterval = 1<<31 - 1

// Structural bounds on a collector response, carried over from the
// original library's tokenizer limits. A document that nests deeper
// than maxResponseDepth or carries more than maxResponseTokens tokens
// is rejected wholesale rather than truncated.
const (
	maxResponseDepth  = 10
	maxResponseTokens = 1024
)

type wireCommandList struct {
	CommandList []wireCommandEntry `json:"commandList"`
}

type wireCommandEntry struct {
	Command wireCommand `json:"command"`
}

type wireCommand struct {
	CommandType                      string            `json:"commandType"`
	MeasurementInterval              json.RawMessage   `json:"measurementInterval,omitempty"`
	EventDomainThrottleSpecification *wireThrottleSpec `json:"eventDomainThrottleSpecification,omitempty"`
}

type wireThrottleSpec struct {
	EventDomain           string        `json:"eventDomain"`
	SuppressedFieldNames  []string      `json:"suppressedFieldNames,omitempty"`
	SuppressedNvPairsList []wireNVPairs `json:"suppressedNvPairsList,omitempty"`
}

type wireNVPairs struct {
	NvPairFieldName       string   `json:"nvPairFieldName"`
	SuppressedNvPairNames []string `json:"suppressedNvPairNames,omitempty"`
}

// IntervalStore is the mutex-guarded global measurement interval (spec
// §3.6, §5 "measurement_interval (mutex-guarded)").
type IntervalStore struct {
	mu      sync.RWMutex
	seconds int
}

// NewIntervalStore constructs a store seeded with the configured default
// interval.
func NewIntervalStore(initialSeconds int) *IntervalStore {
	return &IntervalStore{seconds: initialSeconds}
}

// Get returns the current measurement interval in seconds.
func (s *IntervalStore) Get() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seconds
}

func (s *IntervalStore) set(v int) {
	s.mu.Lock()
	s.seconds = v
	s.mu.Unlock()
}

// Parser applies collector response commands to a throttle table and a
// measurement interval, and renders the throttle-state report the
// dispatcher priority-posts back (spec §4.5 step 4, §4.7).
type Parser struct {
	Throttle *throttle.Store
	Interval *IntervalStore
}

// Handle parses a collector response body and applies every recognized
// command. It returns a non-nil priorityPost only if the body contained
// a provideThrottlingState command. A structurally malformed document
// (bad nesting, wrong types) rejects the entire command list and leaves
// the throttle table and interval untouched, returning
// errdefs.ErrBadJSONFormat; an individual command with invalid content
// (unknown domain, out-of-range interval) is logged and skipped without
// failing the rest of the list (spec §4.7 error tolerance).
func (p *Parser) Handle(body []byte) (priorityPost []byte, err error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	if err := checkStructure(body); err != nil {
		return nil, err
	}

	var doc wireCommandList
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrBadJSONFormat, err)
	}

	wantReport := false
	for _, entry := range doc.CommandList {
		switch entry.Command.CommandType {
		case CommandTypeMeasurementIntervalChange:
			p.handleIntervalChange(entry.Command.MeasurementInterval)
		case CommandTypeThrottlingSpecification:
			p.handleThrottleSpec(entry.Command.EventDomainThrottleSpecification)
		case CommandTypeProvideThrottlingState:
			wantReport = true
		case "":
			log.Logger.Warnw("command entry missing commandType, ignoring")
		default:
			log.Logger.Warnw("ignoring unrecognized command type", "commandType", entry.Command.CommandType)
		}
	}

	if !wantReport {
		return nil, nil
	}
	return p.buildStateReport()
}

// checkStructure walks body as a token stream, enforcing the depth and
// token-count bounds before any command is applied. Rejecting here
// guarantees §4.7's error tolerance: nothing in the throttle table or
// interval store has been touched yet when a bound trips.
func checkStructure(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	depth := 0
	tokens := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", errdefs.ErrBadJSONFormat, err)
		}
		tokens++
		if tokens > maxResponseTokens {
			return fmt.Errorf("%w: response exceeds %d tokens", errdefs.ErrBadJSONFormat, maxResponseTokens)
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
				if depth > maxResponseDepth {
					return fmt.Errorf("%w: response nests deeper than %d", errdefs.ErrBadJSONFormat, maxResponseDepth)
				}
			case '}', ']':
				depth--
			}
		}
	}
}

func (p *Parser) handleIntervalChange(raw json.RawMessage) {
	if len(raw) == 0 {
		log.Logger.Warnw("measurementIntervalChange missing measurementInterval, ignoring")
		return
	}
	s := strings.Trim(string(raw), `"`)
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > maxMeasurementInterval {
		log.Logger.Warnw("invalid measurementInterval, ignoring", "value", s, "error", err)
		return
	}
	p.Interval.set(v)
}

func (p *Parser) handleThrottleSpec(wire *wireThrottleSpec) {
	if wire == nil {
		log.Logger.Warnw("throttlingSpecification missing eventDomainThrottleSpecification, ignoring")
		return
	}
	domain, err := event.ParseDomain(wire.EventDomain)
	if err != nil {
		log.Logger.Warnw("unrecognized eventDomain in throttlingSpecification, ignoring", "eventDomain", wire.EventDomain)
		return
	}

	spec := &throttle.Spec{
		SuppressedFieldNames: wire.SuppressedFieldNames,
		SuppressedNVPairs:    fromWireNVPairs(wire.SuppressedNvPairsList),
	}
	spec.Finalize()
	p.Throttle.Set(int(domain), spec)
}

func fromWireNVPairs(wire []wireNVPairs) []throttle.NVPairs {
	if len(wire) == 0 {
		return nil
	}
	out := make([]throttle.NVPairs, len(wire))
	for i, w := range wire {
		out[i] = throttle.NVPairs{FieldName: w.NvPairFieldName, SuppressedNames: w.SuppressedNvPairNames}
	}
	return out
}

func toWireNVPairs(pairs []throttle.NVPairs) []wireNVPairs {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]wireNVPairs, len(pairs))
	for i, p := range pairs {
		out[i] = wireNVPairs{NvPairFieldName: p.FieldName, SuppressedNvPairNames: p.SuppressedNames}
	}
	return out
}

type stateReportDoc struct {
	EventThrottlingState stateReportBody `json:"eventThrottlingState"`
}

type stateReportBody struct {
	EventThrottlingMode                  string           `json:"eventThrottlingMode"`
	EventDomainThrottleSpecificationList []domainSpecWire `json:"eventDomainThrottleSpecificationList,omitempty"`
}

type domainSpecWire struct {
	EventDomain           string        `json:"eventDomain"`
	SuppressedFieldNames  []string      `json:"suppressedFieldNames,omitempty"`
	SuppressedNvPairsList []wireNVPairs `json:"suppressedNvPairsList,omitempty"`
}

// buildStateReport renders the response to provideThrottlingState (spec
// §4.7): "throttled" with one entry per currently-throttled domain, or
// "normal" with no list at all.
func (p *Parser) buildStateReport() ([]byte, error) {
	domains := p.Throttle.ThrottledDomains()
	body := stateReportBody{EventThrottlingMode: "normal"}

	if len(domains) > 0 {
		sort.Ints(domains)
		body.EventThrottlingMode = "throttled"
		body.EventDomainThrottleSpecificationList = make([]domainSpecWire, 0, len(domains))
		for _, d := range domains {
			spec := p.Throttle.Get(d)
			if spec == nil {
				continue
			}
			body.EventDomainThrottleSpecificationList = append(body.EventDomainThrottleSpecificationList, domainSpecWire{
				EventDomain:           event.Domain(d).String(),
				SuppressedFieldNames:  spec.SuppressedFieldNames,
				SuppressedNvPairsList: toWireNVPairs(spec.SuppressedNVPairs),
			})
		}
	}

	b, err := json.Marshal(stateReportDoc{EventThrottlingState: body})
	if err != nil {
		return nil, fmt.Errorf("marshaling throttle state report: %w", err)
	}
	return b, nil
}
