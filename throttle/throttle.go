// Package throttle implements the per-domain suppression table the
// collector can push down via commandType: throttlingSpecification
// (spec §4.6, §4.7). Each Spec answers the two questions the JSON
// encoder (package jsonbuf) needs answered while walking a domain's
// fields: SuppressField is one hash lookup; SuppressNVPair scans the
// name/value-pair entries for the containing field, then does one hash
// lookup in that entry's name set.
package throttle

import "sync"

// NVPairs associates a containing field name (e.g. "cpuUsageArray")
// with the set of name values that should be dropped from any
// name/value-pair object found inside that field's array.
type NVPairs struct {
	FieldName         string
	SuppressedNames   []string
	suppressedNameSet map[string]struct{}
}

func (p *NVPairs) finalize() {
	p.suppressedNameSet = make(map[string]struct{}, len(p.SuppressedNames))
	for _, n := range p.SuppressedNames {
		p.suppressedNameSet[n] = struct{}{}
	}
}

// Spec is one domain's throttle specification, exactly as received from
// the collector in an eventDomainThrottleSpecification object.
type Spec struct {
	SuppressedFieldNames []string
	SuppressedNVPairs    []NVPairs

	fieldSet map[string]struct{}
}

// Finalize builds the hash indexes used for encoding-time lookups. Must
// be called once after every list entry has been appended; the command
// parser (package command) calls this when it closes a Spec object.
func (s *Spec) Finalize() {
	s.fieldSet = make(map[string]struct{}, len(s.SuppressedFieldNames))
	for _, f := range s.SuppressedFieldNames {
		s.fieldSet[f] = struct{}{}
	}
	for i := range s.SuppressedNVPairs {
		s.SuppressedNVPairs[i].finalize()
	}
}

// Empty reports whether the spec has no suppression content at all, the
// trigger for replacing a domain's table entry with "no throttle"
// (spec §4.7).
func (s *Spec) Empty() bool {
	return len(s.SuppressedFieldNames) == 0 && len(s.SuppressedNVPairs) == 0
}

// SuppressField reports whether fieldName should be omitted entirely.
// A nil spec never suppresses anything, in O(1).
func (s *Spec) SuppressField(fieldName string) bool {
	if s == nil {
		return false
	}
	_, ok := s.fieldSet[fieldName]
	return ok
}

// SuppressNVPair reports whether name, found inside containingField's
// array, should be dropped. A nil spec never suppresses anything.
func (s *Spec) SuppressNVPair(containingField, name string) bool {
	if s == nil {
		return false
	}
	for _, nv := range s.SuppressedNVPairs {
		if nv.FieldName != containingField {
			continue
		}
		_, ok := nv.suppressedNameSet[name]
		return ok
	}
	return false
}

// Store is the global per-domain throttle table (spec §3.6). It is
// written only by the dispatcher goroutine after parsing a collector
// response and read only by that same goroutine while encoding, so no
// lock is strictly required per spec §5 — a RWMutex is kept anyway
// because the introspection HTTP server (package internal/introspect)
// reads it from a different goroutine for the /throttle endpoint.
type Store struct {
	mu    sync.RWMutex
	specs map[int]*Spec // keyed by event.Domain, stored as int to avoid an import cycle
}

func NewStore() *Store {
	return &Store{specs: make(map[int]*Spec)}
}

// Get returns the current spec for domain, or nil if the domain is not
// throttled.
func (s *Store) Get(domain int) *Spec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.specs[domain]
}

// Set atomically replaces domain's spec. Passing nil (or an Empty spec)
// clears throttling for that domain.
func (s *Store) Set(domain int, spec *Spec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if spec == nil || spec.Empty() {
		delete(s.specs, domain)
		return
	}
	s.specs[domain] = spec
}

// ThrottledDomains returns the domains currently carrying a non-nil
// spec, used both by the status report (package command) and the
// introspection server.
func (s *Store) ThrottledDomains() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	domains := make([]int, 0, len(s.specs))
	for d := range s.specs {
		domains = append(domains, d)
	}
	return domains
}
