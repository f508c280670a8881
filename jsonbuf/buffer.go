// Package jsonbuf implements the streaming JSON writer used to encode
// events (spec §4.2): object/array nesting with correct comma placement,
// a checkpoint/rewind mechanism for abandoning optional sections that
// turn out empty after throttling, and throttle-aware key suppression.
//
// Unlike the original C implementation, which wrote into a fixed-size
// byte array and truncated on overflow, this buffer grows as needed but
// still honors a MaxBytes cap: writes that would exceed it are dropped
// and logged, matching the spec's "overflow truncates and is logged as
// an error" invariant without risking a corrupt document from a
// mid-write truncation.
package jsonbuf

import (
	"fmt"
	"strconv"

	"github.com/att-ves/vesagent/log"
)

// ThrottleQuery answers the two suppression questions the encoder needs
// while walking a domain's fields (spec §4.6). A nil ThrottleQuery means
// "no throttling" and both methods behave as if nothing is suppressed.
type ThrottleQuery interface {
	SuppressField(fieldName string) bool
	SuppressNVPair(containingField, name string) bool
}

type scopeKind int

const (
	scopeObject scopeKind = iota
	scopeArray
)

type scope struct {
	kind      scopeKind
	hasChild  bool
	itemCount int
	// optCheckpoint is set when this scope was opened via one of the
	// Opt* constructors; if the scope closes with itemCount == 0, the
	// buffer rewinds to optCheckpoint instead of writing a closing
	// bracket, omitting the key entirely.
	optCheckpoint *Checkpoint
}

// Checkpoint is an opaque marker produced by Checkpoint() and consumed
// by Rewind(), recording exactly enough state to undo every write made
// since it was taken.
type Checkpoint struct {
	offset         int
	scopesLen      int
	parentHadChild bool
	parentHadScope bool
}

// Buffer is a streaming JSON writer. Not safe for concurrent use; the
// dispatcher owns one per POST (spec §4.5 step 3).
type Buffer struct {
	buf      []byte
	maxBytes int
	scopes   []scope
	throttle ThrottleQuery
	overflow bool
}

// New constructs a Buffer. maxBytes <= 0 means unbounded.
func New(maxBytes int, throttle ThrottleQuery) *Buffer {
	return &Buffer{
		buf:      make([]byte, 0, 4096),
		maxBytes: maxBytes,
		throttle: throttle,
	}
}

// Depth returns the current nesting depth (0 at top level).
func (b *Buffer) Depth() int { return len(b.scopes) }

// Bytes returns the encoded document so far. Valid JSON only once Depth
// has returned to 0.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) write(p []byte) {
	if b.overflow {
		return
	}
	if b.maxBytes > 0 && len(b.buf)+len(p) > b.maxBytes {
		b.overflow = true
		log.Logger.Errorw("json buffer overflow, truncating", "max_bytes", b.maxBytes)
		return
	}
	b.buf = append(b.buf, p...)
}

func (b *Buffer) writeString(s string) { b.write([]byte(s)) }

// beforeItem writes a separating comma if the current scope already has
// a child, then marks it as having one. Call before writing any key or
// array element.
func (b *Buffer) beforeItem() {
	if len(b.scopes) == 0 {
		return
	}
	top := &b.scopes[len(b.scopes)-1]
	if top.hasChild {
		b.writeString(",")
	}
	top.hasChild = true
	top.itemCount++
}

func (b *Buffer) pushScope(kind scopeKind, optCheckpoint *Checkpoint) {
	b.scopes = append(b.scopes, scope{kind: kind, optCheckpoint: optCheckpoint})
}

func (b *Buffer) popScope() scope {
	n := len(b.scopes)
	s := b.scopes[n-1]
	b.scopes = b.scopes[:n-1]
	return s
}

// OpenObject opens an unnamed object, valid at the document root or as
// an array element.
func (b *Buffer) OpenObject() {
	b.beforeItem()
	b.writeString("{")
	b.pushScope(scopeObject, nil)
}

// CloseObject closes the innermost object.
func (b *Buffer) CloseObject() {
	b.popScope()
	b.writeString("}")
}

// OpenList opens an unnamed array.
func (b *Buffer) OpenList() {
	b.beforeItem()
	b.writeString("[")
	b.pushScope(scopeArray, nil)
}

// CloseList closes the innermost array.
func (b *Buffer) CloseList() {
	b.popScope()
	b.writeString("]")
}

func (b *Buffer) writeKey(key string) {
	b.beforeItem()
	b.writeString(strconv.Quote(key))
	b.writeString(":")
}

// OpenNamedObject opens `"key":{`.
func (b *Buffer) OpenNamedObject(key string) {
	b.writeKey(key)
	b.writeString("{")
	b.pushScope(scopeObject, nil)
}

// OpenNamedList opens `"key":[`.
func (b *Buffer) OpenNamedList(key string) {
	b.writeKey(key)
	b.writeString("[")
	b.pushScope(scopeArray, nil)
}

// OpenOptNamedList consults the throttle spec for key; if suppressed it
// writes nothing and returns false (the caller must skip the section
// entirely, not call CloseOpt). Otherwise it behaves like
// OpenNamedList, but also remembers a checkpoint so that if the array
// ends up empty (every item suppressed by a name/value rule), CloseOpt
// rewinds the buffer and omits the key.
func (b *Buffer) OpenOptNamedList(key string) bool {
	if b.throttle != nil && b.throttle.SuppressField(key) {
		return false
	}
	cp := b.Checkpoint()
	b.writeKey(key)
	b.writeString("[")
	b.pushScope(scopeArray, &cp)
	return true
}

// OpenOptNamedObject is the object analogue of OpenOptNamedList.
func (b *Buffer) OpenOptNamedObject(key string) bool {
	if b.throttle != nil && b.throttle.SuppressField(key) {
		return false
	}
	cp := b.Checkpoint()
	b.writeKey(key)
	b.writeString("{")
	b.pushScope(scopeObject, &cp)
	return true
}

// CloseOpt closes a scope opened by OpenOptNamedList/OpenOptNamedObject,
// rewinding to omit the key entirely if no items were ever added.
func (b *Buffer) CloseOpt() {
	s := b.popScope()
	if s.itemCount == 0 && s.optCheckpoint != nil {
		b.Rewind(*s.optCheckpoint)
		return
	}
	if s.kind == scopeArray {
		b.writeString("]")
	} else {
		b.writeString("}")
	}
}

// SuppressNVPair reports whether the given name, appearing inside the
// array keyed by containingField, should be dropped (spec §4.6). Callers
// encoding name/value-pair-shaped lists check this per item and simply
// skip writing the item if true; if every item in an Opt-opened array is
// skipped this way, the subsequent CloseOpt rewinds the whole key away.
func (b *Buffer) SuppressNVPair(containingField, name string) bool {
	if b.throttle == nil {
		return false
	}
	return b.throttle.SuppressNVPair(containingField, name)
}

// Checkpoint captures enough state to undo every write made since the
// call, for manual checkpoint/rewind use beyond the Opt* helpers.
func (b *Buffer) Checkpoint() Checkpoint {
	cp := Checkpoint{offset: len(b.buf), scopesLen: len(b.scopes)}
	if len(b.scopes) > 0 {
		cp.parentHadScope = true
		cp.parentHadChild = b.scopes[len(b.scopes)-1].hasChild
	}
	return cp
}

// Rewind restores the buffer to the state captured by cp, discarding
// every write and every opened-but-not-yet-closed scope since then.
func (b *Buffer) Rewind(cp Checkpoint) {
	if cp.offset > len(b.buf) {
		return
	}
	b.buf = b.buf[:cp.offset]
	if cp.scopesLen <= len(b.scopes) {
		b.scopes = b.scopes[:cp.scopesLen]
	}
	if cp.parentHadScope && len(b.scopes) > 0 {
		b.scopes[len(b.scopes)-1].hasChild = cp.parentHadChild
	}
	b.overflow = false
}

// suppressed reports whether key is in the current throttle spec's
// suppressed-field-names set; scalar EncKV* writers skip both key and
// value when true (spec §4.6 test property 6 applies to any field, not
// only list/object sections).
func (b *Buffer) suppressed(key string) bool {
	return b.throttle != nil && b.throttle.SuppressField(key)
}

// EncKVString writes `"key":"value"`.
func (b *Buffer) EncKVString(key, value string) {
	if b.suppressed(key) {
		return
	}
	b.writeKey(key)
	b.write(quoteJSON(value))
}

// EncKVInt writes `"key":value` for a signed integer.
func (b *Buffer) EncKVInt(key string, value int) {
	if b.suppressed(key) {
		return
	}
	b.writeKey(key)
	b.writeString(strconv.Itoa(value))
}

// EncKVInt64 writes `"key":value` for a signed 64-bit integer.
func (b *Buffer) EncKVInt64(key string, value int64) {
	if b.suppressed(key) {
		return
	}
	b.writeKey(key)
	b.writeString(strconv.FormatInt(value, 10))
}

// EncKVULL writes `"key":value` for an unsigned 64-bit counter (vNIC
// octet/packet counters and similar, spec §3.4).
func (b *Buffer) EncKVULL(key string, value uint64) {
	if b.suppressed(key) {
		return
	}
	b.writeKey(key)
	b.writeString(strconv.FormatUint(value, 10))
}

// EncKVDouble writes `"key":value` for a floating-point value.
func (b *Buffer) EncKVDouble(key string, value float64) {
	if b.suppressed(key) {
		return
	}
	b.writeKey(key)
	b.writeString(strconv.FormatFloat(value, 'f', -1, 64))
}

// EncVersion writes the schema-version convention used throughout the
// event model (spec §4.2): an integer when minor is 0, otherwise a
// "major.minor" number, e.g. 3 or 4.1.
func (b *Buffer) EncVersion(key string, major, minor int) {
	b.writeKey(key)
	if minor == 0 {
		b.writeString(strconv.Itoa(major))
		return
	}
	b.writeString(fmt.Sprintf("%d.%d", major, minor))
}

func quoteJSON(s string) []byte {
	return []byte(strconv.Quote(s))
}

// EncKVOptString writes the key only if isSet; mirrors the original
// library's evel_enc_kv_opt_string, which is how every optional field in
// the event model avoids emitting a key when absent (spec §4.1).
func (b *Buffer) EncKVOptString(key string, isSet bool, value string) {
	if !isSet {
		return
	}
	b.EncKVString(key, value)
}

// EncKVOptInt is the integer analogue of EncKVOptString.
func (b *Buffer) EncKVOptInt(key string, isSet bool, value int) {
	if !isSet {
		return
	}
	b.EncKVInt(key, value)
}

// EncKVOptInt64 is the int64 analogue of EncKVOptString.
func (b *Buffer) EncKVOptInt64(key string, isSet bool, value int64) {
	if !isSet {
		return
	}
	b.EncKVInt64(key, value)
}

// EncKVOptDouble is the float64 analogue of EncKVOptString.
func (b *Buffer) EncKVOptDouble(key string, isSet bool, value float64) {
	if !isSet {
		return
	}
	b.EncKVDouble(key, value)
}
