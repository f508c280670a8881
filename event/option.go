package event

import "github.com/att-ves/vesagent/log"

// OptString is a present/absent wrapper around an optional string field,
// enforcing the library's set-once discipline: once a value is set via
// Set, later calls are logged and ignored, matching the original C
// library's ::EVEL_OPTION_STRING semantics (spec §4.1).
type OptString struct {
	Value  string
	IsSet  bool
	fields string // label used in the set-once warning
}

func (o *OptString) Init(label string) {
	o.Value = ""
	o.IsSet = false
	o.fields = label
}

// Set assigns the value if not already set; otherwise logs a warning
// and leaves the existing value untouched.
func (o *OptString) Set(v string) {
	if o.IsSet {
		log.Logger.Warnw("optional string already set, ignoring", "field", o.fields, "value", v)
		return
	}
	o.Value = v
	o.IsSet = true
}

// ForceSet overwrites the value regardless of whether it was already set.
func (o *OptString) ForceSet(v string) {
	o.Value = v
	o.IsSet = true
}

func (o *OptString) Free() {
	o.Value = ""
	o.IsSet = false
}

// OptInt is the integer analogue of OptString.
type OptInt struct {
	Value  int
	IsSet  bool
	fields string
}

func (o *OptInt) Init(label string) {
	o.Value = 0
	o.IsSet = false
	o.fields = label
}

func (o *OptInt) Set(v int) {
	if o.IsSet {
		log.Logger.Warnw("optional int already set, ignoring", "field", o.fields, "value", v)
		return
	}
	o.Value = v
	o.IsSet = true
}

func (o *OptInt) ForceSet(v int) {
	o.Value = v
	o.IsSet = true
}

// OptInt64 is the 64-bit integer analogue (epoch microseconds, counters).
type OptInt64 struct {
	Value  int64
	IsSet  bool
	fields string
}

func (o *OptInt64) Init(label string) {
	o.Value = 0
	o.IsSet = false
	o.fields = label
}

func (o *OptInt64) Set(v int64) {
	if o.IsSet {
		log.Logger.Warnw("optional int64 already set, ignoring", "field", o.fields, "value", v)
		return
	}
	o.Value = v
	o.IsSet = true
}

func (o *OptInt64) ForceSet(v int64) {
	o.Value = v
	o.IsSet = true
}

// OptDouble is the floating-point analogue, used for MOS-CQE, R-factor,
// and other measured ratios.
type OptDouble struct {
	Value  float64
	IsSet  bool
	fields string
}

func (o *OptDouble) Init(label string) {
	o.Value = 0
	o.IsSet = false
	o.fields = label
}

func (o *OptDouble) Set(v float64) {
	if o.IsSet {
		log.Logger.Warnw("optional double already set, ignoring", "field", o.fields, "value", v)
		return
	}
	o.Value = v
	o.IsSet = true
}

func (o *OptDouble) ForceSet(v float64) {
	o.Value = v
	o.IsSet = true
}
