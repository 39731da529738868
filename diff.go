package structdiff

import (
	"reflect"
	"regexp"
	"strconv"
)

// Config are any possible configuration parameters for calculating diffs
type Config struct {
	// Prefilter is consulted before descending into any keyed child of an
	// object or array; returning true skips that child entirely, no record
	// is emitted for it or its descendants
	Prefilter func(path Path, key string) bool
	// OrderIndependent compares arrays ignoring element order by sorting
	// both sides on a content hash before positional comparison. sorting
	// happens on shallow copies, caller arrays keep their order.
	OrderIndependent bool
	// Provide a non-nil stats pointer & Diff will populate it with tallies
	// of the produced records
	Stats *Stats
}

// Option is a function that adjusts a Config, zero or more Options can be
// passed to Diff
type Option func(cfg *Config)

// OptionPrefilter sets the prefilter consulted before descending into
// keyed children
func OptionPrefilter(fn func(path Path, key string) bool) Option {
	return func(cfg *Config) {
		cfg.Prefilter = fn
	}
}

// OptionOrderIndependent makes array comparison ignore element order
func OptionOrderIndependent() Option {
	return func(cfg *Config) {
		cfg.OrderIndependent = true
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// Differ computes diffs with a fixed configuration
type Differ struct {
	cfg *Config
}

// NewDiffer creates a Differ from zero or more options
func NewDiffer(opts ...Option) *Differ {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Differ{cfg: cfg}
}

// Diff computes the ordered list of change records that transforms left
// into right
func Diff(left, right interface{}, opts ...Option) Changes {
	return NewDiffer(opts...).Diff(left, right)
}

// Diff computes the ordered list of change records that transforms left
// into right. The walk is synchronous and raises no errors; a panicking
// prefilter propagates to the caller.
func (d *Differ) Diff(left, right interface{}) Changes {
	w := &walker{cfg: d.cfg}
	w.compare(nil, "", false, operand{left, true}, operand{right, true})
	if d.cfg.Stats != nil {
		*d.cfg.Stats = w.changes.Stats()
	}
	return w.changes
}

// operand is one side of a comparison along with an explicit presence
// flag, distinguishing "absent" from "present but zero-valued"
type operand struct {
	value   interface{}
	present bool
}

// frame is one entry of the comparison stack, pushed when the walk enters
// a pair of containers. frames exist only to cut reference cycles: on
// re-entry the matched frame's right member decides whether the cycles
// are congruent.
type frame struct {
	left, right interface{}
}

// walker holds the transient state of one top-level diff invocation
type walker struct {
	cfg     *Config
	stack   []frame
	changes Changes
}

func (w *walker) emit(c Change) {
	w.changes = append(w.changes, c)
}

// compare diffs one pair of operands. keyed marks values reached through a
// parent container, whose key is consulted against the prefilter and
// appended to the path.
func (w *walker) compare(path Path, key string, keyed bool, lhs, rhs operand) {
	if keyed {
		if w.cfg.Prefilter != nil && w.cfg.Prefilter(path, key) {
			return
		}
		path = path.child(key)
	}

	switch {
	case !lhs.present && !rhs.present:
		return
	case !lhs.present:
		w.emit(&New{At: path, Value: rhs.value})
		return
	case !rhs.present:
		w.emit(&Deleted{At: path, Value: lhs.value})
		return
	}

	lt, rt := TypeOf(lhs.value), TypeOf(rhs.value)
	if lt != rt {
		w.emit(&Edited{At: path, Left: lhs.value, Right: rhs.value})
		return
	}

	switch lt {
	case typeDate:
		if asTime(lhs.value).UnixMilli() != asTime(rhs.value).UnixMilli() {
			w.emit(&Edited{At: path, Left: lhs.value, Right: rhs.value})
		}
	case typeRegexp:
		if lhs.value.(*regexp.Regexp).String() != rhs.value.(*regexp.Regexp).String() {
			w.emit(&Edited{At: path, Left: lhs.value, Right: rhs.value})
		}
	case typeArray, typeObject:
		w.compareContainers(path, lt, lhs.value, rhs.value)
	case typeNaN:
		// NaN counts as equal to itself
	default:
		if !leafEqual(lhs.value, rhs.value) {
			w.emit(&Edited{At: path, Left: lhs.value, Right: rhs.value})
		}
	}
}

func (w *walker) compareContainers(path Path, tag string, left, right interface{}) {
	// cycle re-entry: the left value is already on the active stack. when
	// the right side cycles back to the same frame the shapes are
	// congruent and nothing is emitted; otherwise the references differ
	// and the pair is reported as an edit. never descend again.
	for i := len(w.stack) - 1; i >= 0; i-- {
		if sameRef(w.stack[i].left, left) {
			if !sameRef(w.stack[i].right, right) {
				w.emit(&Edited{At: path, Left: left, Right: right})
			}
			return
		}
	}

	w.stack = append(w.stack, frame{left: left, right: right})
	defer func() {
		w.stack = w.stack[:len(w.stack)-1]
	}()

	if tag == typeArray {
		w.compareArrays(path, asSlice(left), asSlice(right))
		return
	}
	w.compareObjects(path, asMap(left), asMap(right))
}

// compareArrays encodes length changes at the tail as ArrayChange records,
// emitted in descending index order, then compares the shared prefix
// positionally. No attempt is made to find a minimal edit script: elements
// shifted by a mid-array insertion surface as per-index edits.
func (w *walker) compareArrays(path Path, left, right []interface{}) {
	if w.cfg.OrderIndependent {
		left, right = sortedByHash(left), sortedByHash(right)
	}

	i, j := len(right)-1, len(left)-1
	for ; i > j; i-- {
		w.emit(&ArrayChange{At: path, Index: i, Item: &New{Value: right[i]}})
	}
	for ; j > i; j-- {
		w.emit(&ArrayChange{At: path, Index: j, Item: &Deleted{Value: left[j]}})
	}
	for k := 0; k <= i; k++ {
		w.compare(path, strconv.Itoa(k), true, operand{left[k], true}, operand{right[k], true})
	}
}

// compareObjects reconciles key sets: shared keys recurse, left-only keys
// produce Deleted subtrees, right-only keys New subtrees. Left keys are
// visited first, then remaining right keys, each in sorted order.
func (w *walker) compareObjects(path Path, left, right map[string]interface{}) {
	consumed := map[string]bool{}
	for _, k := range sortedKeys(left) {
		rv, ok := right[k]
		if ok {
			consumed[k] = true
		}
		w.compare(path, k, true, operand{left[k], true}, operand{rv, ok})
	}
	for _, k := range sortedKeys(right) {
		if consumed[k] {
			continue
		}
		w.compare(path, k, true, operand{nil, false}, operand{right[k], true})
	}
}

// leafEqual reports scalar equality. both values carry the same type tag
// when this is called; numbers compare by magnitude across go types.
func leafEqual(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		bf, _ := toFloat(b)
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}
