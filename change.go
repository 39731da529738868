package structdiff

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Kind tags the variants of a change record
type Kind string

const (
	// KindNew marks a value present on the right-hand side only
	KindNew = Kind("N")
	// KindDeleted marks a value present on the left-hand side only
	KindDeleted = Kind("D")
	// KindEdited marks a value that differs between the two sides
	KindEdited = Kind("E")
	// KindArray marks an element inserted into or removed from an array
	KindArray = Kind("A")
)

// Path locates a value inside a nested structure as an ordered list of
// segment keys. Object keys are used verbatim, array indices in decimal
// string form. The root is the empty path.
type Path []string

// String renders a path in slash-separated form, the root path is "/"
func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}

// child returns a copy of p extended with one segment. paths stored on
// change records must not alias the walker's scratch path
func (p Path) child(key string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = key
	return out
}

// Change is one atomic description of a difference between two values at a
// given path. The concrete types are New, Deleted, Edited and ArrayChange;
// the set is closed so consumers can switch over them exhaustively.
type Change interface {
	// Kind returns the variant tag of this record
	Kind() Kind
	// Path returns the location this record describes
	Path() Path

	sealed()
}

// New records a value that exists on the right-hand side but not the left
type New struct {
	At    Path
	Value interface{}
}

// Kind returns KindNew
func (c *New) Kind() Kind { return KindNew }

// Path returns the location the value appeared at
func (c *New) Path() Path { return c.At }

func (c *New) sealed() {}

// MarshalJSON implements json.Marshaler
func (c *New) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(c)) }

// Deleted records a value that exists on the left-hand side but not the
// right. Value holds the left-hand value so the deletion can be reverted.
type Deleted struct {
	At    Path
	Value interface{}
}

// Kind returns KindDeleted
func (c *Deleted) Kind() Kind { return KindDeleted }

// Path returns the location the value was removed from
func (c *Deleted) Path() Path { return c.At }

func (c *Deleted) sealed() {}

// MarshalJSON implements json.Marshaler
func (c *Deleted) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(c)) }

// Edited records a scalar-comparable value that differs between the two
// sides, including type mismatches and date-value mismatches
type Edited struct {
	At    Path
	Left  interface{}
	Right interface{}
}

// Kind returns KindEdited
func (c *Edited) Kind() Kind { return KindEdited }

// Path returns the location that differs
func (c *Edited) Path() Path { return c.At }

func (c *Edited) sealed() {}

// MarshalJSON implements json.Marshaler
func (c *Edited) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(c)) }

// ArrayChange records an element inserted into or removed from the array
// located at the record's path. Index is relative to that array and Item is
// a nested New or Deleted describing the element itself.
type ArrayChange struct {
	At    Path
	Index int
	Item  Change
}

// Kind returns KindArray
func (c *ArrayChange) Kind() Kind { return KindArray }

// Path returns the location of the changed array
func (c *ArrayChange) Path() Path { return c.At }

func (c *ArrayChange) sealed() {}

// MarshalJSON implements json.Marshaler
func (c *ArrayChange) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(c)) }

// Changes is an ordered list of change records in emission order
type Changes []Change

// Append adds one record to the list. *Changes satisfies the sink
// capability expected by Collect.
func (cs *Changes) Append(c Change) {
	*cs = append(*cs, c)
}

// MarshalJSON implements json.Marshaler
func (cs Changes) MarshalJSON() ([]byte, error) {
	wire := make([]*wireChange, len(cs))
	for i, c := range cs {
		wire[i] = toWire(c)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler
func (cs *Changes) UnmarshalJSON(data []byte) error {
	var wire []*wireChange
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(Changes, len(wire))
	for i, w := range wire {
		c, err := fromWire(w)
		if err != nil {
			return err
		}
		out[i] = c
	}
	*cs = out
	return nil
}

// DecodeChange parses a single JSON-encoded change record
func DecodeChange(data []byte) (Change, error) {
	w := &wireChange{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, err
	}
	return fromWire(w)
}

// wireChange is the serialized shape of a change record, shared by the JSON
// and msgpack codecs. Field presence is kind-specific: value for N and D,
// leftValue/rightValue for E, index and item for A.
type wireChange struct {
	Kind  Kind        `json:"kind" msgpack:"kind"`
	Path  Path        `json:"path,omitempty" msgpack:"path,omitempty"`
	Value interface{} `json:"value,omitempty" msgpack:"value,omitempty"`
	Left  interface{} `json:"leftValue,omitempty" msgpack:"leftValue,omitempty"`
	Right interface{} `json:"rightValue,omitempty" msgpack:"rightValue,omitempty"`
	Index *int        `json:"index,omitempty" msgpack:"index,omitempty"`
	Item  *wireChange `json:"item,omitempty" msgpack:"item,omitempty"`
}

func toWire(c Change) *wireChange {
	switch c := c.(type) {
	case *New:
		return &wireChange{Kind: KindNew, Path: c.At, Value: c.Value}
	case *Deleted:
		return &wireChange{Kind: KindDeleted, Path: c.At, Value: c.Value}
	case *Edited:
		return &wireChange{Kind: KindEdited, Path: c.At, Left: c.Left, Right: c.Right}
	case *ArrayChange:
		idx := c.Index
		return &wireChange{Kind: KindArray, Path: c.At, Index: &idx, Item: toWire(c.Item)}
	}
	return nil
}

func fromWire(w *wireChange) (Change, error) {
	switch w.Kind {
	case KindNew:
		return &New{At: w.Path, Value: w.Value}, nil
	case KindDeleted:
		return &Deleted{At: w.Path, Value: w.Value}, nil
	case KindEdited:
		return &Edited{At: w.Path, Left: w.Left, Right: w.Right}, nil
	case KindArray:
		if w.Index == nil || w.Item == nil {
			return nil, errors.Errorf("array change at %q missing index or item", w.Path)
		}
		item, err := fromWire(w.Item)
		if err != nil {
			return nil, err
		}
		return &ArrayChange{At: w.Path, Index: *w.Index, Item: item}, nil
	}
	return nil, errors.Errorf("unrecognized change kind %q", string(w.Kind))
}
