package structdiff

import (
	"github.com/pkg/errors"
)

// ErrInvalidSink is returned by Collect when the supplied sink exposes no
// append capability
var ErrInvalidSink = errors.New("sink does not support append")

// Appender is the capability Collect requires of a sink. *Changes
// implements it.
type Appender interface {
	Append(c Change)
}

// Observe is a convenience wrapper around NewDiffer(opts...).Observe
func Observe(left, right interface{}, fn func(Change), opts ...Option) Changes {
	return NewDiffer(opts...).Observe(left, right, fn)
}

// Observe runs the diff to completion, then invokes fn once per record in
// emission order. fn is never interleaved with the traversal and may be
// nil. The full record list is returned either way.
func (d *Differ) Observe(left, right interface{}, fn func(Change)) Changes {
	changes := d.Diff(left, right)
	if fn != nil {
		for _, c := range changes {
			fn(c)
		}
	}
	return changes
}

// Collect is a convenience wrapper around NewDiffer(opts...).Collect
func Collect(left, right interface{}, sink interface{}, opts ...Option) (Changes, error) {
	return NewDiffer(opts...).Collect(left, right, sink)
}

// Collect runs the diff and appends every record to sink in emission
// order. A nil sink just returns the records; a non-nil sink that is not
// an Appender fails with ErrInvalidSink before any comparison happens.
func (d *Differ) Collect(left, right interface{}, sink interface{}) (Changes, error) {
	var app Appender
	if sink != nil {
		var ok bool
		if app, ok = sink.(Appender); !ok {
			return nil, errors.Wrapf(ErrInvalidSink, "%T", sink)
		}
	}

	changes := d.Diff(left, right)
	if app != nil {
		for _, c := range changes {
			app.Append(c)
		}
	}
	return changes, nil
}
