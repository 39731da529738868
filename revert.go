package structdiff

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"
)

// Revert applies the inverse of a single change record against target,
// mutating it in place. target must be a non-nil pointer, typically a
// *interface{} holding the document root; a nil target or nil record is a
// silent no-op. Intermediate path segments that are absent from the target
// are created as empty objects on the way down.
//
// Revert is deliberately single-record: reverting a whole diff means
// iterating its records in reverse emission order, and is not guaranteed
// consistent when records overlap the same array indices.
func Revert(target interface{}, c Change) error {
	if target == nil || c == nil {
		return nil
	}
	return rewrite(target, func(root interface{}) (interface{}, error) {
		return revertIn(root, c)
	})
}

// Apply applies a single change record forward against target, the
// symmetric counterpart of Revert: re-applying every record of a diff in
// emission order against a copy of the left-hand document reproduces the
// right-hand document. Same target contract as Revert.
func Apply(target interface{}, c Change) error {
	if target == nil || c == nil {
		return nil
	}
	return rewrite(target, func(root interface{}) (interface{}, error) {
		return applyIn(root, c)
	})
}

// rewrite funnels a value transformation through a pointer target, so
// mutations that replace the root or resize a root array land back in the
// caller's variable
func rewrite(target interface{}, fn func(interface{}) (interface{}, error)) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("passed in target must be a non-nil pointer")
	}

	out, err := fn(rv.Elem().Interface())
	if err != nil {
		return err
	}

	el := rv.Elem()
	if out == nil {
		el.Set(reflect.Zero(el.Type()))
		return nil
	}
	ov := reflect.ValueOf(out)
	if !ov.Type().AssignableTo(el.Type()) {
		return errors.Errorf("cannot assign %T back to %s target", out, el.Type())
	}
	el.Set(ov)
	return nil
}

func revertIn(v interface{}, c Change) (interface{}, error) {
	switch c := c.(type) {
	case *ArrayChange:
		return descend(v, c.At, func(loc interface{}) (interface{}, error) {
			arr, ok := loc.([]interface{})
			if !ok {
				return nil, errors.Errorf("expected array at path %q, got %T", c.At, loc)
			}
			return arrayRevert(arr, c.Index, c.Item)
		})
	case *Deleted:
		return writeAt(v, c.At, c.Value)
	case *Edited:
		return writeAt(v, c.At, c.Left)
	case *New:
		return removeAt(v, c.At)
	}
	return v, nil
}

func applyIn(v interface{}, c Change) (interface{}, error) {
	switch c := c.(type) {
	case *ArrayChange:
		return descend(v, c.At, func(loc interface{}) (interface{}, error) {
			arr, ok := loc.([]interface{})
			if !ok {
				return nil, errors.Errorf("expected array at path %q, got %T", c.At, loc)
			}
			return arrayApply(arr, c.Index, c.Item)
		})
	case *Deleted:
		return removeAt(v, c.At)
	case *Edited:
		return writeAt(v, c.At, c.Right)
	case *New:
		return writeAt(v, c.At, c.Value)
	}
	return v, nil
}

// descend walks path segments down to the addressed location and replaces
// it with the result of fn. Absent object members vivify as empty objects;
// the possibly-new value at each level is written back on the way up so
// slice length changes propagate.
func descend(v interface{}, path Path, fn func(interface{}) (interface{}, error)) (interface{}, error) {
	if len(path) == 0 {
		return fn(v)
	}

	seg := path[0]
	switch node := v.(type) {
	case map[string]interface{}:
		out, err := descend(node[seg], path[1:], fn)
		if err != nil {
			return nil, err
		}
		node[seg] = out
		return node, nil
	case []interface{}:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(node) {
			return nil, errors.Errorf("invalid array index %q in path", seg)
		}
		out, err := descend(node[i], path[1:], fn)
		if err != nil {
			return nil, err
		}
		node[i] = out
		return node, nil
	case nil:
		return descend(map[string]interface{}{}, path, fn)
	}
	return nil, errors.Errorf("cannot traverse %T at segment %q", v, seg)
}

// writeAt sets the location addressed by path to val. An empty path
// replaces the whole value.
func writeAt(v interface{}, path Path, val interface{}) (interface{}, error) {
	if len(path) == 0 {
		return val, nil
	}
	last := path[len(path)-1]
	return descend(v, path[:len(path)-1], func(loc interface{}) (interface{}, error) {
		return setKey(loc, last, val)
	})
}

// removeAt deletes the location addressed by path. An empty path zeroes
// the whole value.
func removeAt(v interface{}, path Path) (interface{}, error) {
	if len(path) == 0 {
		return nil, nil
	}
	last := path[len(path)-1]
	return descend(v, path[:len(path)-1], func(loc interface{}) (interface{}, error) {
		return deleteKey(loc, last)
	})
}

// setKey writes container[seg] = val. Slices grow with nulls as needed so
// tail deletions can be reverted index by index.
func setKey(container interface{}, seg string, val interface{}) (interface{}, error) {
	switch node := container.(type) {
	case map[string]interface{}:
		node[seg] = val
		return node, nil
	case []interface{}:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 {
			return nil, errors.Errorf("invalid array index %q", seg)
		}
		return spliceSet(node, i, val), nil
	case nil:
		return map[string]interface{}{seg: val}, nil
	}
	return nil, errors.Errorf("cannot set %q on %T", seg, container)
}

// deleteKey removes container[seg]. Missing members and out-of-range
// indices are a no-op.
func deleteKey(container interface{}, seg string) (interface{}, error) {
	switch node := container.(type) {
	case map[string]interface{}:
		delete(node, seg)
		return node, nil
	case []interface{}:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 {
			return nil, errors.Errorf("invalid array index %q", seg)
		}
		if i < len(node) {
			node = append(node[:i], node[i+1:]...)
		}
		return node, nil
	case nil:
		return nil, nil
	}
	return nil, errors.Errorf("cannot delete %q from %T", seg, container)
}

// arrayRevert undoes one encoded array change against arr, returning the
// updated slice: inserted elements are spliced out, removed or edited
// elements restored by (growing) index assignment, nested array items
// recurse one level deeper.
func arrayRevert(arr []interface{}, index int, item Change) ([]interface{}, error) {
	if index < 0 {
		return nil, errors.Errorf("negative array index %d", index)
	}
	switch it := item.(type) {
	case *New:
		if index < len(arr) {
			arr = append(arr[:index], arr[index+1:]...)
		}
		return arr, nil
	case *Deleted:
		return spliceSet(arr, index, it.Value), nil
	case *Edited:
		return spliceSet(arr, index, it.Left), nil
	case *ArrayChange:
		return arrayNested(arr, index, it, arrayRevert)
	}
	return arr, nil
}

// arrayApply is the forward counterpart of arrayRevert
func arrayApply(arr []interface{}, index int, item Change) ([]interface{}, error) {
	if index < 0 {
		return nil, errors.Errorf("negative array index %d", index)
	}
	switch it := item.(type) {
	case *New:
		return spliceSet(arr, index, it.Value), nil
	case *Deleted:
		if index < len(arr) {
			arr = append(arr[:index], arr[index+1:]...)
		}
		return arr, nil
	case *Edited:
		return spliceSet(arr, index, it.Right), nil
	case *ArrayChange:
		return arrayNested(arr, index, it, arrayApply)
	}
	return arr, nil
}

func arrayNested(arr []interface{}, index int, it *ArrayChange, op func([]interface{}, int, Change) ([]interface{}, error)) ([]interface{}, error) {
	if index >= len(arr) {
		return nil, errors.Errorf("array index %d exceeds %d", index, len(arr))
	}
	inner, ok := arr[index].([]interface{})
	if !ok {
		return nil, errors.Errorf("expected array at index %d, got %T", index, arr[index])
	}
	out, err := op(inner, it.Index, it.Item)
	if err != nil {
		return nil, err
	}
	arr[index] = out
	return arr, nil
}

// spliceSet assigns arr[index] = val, growing the slice with nulls when
// index is past the end
func spliceSet(arr []interface{}, index int, val interface{}) []interface{} {
	for len(arr) <= index {
		arr = append(arr, nil)
	}
	arr[index] = val
	return arr
}
