// Package structdiff computes structural differences between two arbitrary
// nested value graphs and describes them as an ordered list of change
// records. Each record carries the path to the changed location and enough
// information to undo (or re-apply) that one change against a target value.
//
// The comparison walks both values in lockstep. Objects are reconciled by
// key set, arrays positionally: length changes are always encoded at the
// tail as ArrayChange records, and no attempt is made to find a minimal
// edit script or detect moves. An optional order-independent mode sorts
// array elements by a content hash before comparing, so permutations of
// the same elements compare equal.
//
// structdiff operates on native go values. The natural inputs are the types
// produced by unmarshaling JSON:
//
//	map[string]interface{}
//	[]interface{}
//
// plus scalars (string, bool, nil and any numeric type), but time.Time
// values compare by millisecond, *regexp.Regexp values compare by their
// canonical string form, and arbitrary maps, slices and structs are
// traversed through reflection.
//
// Reference cycles on the left-hand value are detected and cut; the walk
// never revisits a container already on the active comparison stack. Depth
// is otherwise unbounded, so pathologically deep acyclic structures can
// exhaust the call stack.
//
// Records can be reverted one at a time with Revert, or re-applied with
// Apply. Applying every record of a diff in emission order against a copy
// of the left-hand document reproduces the right-hand document; reverting
// them in reverse order restores the left-hand document except when
// several records address overlapping indices of one array.
package structdiff
