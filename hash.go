package structdiff

import (
	"fmt"
	"hash"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// NewHash returns the hash used to derive content keys for order-independent
// array comparison, wrapped in a function for easy hash algorithm switching.
// package consumers can override NewHash with their own hash.Hash64
// implementation. default is xxhash for fast, cheap, (non-cryptographic)
// hashing
var NewHash = func() hash.Hash64 {
	return xxhash.New()
}

// OrderIndependentHash returns a deterministic key for v that does not
// depend on the ordering of array elements or object keys: element and
// member hashes are combined by wrapping addition. The key is used only as
// a sort key when comparing arrays order-independently, never as an
// equality proof.
//
// The hash recurses without a cycle guard, mirroring the comparison
// engine's resource model: only call it on acyclic values.
func OrderIndependentHash(v interface{}) uint64 {
	switch TypeOf(v) {
	case typeArray:
		var sum uint64
		for _, el := range asSlice(v) {
			sum += OrderIndependentHash(el)
		}
		return sum
	case typeObject:
		var sum uint64
		for k, val := range asMap(v) {
			sum += hashString(typeObject + ":" + k + ":" + strconv.FormatUint(OrderIndependentHash(val), 10))
		}
		return sum
	}
	return hashString(TypeOf(v) + ":" + scalarString(v))
}

func hashString(s string) uint64 {
	h := NewHash()
	h.Write([]byte(s))
	return h.Sum64()
}

// scalarString is the canonical string form of a scalar value: dates hash
// by millisecond, regular expressions by source text, numbers by magnitude
// regardless of their go type
func scalarString(v interface{}) string {
	switch TypeOf(v) {
	case typeNull:
		return "null"
	case typeNaN:
		return "NaN"
	case typeDate:
		return strconv.FormatInt(asTime(v).UnixMilli(), 10)
	case typeRegexp:
		return v.(*regexp.Regexp).String()
	case typeNumber:
		f, _ := toFloat(v)
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func asTime(v interface{}) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return indirect(v).Interface().(time.Time)
}

// sortedByHash returns a shallow copy of vals ordered by content hash.
// sorting a copy keeps caller-owned arrays untouched in order-independent
// mode
func sortedByHash(vals []interface{}) []interface{} {
	idx := make([]int, len(vals))
	keys := make([]uint64, len(vals))
	for i, v := range vals {
		idx[i] = i
		keys[i] = OrderIndependentHash(v)
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]] < keys[idx[j]]
	})
	out := make([]interface{}, len(vals))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
