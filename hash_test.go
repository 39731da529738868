package structdiff

import (
	"hash"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderIndependentHash(t *testing.T) {
	a := []interface{}{float64(1), "two", map[string]interface{}{"three": true}}
	b := []interface{}{map[string]interface{}{"three": true}, float64(1), "two"}
	require.Equal(t, OrderIndependentHash(a), OrderIndependentHash(b), "permuted arrays must hash alike")

	c := []interface{}{float64(1), "two", map[string]interface{}{"three": false}}
	require.NotEqual(t, OrderIndependentHash(a), OrderIndependentHash(c), "content changes must move the hash")
}

func TestOrderIndependentHashNumericWidths(t *testing.T) {
	// decoded-json float and plain go int with the same magnitude are one value
	require.Equal(t, OrderIndependentHash(float64(42)), OrderIndependentHash(42))
}

func TestOrderIndependentHashObjectKeys(t *testing.T) {
	// member contributions commute, so enumeration order never matters, but
	// the same value under a different key does
	a := map[string]interface{}{"x": "v", "y": "w"}
	b := map[string]interface{}{"y": "w", "x": "v"}
	require.Equal(t, OrderIndependentHash(a), OrderIndependentHash(b))

	c := map[string]interface{}{"x": "w", "y": "v"}
	require.NotEqual(t, OrderIndependentHash(a), OrderIndependentHash(c))
}

func TestNewHashOverride(t *testing.T) {
	defer func(orig func() hash.Hash64) { NewHash = orig }(NewHash)
	NewHash = func() hash.Hash64 { return fnv.New64a() }

	a := []interface{}{"one", "two"}
	b := []interface{}{"two", "one"}
	require.Equal(t, OrderIndependentHash(a), OrderIndependentHash(b))
}

func TestSortedByHashCopies(t *testing.T) {
	vals := []interface{}{"c", "a", "b"}
	orig := append([]interface{}{}, vals...)
	sorted := sortedByHash(vals)
	require.Equal(t, orig, vals, "input must not be reordered in place")
	require.ElementsMatch(t, vals, sorted)
}
