package structdiff

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RevertTestCase starts from a tree (as JSON), reverts one record against
// it and compares the mutated tree with expect
type RevertTestCase struct {
	description  string
	tree, expect string
	change       Change
}

func RunRevertCases(t *testing.T, cases []RevertTestCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			var tree, expect interface{}
			require.NoError(t, json.Unmarshal([]byte(c.tree), &tree))
			require.NoError(t, json.Unmarshal([]byte(c.expect), &expect))

			require.NoError(t, Revert(&tree, c.change))
			if diff := cmp.Diff(expect, tree); diff != "" {
				t.Errorf("reverted tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRevert(t *testing.T) {
	cases := []RevertTestCase{
		{
			"edit restores the left value",
			`{"a":{"b":2}}`,
			`{"a":{"b":1}}`,
			&Edited{At: Path{"a", "b"}, Left: float64(1), Right: float64(2)},
		},
		{
			"edit at the root replaces the whole value",
			`"after"`,
			`"before"`,
			&Edited{Left: "before", Right: "after"},
		},
		{
			"delete restores a zero-valued member",
			`{}`,
			`{"a":0}`,
			&Deleted{At: Path{"a"}, Value: float64(0)},
		},
		{
			"new removes the added member",
			`{"a":1,"b":2}`,
			`{"a":1}`,
			&New{At: Path{"b"}, Value: float64(2)},
		},
		{
			"new removes an appended element",
			`[1,2,3]`,
			`[1,2]`,
			&ArrayChange{Index: 2, Item: &New{Value: float64(3)}},
		},
		{
			"delete restores a trimmed element",
			`[1]`,
			`[1,2]`,
			&ArrayChange{Index: 1, Item: &Deleted{Value: float64(2)}},
		},
		{
			"array change navigates to the addressed array",
			`{"l":[1,2,3]}`,
			`{"l":[1,2]}`,
			&ArrayChange{At: Path{"l"}, Index: 2, Item: &New{Value: float64(3)}},
		},
		{
			"absent intermediate segments vivify as objects",
			`{}`,
			`{"a":{"b":1}}`,
			&Deleted{At: Path{"a", "b"}, Value: float64(1)},
		},
		{
			"edit inside an array element",
			`[{"x":2}]`,
			`[{"x":1}]`,
			&Edited{At: Path{"0", "x"}, Left: float64(1), Right: float64(2)},
		},
	}
	RunRevertCases(t, cases)
}

func TestRevertNoOps(t *testing.T) {
	// nil target and nil change are silent no-ops
	assert.NoError(t, Revert(nil, &New{At: Path{"a"}}))

	tree := map[string]interface{}{"a": float64(1)}
	assert.NoError(t, Revert(&tree, nil))
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, tree)
}

func TestRevertErrors(t *testing.T) {
	// a non-pointer target can't be written back through
	err := Revert(map[string]interface{}{}, &New{At: Path{"a"}})
	require.Error(t, err)

	// navigating an array with a non-numeric segment fails
	var tree interface{} = []interface{}{float64(1)}
	err = Revert(&tree, &Edited{At: Path{"x"}, Left: float64(0)})
	require.Error(t, err)

	// an array change addressing a non-array fails
	tree = map[string]interface{}{"l": "nope"}
	err = Revert(&tree, &ArrayChange{At: Path{"l"}, Index: 0, Item: &New{Value: float64(1)}})
	require.Error(t, err)
}

type ApplyTestCase struct {
	description  string
	tree, expect string
	change       Change
}

func TestApply(t *testing.T) {
	cases := []ApplyTestCase{
		{
			"edit sets the right value",
			`{"a":1}`,
			`{"a":2}`,
			&Edited{At: Path{"a"}, Left: float64(1), Right: float64(2)},
		},
		{
			"new adds the member",
			`{}`,
			`{"a":true}`,
			&New{At: Path{"a"}, Value: true},
		},
		{
			"delete removes the member",
			`{"a":1,"b":2}`,
			`{"a":1}`,
			&Deleted{At: Path{"b"}, Value: float64(2)},
		},
		{
			"array insert lands at its index",
			`{"l":[1,2]}`,
			`{"l":[1,2,3]}`,
			&ArrayChange{At: Path{"l"}, Index: 2, Item: &New{Value: float64(3)}},
		},
		{
			"array delete trims the element",
			`[1,2]`,
			`[1]`,
			&ArrayChange{Index: 1, Item: &Deleted{Value: float64(2)}},
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			var tree, expect interface{}
			require.NoError(t, json.Unmarshal([]byte(c.tree), &tree))
			require.NoError(t, json.Unmarshal([]byte(c.expect), &expect))

			require.NoError(t, Apply(&tree, c.change))
			if diff := cmp.Diff(expect, tree); diff != "" {
				t.Errorf("applied tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// applying every record of a diff forward against the left document must
// reproduce the right document
func TestApplyRoundtrip(t *testing.T) {
	var left, right, work interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":{"c":[1,2,3]},"d":"x"}`), &left))
	require.NoError(t, json.Unmarshal([]byte(`{"a":2,"b":{"c":[1,2]},"e":false}`), &right))
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":{"c":[1,2,3]},"d":"x"}`), &work))

	for _, c := range Diff(left, right) {
		require.NoError(t, Apply(&work, c))
	}
	if diff := cmp.Diff(right, work); diff != "" {
		t.Errorf("document mismatch after apply (-want +got):\n%s", diff)
	}
}
