package structdiff

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestChangesJSON(t *testing.T) {
	changes := Changes{
		&New{At: Path{"b"}, Value: true},
		&Deleted{At: Path{"d"}, Value: float64(0)},
		&Edited{At: Path{"a", "b"}, Left: "x", Right: "y"},
		&ArrayChange{At: Path{"l"}, Index: 0, Item: &Deleted{Value: "first"}},
	}

	data, err := json.Marshal(changes)
	require.NoError(t, err)

	var decoded Changes
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(changes, decoded); diff != "" {
		t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestChangeJSONShape(t *testing.T) {
	data, err := json.Marshal(&Edited{At: Path{"a"}, Left: float64(1), Right: float64(2)})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"E","path":["a"],"leftValue":1,"rightValue":2}`, string(data))

	// index zero must survive serialization
	data, err = json.Marshal(&ArrayChange{At: Path{"l"}, Index: 0, Item: &New{Value: "x"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"A","path":["l"],"index":0,"item":{"kind":"N","value":"x"}}`, string(data))
}

func TestDecodeChange(t *testing.T) {
	c, err := DecodeChange([]byte(`{"kind":"D","path":["a"],"value":0}`))
	require.NoError(t, err)
	require.Equal(t, &Deleted{At: Path{"a"}, Value: float64(0)}, c)

	_, err = DecodeChange([]byte(`{"kind":"?","path":["a"]}`))
	require.Error(t, err)

	_, err = DecodeChange([]byte(`{"kind":"A","path":["l"]}`))
	require.Error(t, err, "array change without index or item must not decode")
}

func TestPathString(t *testing.T) {
	require.Equal(t, "/", Path(nil).String())
	require.Equal(t, "/a/0/b", Path{"a", "0", "b"}.String())
}
