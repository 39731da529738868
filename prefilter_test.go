package structdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPrefilterExpr(t *testing.T) {
	pf, err := PrefilterExpr(`key == "meta" || "hidden" in path`)
	require.NoError(t, err)

	require.True(t, pf(Path{}, "meta"))
	require.True(t, pf(Path{"a", "hidden"}, "x"))
	require.False(t, pf(Path{"a"}, "name"))
}

func TestPrefilterExprDiff(t *testing.T) {
	pf, err := PrefilterExpr(`key == "b"`)
	require.NoError(t, err)

	left := map[string]interface{}{"a": float64(1), "b": float64(2)}
	right := map[string]interface{}{"a": float64(9), "b": float64(3), "c": true}

	got := Diff(left, right, OptionPrefilter(pf))
	expect := Changes{
		&Edited{At: Path{"a"}, Left: float64(1), Right: float64(9)},
		&New{At: Path{"c"}, Value: true},
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestPrefilterExprCompileError(t *testing.T) {
	_, err := PrefilterExpr(`key ==`)
	require.Error(t, err)
}
