package structdiff

import (
	"github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

// PrefilterExpr compiles a boolean expression into a prefilter function,
// for callers that configure filters from strings (flags, config files).
// The expression is evaluated once per keyed child with two variables in
// scope: path, the parent path as a list of strings, and key, the child
// key under consideration. Children for which it returns true are skipped.
//
//	pf, err := structdiff.PrefilterExpr(`key == "metadata" || "status" in path`)
//	changes := structdiff.Diff(a, b, structdiff.OptionPrefilter(pf))
//
// A runtime evaluation error skips nothing.
func PrefilterExpr(src string) (func(path Path, key string) bool, error) {
	program, err := expr.Compile(src, expr.Env(prefilterEnv{
		"path": []string(nil),
		"key":  "",
	}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrap(err, "compiling prefilter expression")
	}

	return func(path Path, key string) bool {
		out, err := expr.Run(program, map[string]interface{}(prefilterEnv{
			"path": []string(path),
			"key":  key,
		}))
		if err != nil {
			return false
		}
		skip, _ := out.(bool)
		return skip
	}, nil
}

type prefilterEnv map[string]interface{}
