package structdiff

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"time"
)

// canonical type tags returned by TypeOf
const (
	typeArray   = "array"
	typeObject  = "object"
	typeDate    = "date"
	typeRegexp  = "regexp"
	typeNumber  = "number"
	typeNaN     = "nan"
	typeString  = "string"
	typeBool    = "boolean"
	typeNull    = "null"
	typeUnknown = "unknown"
)

var timeType = reflect.TypeOf(time.Time{})

// TypeOf classifies a value into one of the canonical type tags "array",
// "object", "date", "regexp", "number", "nan", "string", "boolean", "null"
// or "unknown". The tag decides the comparison strategy: two values with
// different tags never compare structurally, they produce a single Edited
// record. Pointers are dereferenced, nil pointers classify as "null",
// time.Time as "date", *regexp.Regexp as "regexp", NaN floats as "nan",
// and maps, structs and slices of any element type as "object" / "array".
func TypeOf(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return typeNull
	case time.Time:
		return typeDate
	case *regexp.Regexp:
		if x == nil {
			return typeNull
		}
		return typeRegexp
	case string:
		return typeString
	case bool:
		return typeBool
	case float64:
		if math.IsNaN(x) {
			return typeNaN
		}
		return typeNumber
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return typeNumber
	case []interface{}:
		return typeArray
	case map[string]interface{}:
		return typeObject
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return typeNull
		}
		rv = rv.Elem()
	}
	if rv.Type() == timeType {
		return typeDate
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return typeArray
	case reflect.Map, reflect.Struct:
		return typeObject
	case reflect.String:
		return typeString
	case reflect.Bool:
		return typeBool
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(rv.Float()) {
			return typeNaN
		}
		return typeNumber
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeNumber
	}
	return typeUnknown
}

// asSlice normalizes an array-kinded value to []interface{}. The fast path
// avoids reflection for the decoded-JSON universe.
func asSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	rv := indirect(v)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// asMap normalizes an object-kinded value (any map or struct) to
// map[string]interface{}. Struct fields contribute their exported names,
// non-string map keys their printed form.
func asMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	rv := indirect(v)
	out := map[string]interface{}{}
	switch rv.Kind() {
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			out[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
		}
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				out[f.Name] = rv.Field(i).Interface()
			}
		}
	}
	return out
}

func indirect(v interface{}) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv
}

// refID returns a comparable identity for reference-typed values. values
// without reference identity (scalars, struct copies) report ok == false
// and never participate in cycle detection.
func refID(v interface{}) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func:
		// nil references share address zero, they carry no identity
		if p := rv.Pointer(); p != 0 {
			return p, true
		}
	}
	return 0, false
}

func sameRef(a, b interface{}) bool {
	ai, aok := refID(a)
	bi, bok := refID(b)
	return aok && bok && ai == bi
}

// toFloat widens any numeric value to float64 so cross-width numbers
// compare by magnitude rather than dynamic type
func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// gotta sort keys for deterministic emission order, go maps have none
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
