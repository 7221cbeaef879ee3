package preprocessor

import (
	"fmt"
	"math"
	"reflect"
)

// Truther lets a value decide its own selector truth.
type Truther interface {
	Truthy() bool
}

// Truthy reports whether v selects a branch. nil, false, zero numbers, NaN,
// the empty string and nil references are false; anything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case Truther:
		if isNil(reflect.ValueOf(v)) {
			return false
		}
		return x.Truthy()
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() != 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Stringify converts an interpolated value to text. nil becomes "";
// a typed nil pointer prints as <nil>.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	// fmt recovers String() panics on nil receivers and prints <nil>.
	return fmt.Sprint(v)
}
