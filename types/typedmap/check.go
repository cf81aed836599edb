package typedmap

import (
	"reflect"

	"github.com/ollama/typedmap/types/errtypes"
)

// isNil reports whether v is a nil interface or a nil pointer, map, slice,
// func or chan. Zero values of other kinds are not nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// checkArg validates a single key or value argument against its descriptor.
func checkArg(arg string, v any, want reflect.Type, key bool) error {
	if isNil(v) {
		return &errtypes.NullArgumentError{Arg: arg}
	}

	got := reflect.TypeOf(v)
	if !got.AssignableTo(want) {
		return &errtypes.TypeMismatchError{Arg: arg, Want: want, Got: got}
	}

	// Type.Comparable is true for structs with interface fields even when
	// those fields hold slices or maps, which would panic when hashed.
	if key && !reflect.ValueOf(v).Comparable() {
		return &errtypes.TypeMismatchError{Arg: arg, Want: want, Got: got, Reason: "type is not comparable"}
	}

	return nil
}

// checkDescriptor validates a construction-time descriptor against the static
// type it narrows.
func checkDescriptor(arg string, desc, static reflect.Type, key bool) error {
	if desc == nil {
		return &errtypes.InvalidArgumentError{Arg: arg, Reason: "descriptor is nil"}
	}

	if !desc.AssignableTo(static) {
		return &errtypes.InvalidArgumentError{Arg: arg, Reason: desc.String() + " is not assignable to " + static.String()}
	}

	if key && desc.Kind() != reflect.Interface && !desc.Comparable() {
		return &errtypes.InvalidArgumentError{Arg: arg, Reason: desc.String() + " is not comparable"}
	}

	return nil
}
