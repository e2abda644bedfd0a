package argumentum

import (
	"encoding"
	"fmt"
	"strconv"
	"time"
)

// Conversion happens in three tiers, resolved when a binding is created:
//  1. an explicit converter supplied with BindWith / BindSliceWith,
//  2. built-in convertibility (encoding.TextUnmarshaler, native scalars),
//  3. no conversion: each attempted assignment emits a warning and leaves
//     the variable untouched.

// Bind creates a value bound to a scalar variable. The text of each parsed
// argument replaces the previous content of the variable.
func Bind[T any](target *T) *Value {
	return newScalarValue(target, converterFor[T]())
}

// BindWith creates a scalar binding with an explicit text converter.
func BindWith[T any](target *T, convert func(string) (T, error)) *Value {
	return newScalarValue(target, convert)
}

// BindSlice creates a value bound to a slice; every parsed argument appends
// one element.
func BindSlice[T any](target *[]T) *Value {
	return newSliceValue(target, converterFor[T]())
}

// BindSliceWith creates a slice binding with an explicit text converter.
func BindSliceWith[T any](target *[]T, convert func(string) (T, error)) *Value {
	return newSliceValue(target, convert)
}

// BindOptional creates a value bound to an Optional; an assignment sets the
// wrapped value.
func BindOptional[T any](target *Optional[T]) *Value {
	convert := converterFor[T]()
	typeName := fmt.Sprintf("Optional[%T]", *new(T))
	v := &Value{
		id: TargetID{typeName: typeName, target: target},
		setAny: func(def any) bool {
			t, ok := def.(T)
			if ok {
				target.Set(t)
			}
			return ok
		},
		checkAny: func(def any) bool { _, ok := def.(T); return ok },
		clear:    func() { target.Clear() },
	}
	v.assign = assignFunc(typeName, convert, func(t T) { target.Set(t) })
	return v
}

func newScalarValue[T any](target *T, convert func(string) (T, error)) *Value {
	typeName := fmt.Sprintf("%T", *new(T))
	v := &Value{
		id: TargetID{typeName: typeName, target: target},
		setAny: func(def any) bool {
			t, ok := def.(T)
			if ok {
				*target = t
			}
			return ok
		},
		checkAny: func(def any) bool { _, ok := def.(T); return ok },
		clear: func() {
			var zero T
			*target = zero
		},
	}
	v.assign = assignFunc(typeName, convert, func(t T) { *target = t })
	return v
}

func newSliceValue[T any](target *[]T, convert func(string) (T, error)) *Value {
	typeName := fmt.Sprintf("%T", *new([]T))
	v := &Value{
		id:       TargetID{typeName: typeName, target: target},
		isVector: true,
		setAny: func(def any) bool {
			t, ok := def.([]T)
			if ok {
				*target = append((*target)[:0], t...)
			}
			return ok
		},
		checkAny: func(def any) bool { _, ok := def.([]T); return ok },
		clear:    func() { *target = nil },
	}
	v.assign = assignFunc(typeName, convert, func(t T) { *target = append(*target, t) })
	return v
}

// newVoidValue creates a value with no target, used by help options.
func newVoidValue() *Value {
	return &Value{
		id:       TargetID{typeName: "void"},
		assign:   func(string, *Environment) error { return nil },
		setAny:   func(any) bool { return false },
		checkAny: func(any) bool { return false },
		clear:    func() {},
	}
}

// assignFunc builds the assignment closure for a binding. A nil converter
// selects the warn-and-skip tier.
func assignFunc[T any](typeName string, convert func(string) (T, error), store func(T)) func(string, *Environment) error {
	if convert == nil {
		return func(text string, env *Environment) error {
			env.io.Warnings().Warnf("assignment to %s is not implemented ('%s')", typeName, text)
			return nil
		}
	}
	return func(text string, _ *Environment) error {
		parsed, err := convert(text)
		if err != nil {
			return err
		}
		store(parsed)
		return nil
	}
}

// converterFor resolves the built-in conversion for T, or nil when T has
// none. Integer conversions accept the 0x/0o/0b prefixes.
func converterFor[T any]() func(string) (T, error) {
	var zero T
	var fn any

	switch any(zero).(type) {
	case string:
		fn = func(s string) (string, error) { return s, nil }
	case bool:
		fn = strconv.ParseBool
	case int:
		fn = func(s string) (int, error) {
			n, err := strconv.ParseInt(s, 0, strconv.IntSize)
			return int(n), err
		}
	case int8:
		fn = func(s string) (int8, error) {
			n, err := strconv.ParseInt(s, 0, 8)
			return int8(n), err
		}
	case int16:
		fn = func(s string) (int16, error) {
			n, err := strconv.ParseInt(s, 0, 16)
			return int16(n), err
		}
	case int32:
		fn = func(s string) (int32, error) {
			n, err := strconv.ParseInt(s, 0, 32)
			return int32(n), err
		}
	case int64:
		fn = func(s string) (int64, error) { return strconv.ParseInt(s, 0, 64) }
	case uint:
		fn = func(s string) (uint, error) {
			n, err := strconv.ParseUint(s, 0, strconv.IntSize)
			return uint(n), err
		}
	case uint8:
		fn = func(s string) (uint8, error) {
			n, err := strconv.ParseUint(s, 0, 8)
			return uint8(n), err
		}
	case uint16:
		fn = func(s string) (uint16, error) {
			n, err := strconv.ParseUint(s, 0, 16)
			return uint16(n), err
		}
	case uint32:
		fn = func(s string) (uint32, error) {
			n, err := strconv.ParseUint(s, 0, 32)
			return uint32(n), err
		}
	case uint64:
		fn = func(s string) (uint64, error) { return strconv.ParseUint(s, 0, 64) }
	case float32:
		fn = func(s string) (float32, error) {
			f, err := strconv.ParseFloat(s, 32)
			return float32(f), err
		}
	case float64:
		fn = func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	case time.Duration:
		fn = time.ParseDuration
	default:
		if _, ok := any(&zero).(encoding.TextUnmarshaler); ok {
			return func(text string) (T, error) {
				var out T
				err := any(&out).(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
				if err != nil {
					var empty T
					return empty, err
				}
				return out, nil
			}
		}
		return nil
	}

	return fn.(func(string) (T, error))
}
