package dacite

import (
	"fmt"
	"reflect"
)

// FromMap creates an instance of the struct type T from untyped nested map
// data. The optional Config customizes hooks, casting, strictness, union
// registration, and key remapping; the last Config wins when several are
// given.
func FromMap[T any](data map[string]any, config ...Config) (T, error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if t.Kind() != reflect.Struct {
		return zero, fmt.Errorf("dacite: target type %s is not a struct", t)
	}
	cfg := configFrom(config)
	obj, err := assemble(t, data, &cfg)
	if err != nil {
		return zero, err
	}
	out, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("dacite: assembled %T, want %s", obj, t)
	}
	return out, nil
}
