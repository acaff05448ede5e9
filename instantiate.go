package dacite

import (
	"fmt"
	"reflect"
)

// Instantiator constructs the final object once field values are known.
// Construct receives the construction-time field map keyed by Go field name;
// AssignPostConstruction receives fields staged for assignment after
// construction. An implementation that cannot assign post-construction must
// return an error; values are never silently dropped.
type Instantiator interface {
	Construct(t reflect.Type, fields map[string]any) (any, error)
	AssignPostConstruction(instance any, field string, value any) error
}

// structInstantiator is the reflection-based default. Construct returns a
// pointer to a freshly allocated struct so post-construction assignment stays
// possible; assemble dereferences at the end.
type structInstantiator struct{}

func (structInstantiator) Construct(t reflect.Type, fields map[string]any) (any, error) {
	p := reflect.New(t)
	for name, v := range fields {
		fv := p.Elem().FieldByName(name)
		if !fv.IsValid() {
			return nil, fmt.Errorf("dacite: type %s has no field %q", t, name)
		}
		if err := assignValue(fv, v); err != nil {
			prependFieldPath(err, name)
			return nil, err
		}
	}
	return p.Interface(), nil
}

func (structInstantiator) AssignPostConstruction(instance any, field string, value any) error {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("dacite: post-construction assignment requires a non-nil pointer instance, got %T", instance)
	}
	fv := rv.Elem().FieldByName(field)
	if !fv.IsValid() || !fv.CanSet() {
		return fmt.Errorf("dacite: field %q is not assignable after construction", field)
	}
	if err := assignValue(fv, value); err != nil {
		prependFieldPath(err, field)
		return err
	}
	return nil
}

// assignValue stores val into rv, allocating pointers for optionals and
// converting between compatible kinds (numeric widths, named string/numeric
// types). Incompatible values produce a WrongTypeError with an empty path;
// callers prepend the field location.
func assignValue(rv reflect.Value, val any) error {
	if val == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	vv := reflect.ValueOf(val)
	t := rv.Type()
	switch {
	case vv.Type().AssignableTo(t):
		rv.Set(vv)
	case t.Kind() == reflect.Pointer && vv.Type().AssignableTo(t.Elem()):
		p := reflect.New(t.Elem())
		p.Elem().Set(vv)
		rv.Set(p)
	case convertCompatible(vv.Type(), t):
		rv.Set(vv.Convert(t))
	case t.Kind() == reflect.Pointer && convertCompatible(vv.Type(), t.Elem()):
		p := reflect.New(t.Elem())
		p.Elem().Set(vv.Convert(t.Elem()))
		rv.Set(p)
	default:
		return &WrongTypeError{Declared: t, Value: val}
	}
	return nil
}

// convertCompatible limits reflect conversions to the safe families: numeric
// to numeric and string-kind to string-kind. Anything else (notably
// int-to-string rune conversion) is rejected.
func convertCompatible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	switch {
	case isNumericKind(from.Kind()) && isNumericKind(to.Kind()):
		return true
	case from.Kind() == reflect.String && to.Kind() == reflect.String:
		return true
	}
	return false
}
