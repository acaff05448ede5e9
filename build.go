package dacite

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// buildValue is the recursive core: given a target descriptor and raw data it
// produces a typed value. Order: exact-type hook, optional-nil short-circuit,
// structural dispatch, casting pass, follow-type-hints coercion.
func buildValue(desc *TypeDesc, data any, cfg *Config) (any, error) {
	if hook, ok := cfg.TypeHooks[desc.Type]; ok {
		v, err := hook(data)
		if err != nil {
			return nil, err
		}
		data = v
	}
	if desc.Kind == KindOptional {
		if data == nil {
			return nil, nil
		}
		inner, err := buildValue(desc.Elem, data, cfg)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, nil
		}
		return wrapPointer(desc.Type, inner)
	}

	var err error
	switch desc.Kind {
	case KindUnion:
		data, err = buildUnion(desc, data, cfg)
		if err != nil {
			return nil, err
		}
	case KindSlice, KindArray, KindMap, KindSet:
		data, err = buildCollection(desc, data, cfg)
		if err != nil {
			return nil, err
		}
	case KindStruct:
		if m, ok := data.(map[string]any); ok {
			data, err = assemble(desc.Type, m, cfg)
			if err != nil {
				return nil, err
			}
		}
	case KindLeaf:
		data = normalizeLeaf(data, desc.Type)
	}

	casted := false
	for _, ct := range cfg.Cast {
		if isSubtype(desc.Type, ct) {
			data, err = castValue(desc, data, cfg)
			if err != nil {
				return nil, err
			}
			casted = true
			break
		}
	}
	if !casted && cfg.FollowTypeHints {
		data, err = followHint(desc, data)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func wrapPointer(ptrType reflect.Type, inner any) (any, error) {
	// Already-typed input stays untouched: a value of the declared pointer
	// type passes the element stages unchanged and must not be re-wrapped.
	if reflect.TypeOf(inner).AssignableTo(ptrType) {
		return inner, nil
	}
	p := reflect.New(ptrType.Elem())
	if err := assignValue(p.Elem(), inner); err != nil {
		return nil, err
	}
	return p.Interface(), nil
}

// normalizeLeaf adapts transport representations of numbers to the target
// leaf type: json.Number parses to the declared numeric kind, and values of
// predeclared numeric kinds convert when the conversion round-trips exactly.
// Named types are never normalized implicitly; they go through Cast,
// AllowSuperclasses, or a hook.
func normalizeLeaf(data any, target reflect.Type) any {
	if target.PkgPath() != "" {
		return data
	}
	if n, ok := data.(json.Number); ok {
		switch {
		case isIntKind(target.Kind()) || isUintKind(target.Kind()):
			if i, err := n.Int64(); err == nil {
				return convertNumeric(reflect.ValueOf(i), target, data)
			}
		case isFloatKind(target.Kind()):
			if f, err := n.Float64(); err == nil {
				return convertNumeric(reflect.ValueOf(f), target, data)
			}
		}
		return data
	}
	if data == nil {
		return nil
	}
	dv := reflect.ValueOf(data)
	if isNumericKind(dv.Kind()) && isNumericKind(target.Kind()) && dv.Type() != target {
		return convertNumeric(dv, target, data)
	}
	return data
}

// convertNumeric converts losslessly or returns orig unchanged, letting the
// type-check stage report the mismatch.
func convertNumeric(dv reflect.Value, target reflect.Type, orig any) any {
	if !dv.Type().ConvertibleTo(target) {
		return orig
	}
	cv := dv.Convert(target)
	if cv.Convert(dv.Type()).Interface() != dv.Interface() {
		return orig
	}
	return cv.Interface()
}

// castValue forces construction of the declared type from the current value.
// Generic collections rebuild through their own constructor; everything else
// is a single-argument conversion.
func castValue(desc *TypeDesc, data any, cfg *Config) (any, error) {
	if data == nil {
		return nil, nil
	}
	dv := reflect.ValueOf(data)
	switch desc.Kind {
	case KindSlice, KindArray, KindMap, KindSet:
		if dv.Type().ConvertibleTo(desc.Type) {
			return dv.Convert(desc.Type).Interface(), nil
		}
		return buildCollection(desc, data, cfg)
	default:
		if desc.Type.Kind() == reflect.String && isNumericKind(dv.Kind()) {
			// Go's numeric-to-string conversion yields a rune string; a cast
			// asks for the textual form.
			return reflect.ValueOf(fmt.Sprint(data)).Convert(desc.Type).Interface(), nil
		}
		if dv.Type().ConvertibleTo(desc.Type) {
			return dv.Convert(desc.Type).Interface(), nil
		}
		return nil, fmt.Errorf("dacite: can not cast value of type %s to %s", dv.Type(), desc.Type)
	}
}

// followHint coerces a bare string to a numeric leaf target. Parse failures
// propagate as the strconv error.
func followHint(desc *TypeDesc, data any) (any, error) {
	if desc.Kind != KindLeaf || desc.Type.PkgPath() != "" {
		return data, nil
	}
	s, ok := data.(string)
	if !ok || desc.Type.Kind() == reflect.String {
		return data, nil
	}
	switch {
	case isIntKind(desc.Type.Kind()):
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(i).Convert(desc.Type).Interface(), nil
	case isUintKind(desc.Type.Kind()):
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(u).Convert(desc.Type).Interface(), nil
	case isFloatKind(desc.Type.Kind()):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(desc.Type).Interface(), nil
	}
	return data, nil
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumericKind(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k) || isFloatKind(k)
}
