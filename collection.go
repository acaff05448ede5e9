package dacite

import "reflect"

// buildCollection rebuilds a generic collection from raw iterable or mapping
// data, recursing into buildValue per element. When the raw value's runtime
// shape does not match the target kind the input is returned unchanged; that
// is a deliberate permissive fallback, not an error.
func buildCollection(desc *TypeDesc, data any, cfg *Config) (any, error) {
	if data == nil {
		return data, nil
	}
	dv := reflect.ValueOf(data)
	switch desc.Kind {
	case KindMap:
		if dv.Kind() != reflect.Map {
			return data, nil
		}
		return rebuildMap(desc, dv, cfg)
	case KindSet:
		if dv.Kind() != reflect.Slice && dv.Kind() != reflect.Array {
			return data, nil
		}
		return rebuildSet(desc, dv, cfg)
	case KindArray:
		if dv.Kind() != reflect.Slice && dv.Kind() != reflect.Array {
			return data, nil
		}
		return rebuildArray(desc, dv, cfg)
	case KindSlice:
		if dv.Kind() != reflect.Slice && dv.Kind() != reflect.Array {
			return data, nil
		}
		return rebuildSlice(desc, dv, cfg)
	}
	return data, nil
}

// rebuildMap preserves the raw key set and rebuilds every value against the
// declared value type. Keys are not coerced beyond what assignment to the
// declared key type allows.
func rebuildMap(desc *TypeDesc, dv reflect.Value, cfg *Config) (any, error) {
	out := reflect.MakeMapWithSize(desc.Type, dv.Len())
	keyType := desc.Type.Key()
	iter := dv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		kr := reflect.New(keyType).Elem()
		if err := assignValue(kr, k.Interface()); err != nil {
			// Key shape does not fit the target mapping; fall back.
			return dv.Interface(), nil
		}
		ev, err := buildValue(desc.Elem, iter.Value().Interface(), cfg)
		if err != nil {
			return nil, err
		}
		er := reflect.New(desc.Type.Elem()).Elem()
		if err := assignValue(er, ev); err != nil {
			return nil, err
		}
		out.SetMapIndex(kr, er)
	}
	return out.Interface(), nil
}

// rebuildSet builds each raw element against the declared element type and
// inserts it as a key of the map[T]struct{} target.
func rebuildSet(desc *TypeDesc, dv reflect.Value, cfg *Config) (any, error) {
	out := reflect.MakeMapWithSize(desc.Type, dv.Len())
	for i := 0; i < dv.Len(); i++ {
		ev, err := buildValue(desc.Elem, dv.Index(i).Interface(), cfg)
		if err != nil {
			return nil, err
		}
		kr := reflect.New(desc.Type.Key()).Elem()
		if err := assignValue(kr, ev); err != nil {
			return nil, err
		}
		out.SetMapIndex(kr, reflect.Zero(emptyStructType))
	}
	return out.Interface(), nil
}

// rebuildArray pairs raw elements against array positions. Length mismatch
// never fails: extra raw elements are dropped and missing positions keep
// their zero value.
func rebuildArray(desc *TypeDesc, dv reflect.Value, cfg *Config) (any, error) {
	out := reflect.New(desc.Type).Elem()
	n := dv.Len()
	if n > desc.Type.Len() {
		n = desc.Type.Len()
	}
	for i := 0; i < n; i++ {
		ev, err := buildValue(desc.Elem, dv.Index(i).Interface(), cfg)
		if err != nil {
			return nil, err
		}
		if err := assignValue(out.Index(i), ev); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}

// rebuildSlice rebuilds every element against the declared element type,
// producing the declared slice type regardless of the raw container type.
func rebuildSlice(desc *TypeDesc, dv reflect.Value, cfg *Config) (any, error) {
	out := reflect.MakeSlice(desc.Type, dv.Len(), dv.Len())
	for i := 0; i < dv.Len(); i++ {
		ev, err := buildValue(desc.Elem, dv.Index(i).Interface(), cfg)
		if err != nil {
			return nil, err
		}
		if err := assignValue(out.Index(i), ev); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}
