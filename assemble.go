package dacite

import (
	"fmt"
	"reflect"
	"sort"
)

// assemble drives one composite type: it resolves each declared field's
// source (direct key, remapped path, or default), builds the typed value,
// applies the type-check policy, and hands the construction-time and
// post-construction field maps to the Instantiator. It returns the finished
// struct value.
func assemble(t reflect.Type, data map[string]any, cfg *Config) (any, error) {
	fields := fieldsOf(t)

	if cfg.Strict {
		if err := checkUnexpectedKeys(fields, data); err != nil {
			return nil, err
		}
	}

	initVals := make(map[string]any, len(fields))
	postVals := map[string]any{}
	for _, f := range fields {
		members, err := f.unionMembers(cfg)
		if err != nil {
			return nil, err
		}
		desc := describe(f.typ, members, cfg)

		var value any
		spec, hasSpec := cfg.pathSpecFor(t, f)
		raw, hasKey := data[f.key]
		switch {
		case hasSpec && !spec.skip && len(spec.paths) > 0:
			value, err = resolveRemapped(f, desc, spec, data, cfg)
			if err != nil {
				return nil, err
			}
		case hasSpec:
			// Skip sentinel: ignore the input and fall back to the field's
			// own default-resolution rule.
			value, err = resolveDefault(f, desc, cfg)
			if err == errNoDefault {
				if f.post {
					continue
				}
				return nil, &MissingValueError{fieldError{path: f.key}}
			}
			if err != nil {
				return nil, err
			}
		case hasKey:
			value, err = buildValue(desc, raw, cfg)
			if err != nil {
				prependFieldPath(err, f.key)
				return nil, err
			}
			if cfg.checkEnabled() {
				if err := verifyFieldValue(f, desc, value, cfg); err != nil {
					return nil, err
				}
			}
		default:
			value, err = resolveDefault(f, desc, cfg)
			if err == errNoDefault {
				if f.post {
					continue
				}
				return nil, &MissingValueError{fieldError{path: f.key}}
			}
			if err != nil {
				return nil, err
			}
		}

		if f.post {
			postVals[f.name] = value
		} else {
			initVals[f.name] = value
		}
	}

	inst := cfg.instantiator()
	obj, err := inst.Construct(t, initVals)
	if err != nil {
		return nil, err
	}
	for name, v := range postVals {
		if err := inst.AssignPostConstruction(obj, name, v); err != nil {
			return nil, err
		}
	}
	return finishInstance(t, obj)
}

// checkUnexpectedKeys rejects input keys unmatched by any declared field,
// covering the whole map once.
func checkUnexpectedKeys(fields []field, data map[string]any) error {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.key] = true
	}
	var extra []string
	for k := range data {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &UnexpectedDataError{Keys: extra}
	}
	return nil
}

// resolveRemapped handles a path-spec'd field: the default is computed
// eagerly to serve as the navigator's fallback (a missing default becomes an
// error fallback, raised when no candidate path resolves), then the value
// found is built as usual.
func resolveRemapped(f field, desc *TypeDesc, spec PathSpec, data map[string]any, cfg *Config) (any, error) {
	var fallback any
	def, derr := resolveDefault(f, desc, cfg)
	switch derr {
	case nil:
		fallback = def
	case errNoDefault:
		fallback = &MissingValueError{fieldError{path: f.key}}
	default:
		return nil, derr
	}
	raw, err := deepValue(data, spec, fallback)
	if err != nil {
		return nil, err
	}
	value, err := buildValue(desc, raw, cfg)
	if err != nil {
		prependFieldPath(err, f.key)
		return nil, err
	}
	return value, nil
}

// verifyFieldValue applies the post-build type-check policy for a field
// whose value came from a direct key.
func verifyFieldValue(f field, desc *TypeDesc, value any, cfg *Config) error {
	switch {
	case cfg.AllowSuperclasses && desc.Kind == KindUnion:
		vt := reflect.TypeOf(value)
		for _, m := range desc.Members {
			if isInstance(value, m) || isAncestor(vt, m.Type) {
				return nil
			}
		}
		return &WrongTypeError{fieldError{path: f.key}, f.typ, value}
	case desc.Kind == KindSlice:
		rv := reflect.ValueOf(value)
		if value == nil || rv.Kind() != reflect.Slice {
			return &WrongTypeError{fieldError{path: f.key}, f.typ, value}
		}
		if rv.Len() > 0 {
			first := rv.Index(0).Interface()
			if !isInstance(first, desc.Elem) && !isAncestor(reflect.TypeOf(first), desc.Elem.Type) {
				return &WrongTypeError{fieldError{path: f.key}, f.typ, value}
			}
		}
		return nil
	case cfg.AllowSuperclasses && isAncestor(reflect.TypeOf(value), desc.Type):
		return nil
	case !isInstance(value, desc):
		return &WrongTypeError{fieldError{path: f.key}, f.typ, value}
	}
	return nil
}

// finishInstance normalizes what the Instantiator produced into a plain
// struct value of type t.
func finishInstance(t reflect.Type, obj any) (any, error) {
	rv := reflect.ValueOf(obj)
	switch {
	case rv.Kind() == reflect.Pointer && rv.Type().Elem() == t:
		return rv.Elem().Interface(), nil
	case rv.Type() == t:
		return obj, nil
	}
	return nil, fmt.Errorf("dacite: instantiator returned %T, want %s or *%s", obj, t, t)
}
