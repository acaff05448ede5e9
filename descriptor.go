package dacite

import "reflect"

// Kind tags a TypeDesc with its structural variant.
type Kind int

const (
	KindLeaf     Kind = iota // Concrete non-composite type; passes through the builder.
	KindOptional             // Pointer type; nil short-circuits after hooks.
	KindUnion                // Interface type with registered member types.
	KindSlice                // Homogeneous sequence.
	KindArray                // Fixed-length tuple; length mismatches are tolerated.
	KindMap                  // Mapping; values rebuilt, keys left uncoerced.
	KindSet                  // map[T]struct{}; rebuilt from sequence elements.
	KindStruct               // Composite type assembled field by field.
)

// TypeDesc describes a conversion target. Composite descriptors stay shallow:
// their fields are resolved lazily during assembly, so self-referential types
// do not recurse here.
type TypeDesc struct {
	Kind    Kind
	Type    reflect.Type // concrete Go type this descriptor targets
	Elem    *TypeDesc    // Optional inner, slice/array/set element, map value
	Key     *TypeDesc    // map key
	Members []*TypeDesc  // union members, in declaration order
}

var emptyStructType = reflect.TypeOf(struct{}{})

// describe classifies a target type. members carries the union member types
// declared for the originating field (tag or Config registration) and applies
// to the first interface layer encountered.
func describe(t reflect.Type, members []reflect.Type, cfg *Config) *TypeDesc {
	switch t.Kind() {
	case reflect.Pointer:
		return &TypeDesc{Kind: KindOptional, Type: t, Elem: describe(t.Elem(), members, cfg)}
	case reflect.Interface:
		if len(members) == 0 {
			members = cfg.unionMembersFor(t)
		}
		if len(members) == 0 {
			// Bare interface: anything goes, treat as a leaf.
			return &TypeDesc{Kind: KindLeaf, Type: t}
		}
		ms := make([]*TypeDesc, len(members))
		for i, m := range members {
			ms[i] = describe(m, nil, cfg)
		}
		return &TypeDesc{Kind: KindUnion, Type: t, Members: ms}
	case reflect.Slice:
		return &TypeDesc{Kind: KindSlice, Type: t, Elem: describe(t.Elem(), nil, cfg)}
	case reflect.Array:
		return &TypeDesc{Kind: KindArray, Type: t, Elem: describe(t.Elem(), nil, cfg)}
	case reflect.Map:
		if t.Elem() == emptyStructType {
			return &TypeDesc{Kind: KindSet, Type: t, Elem: describe(t.Key(), nil, cfg)}
		}
		return &TypeDesc{
			Kind: KindMap,
			Type: t,
			Key:  describe(t.Key(), nil, cfg),
			Elem: describe(t.Elem(), nil, cfg),
		}
	case reflect.Struct:
		if hasExportedFields(t) {
			return &TypeDesc{Kind: KindStruct, Type: t}
		}
		// Opaque structs (time.Time and friends) cannot be assembled from
		// keys; hand them to hooks/cast as leaves.
		return &TypeDesc{Kind: KindLeaf, Type: t}
	default:
		return &TypeDesc{Kind: KindLeaf, Type: t}
	}
}

func hasExportedFields(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

// isInstance reports whether a built value structurally conforms to the
// descriptor: any member for unions, nil or the pointer (or bare inner) type
// for optionals, assignability everywhere else.
func isInstance(v any, desc *TypeDesc) bool {
	if v == nil {
		if desc.Kind == KindOptional {
			return true
		}
		return desc.Kind == KindLeaf && desc.Type.Kind() == reflect.Interface
	}
	vt := reflect.TypeOf(v)
	switch desc.Kind {
	case KindOptional:
		if vt == desc.Type {
			return true
		}
		return isInstance(v, desc.Elem)
	case KindUnion:
		for _, m := range desc.Members {
			if isInstance(v, m) {
				return true
			}
		}
		return false
	default:
		return vt.AssignableTo(desc.Type)
	}
}

// isAncestor reports whether declared has vt in its ancestor chain: vt is an
// interface the declared type implements, or the predeclared underlying type
// of a named declared type.
func isAncestor(vt, declared reflect.Type) bool {
	if vt == nil || declared == nil || vt == declared {
		return false
	}
	if vt.Kind() == reflect.Interface {
		return declared.Implements(vt)
	}
	return vt.PkgPath() == "" && declared.Kind() == vt.Kind() && declared.ConvertibleTo(vt)
}

// isSubtype reports whether target has castTarget in its ancestor chain (or
// equals it); used by the casting pass.
func isSubtype(target, castTarget reflect.Type) bool {
	if target == castTarget {
		return true
	}
	if castTarget.Kind() == reflect.Interface {
		return target.Implements(castTarget)
	}
	return target.Kind() == castTarget.Kind() && target.ConvertibleTo(castTarget)
}

func memberTypes(desc *TypeDesc) []reflect.Type {
	ts := make([]reflect.Type, len(desc.Members))
	for i, m := range desc.Members {
		ts[i] = m.Type
	}
	return ts
}
