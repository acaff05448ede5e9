package dacite

import "reflect"

// CheckPolicy controls verification of built field values.
type CheckPolicy int

const (
	CheckTypes     CheckPolicy = iota // Default: verify runtime types of built values.
	SkipTypeChecks                    // Best-effort mode: accept whatever was built.
)

// PathSpec locates a field's value inside nested input maps. It holds either
// a single dotted path, an ordered list of candidate paths, or the skip
// sentinel. The zero value behaves like SkipField.
type PathSpec struct {
	paths []string
	skip  bool
}

// Path builds a PathSpec from one or more dotted candidate paths. Candidates
// are tried in order and the first structurally present one wins, so when one
// path is a prefix of another the more specific path must be listed first.
func Path(paths ...string) PathSpec { return PathSpec{paths: paths} }

// SkipField is the sentinel PathSpec meaning "do not remap this field":
// the field falls back to its own default-resolution rule, ignoring the
// input map entirely.
var SkipField = PathSpec{skip: true}

// Config is the immutable policy record read by every component of a
// conversion. It is constructed once per top-level call and never written
// afterwards; sharing one Config across concurrently running conversions is
// safe as long as any TypeHooks functions are themselves free of shared
// mutable state.
type Config struct {
	// TypeHooks maps an exact target type to a value transform applied
	// before structural dispatch. A hook error aborts the conversion and
	// propagates unwrapped.
	TypeHooks map[reflect.Type]func(any) (any, error)

	// Cast lists types whose presence in the ancestor chain of a declared
	// field type forces construction of the declared type from the built
	// value. Scanned in order; the first match wins and stops the scan.
	Cast []reflect.Type

	// ForwardReferences resolves type names used in `dacite:"union=..."`
	// struct tags. A name missing from this map raises ForwardReferenceError.
	ForwardReferences map[string]reflect.Type

	// TypeChecking defaults to CheckTypes (the zero value).
	TypeChecking CheckPolicy

	// Strict rejects input keys that match no declared field.
	Strict bool

	// StrictUnionsMatch requires exactly one union candidate to accept the
	// value; ambiguity raises StrictUnionMatchError.
	StrictUnionsMatch bool

	// AllowSuperclasses accepts a value whose runtime type is an ancestor of
	// the declared type: the predeclared underlying type of a named type, or
	// an interface the declared type implements.
	AllowSuperclasses bool

	// FollowTypeHints parses bare string values into numeric leaf targets.
	// A parse failure propagates as the strconv error, unwrapped.
	FollowTypeHints bool

	// Paths remaps source keys per composite type: field name (Go name or
	// external key) -> PathSpec.
	Paths map[reflect.Type]map[string]PathSpec

	// Unions registers the ordered member types of interface-typed fields.
	// Per-field `dacite:"union=..."` tags take precedence.
	Unions map[reflect.Type][]reflect.Type

	// DefaultFactories supplies the default-factory rule, keyed by field
	// type. Factories run once per field resolution, so mutable defaults
	// (slices, maps) are fresh per conversion.
	DefaultFactories map[reflect.Type]func() any

	// Instantiator overrides object construction. Nil selects the
	// reflection-based default.
	Instantiator Instantiator
}

func (c *Config) checkEnabled() bool { return c.TypeChecking == CheckTypes }

func (c *Config) instantiator() Instantiator {
	if c.Instantiator != nil {
		return c.Instantiator
	}
	return structInstantiator{}
}

// unionMembersFor returns the registered members for an interface type, or
// nil when the type is not a declared union.
func (c *Config) unionMembersFor(t reflect.Type) []reflect.Type {
	if c.Unions == nil {
		return nil
	}
	return c.Unions[t]
}

// pathSpecFor looks up the remapping spec for a field, matching the Go field
// name first and the external key second.
func (c *Config) pathSpecFor(t reflect.Type, f field) (PathSpec, bool) {
	m, ok := c.Paths[t]
	if !ok {
		return PathSpec{}, false
	}
	if spec, ok := m[f.name]; ok {
		return spec, true
	}
	spec, ok := m[f.key]
	return spec, ok
}

func configFrom(cs []Config) Config {
	if len(cs) == 0 {
		return Config{}
	}
	return cs[len(cs)-1]
}
