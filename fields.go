package dacite

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GeoFlow-ai/dacite/internal/typecache"
)

// field is the parsed, config-independent metadata of one struct field.
// Union member names stay unresolved here; they bind to concrete types per
// conversion through Config.ForwardReferences.
type field struct {
	name        string // Go struct field name
	key         string // external key used in input maps
	index       []int
	typ         reflect.Type
	post        bool // staged for post-construction assignment
	hasDefault  bool
	defaultText string
	unionRefs   []string
}

// fieldsOf returns the declared fields of a composite type, cached per type.
func fieldsOf(t reflect.Type) []field {
	return typecache.Do(t, func() any { return parseFields(t) }).([]field)
}

func parseFields(t reflect.Type) []field {
	out := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := resolveFieldKey(sf)
		if key == "-" {
			continue
		}
		f := field{name: sf.Name, key: key, index: sf.Index, typ: sf.Type}
		for _, opt := range strings.Split(sf.Tag.Get("dacite"), ",") {
			opt = strings.TrimSpace(opt)
			switch {
			case opt == "post":
				f.post = true
			case strings.HasPrefix(opt, "union="):
				f.unionRefs = strings.Split(strings.TrimPrefix(opt, "union="), "|")
			}
		}
		if dv, ok := sf.Tag.Lookup("default"); ok {
			f.hasDefault = true
			f.defaultText = dv
		}
		out = append(out, f)
	}
	return out
}

// resolveFieldKey resolves a struct field's external key.
// Priority: dacite:"name=..." > json tag name > field name; "-" disables the
// field.
func resolveFieldKey(sf reflect.StructField) string {
	if dt := sf.Tag.Get("dacite"); dt != "" {
		for _, p := range strings.Split(dt, ",") {
			p = strings.TrimSpace(p)
			if p == "-" {
				return "-"
			}
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// unionMembers resolves tag-declared member names against the configured
// forward references, preserving declaration order.
func (f field) unionMembers(cfg *Config) ([]reflect.Type, error) {
	if len(f.unionRefs) == 0 {
		return nil, nil
	}
	out := make([]reflect.Type, 0, len(f.unionRefs))
	for _, name := range f.unionRefs {
		rt, ok := cfg.ForwardReferences[name]
		if !ok {
			return nil, &ForwardReferenceError{Message: fmt.Sprintf("name %q is not defined", name)}
		}
		out = append(out, rt)
	}
	return out, nil
}

// errNoDefault is the internal sentinel for "no default rule applies".
var errNoDefault = errors.New("dacite: no default value")

// resolveDefault applies the default-value rule chain: explicit tag literal,
// registered factory, nil for optionals, errNoDefault otherwise.
func resolveDefault(f field, desc *TypeDesc, cfg *Config) (any, error) {
	if f.hasDefault {
		p := reflect.New(f.typ)
		if err := yaml.Unmarshal([]byte(f.defaultText), p.Interface()); err != nil {
			return nil, fmt.Errorf("dacite: invalid default for field %q: %w", f.key, err)
		}
		return p.Elem().Interface(), nil
	}
	if cfg.DefaultFactories != nil {
		if fn, ok := cfg.DefaultFactories[f.typ]; ok {
			return fn(), nil
		}
	}
	if desc.Kind == KindOptional {
		return nil, nil
	}
	return nil, errNoDefault
}
