package dacite

import (
	"errors"
	"fmt"
	"strings"
)

// Has reports whether the dotted path resolves inside data: every non-final
// segment must reach a nested map containing the next segment, and the final
// segment must be present. Non-map intermediates and missing segments yield
// false; Has never fails.
func Has(path string, data map[string]any) bool {
	segs := strings.Split(path, ".")
	cur := data
	for len(segs) > 1 {
		v, ok := cur[segs[0]]
		if !ok {
			return false
		}
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		cur = m
		segs = segs[1:]
	}
	_, ok := cur[segs[0]]
	return ok
}

// Get walks the dotted path inside data. A missing segment (intermediate or
// final) yields fallback, unless fallback is itself an error value, in which
// case that error is returned. An intermediate segment resolving to a
// non-map is a structural fault and fails regardless of fallback.
func Get(path string, data map[string]any, fallback any) (any, error) {
	segs := strings.Split(path, ".")
	cur := data
	for len(segs) > 1 {
		v, ok := cur[segs[0]]
		if !ok {
			return fallbackOr(fallback)
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("dacite: path %q: segment %q is not a map", path, segs[0])
		}
		cur = m
		segs = segs[1:]
	}
	if v, ok := cur[segs[0]]; ok {
		return v, nil
	}
	return fallbackOr(fallback)
}

func fallbackOr(fallback any) (any, error) {
	if err, ok := fallback.(error); ok {
		return nil, err
	}
	return fallback, nil
}

var errPathMissing = errors.New("dacite: path not found")

// deepValue resolves an ordered-candidate PathSpec. A single path delegates
// to Get, keeping its fallback/raise behavior. Multiple candidates are tried
// in order with any failure swallowed; when none resolves, the caller's
// fallback applies (raised when it is an error).
func deepValue(data map[string]any, spec PathSpec, fallback any) (any, error) {
	if len(spec.paths) == 1 {
		return Get(spec.paths[0], data, fallback)
	}
	for _, p := range spec.paths {
		if v, err := Get(p, data, errPathMissing); err == nil {
			return v, nil
		}
	}
	return fallbackOr(fallback)
}
