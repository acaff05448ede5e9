package dacite

import "reflect"

// buildUnion picks the matching member of a union for a raw value. Candidates
// are tried in declaration order; a failed build silently eliminates the
// candidate. Non-strict mode returns the first accepted candidate; strict
// mode requires exactly one accepted candidate type.
func buildUnion(desc *TypeDesc, data any, cfg *Config) (any, error) {
	type match struct {
		t reflect.Type
		v any
	}
	var matches []match
	for _, m := range desc.Members {
		v, err := buildValue(m, data, cfg)
		if err != nil {
			continue
		}
		if !unionCandidateAccepts(v, m, cfg) {
			continue
		}
		if !cfg.StrictUnionsMatch {
			return v, nil
		}
		dup := false
		for _, ex := range matches {
			if ex.t == m.Type {
				dup = true
				break
			}
		}
		if !dup {
			matches = append(matches, match{t: m.Type, v: v})
		}
	}
	if cfg.StrictUnionsMatch {
		if len(matches) > 1 {
			ts := make([]reflect.Type, len(matches))
			for i, m := range matches {
				ts[i] = m.t
			}
			return nil, &StrictUnionMatchError{Candidates: ts}
		}
		if len(matches) == 1 {
			return matches[0].v, nil
		}
	}
	if !cfg.checkEnabled() {
		// Best-effort passthrough: hand back the raw value untyped.
		return data, nil
	}
	return nil, &UnionMatchError{Members: memberTypes(desc), Value: data}
}

// unionCandidateAccepts applies the true-match rule: the built value's
// runtime type must conform to the candidate, or to an ancestor of it when
// AllowSuperclasses is set.
func unionCandidateAccepts(v any, m *TypeDesc, cfg *Config) bool {
	if isInstance(v, m) {
		return true
	}
	if cfg.AllowSuperclasses && v != nil {
		return isAncestor(reflect.TypeOf(v), m.Type)
	}
	return false
}
