package dacite

import "gopkg.in/yaml.v3"

// FromYAML decodes a YAML mapping and converts it into T. yaml.v3 already
// yields map[string]any with native int/float/bool scalars, so the result
// feeds FromMap directly.
func FromYAML[T any](data []byte, config ...Config) (T, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		var zero T
		return zero, err
	}
	return FromMap[T](raw, config...)
}
