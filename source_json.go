package dacite

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// FromJSON decodes a JSON object with goccy/go-json and converts it into T.
// Numbers decode as json.Number so integer fields bind without precision
// loss; the Value Builder's leaf stage resolves them against the declared
// numeric kinds.
func FromJSON[T any](data []byte, config ...Config) (T, error) {
	return FromJSONReader[T](bytes.NewReader(data), config...)
}

// FromJSONReader is FromJSON over an io.Reader.
func FromJSONReader[T any](r io.Reader, config ...Config) (T, error) {
	var raw map[string]any
	dec := j.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		var zero T
		return zero, err
	}
	return FromMap[T](raw, config...)
}
