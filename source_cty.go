package dacite

import (
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// FromCty converts a cty object value (HCL/Terraform-style data) into T by
// round-tripping through its JSON form, which preserves cty's own
// object/list/number semantics.
func FromCty[T any](val cty.Value, config ...Config) (T, error) {
	buf, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		var zero T
		return zero, err
	}
	return FromJSON[T](buf, config...)
}
