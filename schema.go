package dacite

import "github.com/invopop/jsonschema"

// JSONSchemaFor projects the declared shape of the struct type T into a JSON
// Schema document. Definitions are inlined and the struct sits at the root,
// so the result documents exactly what FromMap accepts for T (key remapping
// and union registration are runtime policy and are not reflected here).
func JSONSchemaFor[T any]() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(new(T))
}
