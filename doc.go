package dacite

// Package dacite creates instances of statically declared struct types from
// untyped nested map data (as produced by JSON/YAML decoders).
//
// - Recursive value building with per-type hooks, casting, and coercion
// - Union (sum-type) disambiguation over registered member types
// - Generic-collection reconstruction (slices, arrays, sets, maps)
// - Dotted-path remapping of source keys, with ordered candidate paths
// - A single-rooted error model carrying dotted field-location paths
//
// Design policy:
// - Keep only public APIs in the root package; put helpers under internal/.
// - Conversions are synchronous and free of shared mutable state; a Config
//   value is read-only once a conversion starts and may be shared across
//   concurrent conversions.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user, err := dacite.FromMap[User](data)
//	user, err := dacite.FromJSON[User](body, dacite.Config{Strict: true})
//	cfg := dacite.Config{Paths: map[reflect.Type]map[string]dacite.PathSpec{
//		reflect.TypeOf(User{}): {"Name": dacite.Path("profile.name")},
//	}}
