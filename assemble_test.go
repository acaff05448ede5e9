package dacite_test

import (
	"errors"
	"reflect"
	"testing"

	dacite "github.com/GeoFlow-ai/dacite"
)

func pathsFor(v any, m map[string]dacite.PathSpec) map[reflect.Type]map[string]dacite.PathSpec {
	return map[reflect.Type]map[string]dacite.PathSpec{reflect.TypeOf(v): m}
}

func TestFromMapSimple(t *testing.T) {
	type User struct {
		Name  string `json:"name"`
		Age   int    `json:"age"`
		Admin bool   `json:"admin"`
	}
	got, err := dacite.FromMap[User](map[string]any{"name": "jo", "age": 42, "admin": true})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	want := User{Name: "jo", Age: 42, Admin: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFromMapRoundTrip(t *testing.T) {
	type Flat struct {
		A string  `json:"a"`
		B int     `json:"b"`
		C float64 `json:"c"`
	}
	in := map[string]any{"a": "x", "b": 7, "c": 1.5}
	got, err := dacite.FromMap[Flat](in)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	out := map[string]any{"a": got.A, "b": got.B, "c": got.C}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %v vs %v", in, out)
	}
}

func TestFromMapNested(t *testing.T) {
	type Inner struct {
		Num int `json:"num"`
	}
	type Outer struct {
		Name  string `json:"name"`
		Inner Inner  `json:"inner"`
	}
	got, err := dacite.FromMap[Outer](map[string]any{
		"name":  "n",
		"inner": map[string]any{"num": 3},
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.Inner.Num != 3 {
		t.Fatalf("Inner.Num = %d", got.Inner.Num)
	}
}

func TestFromMapNestedErrorPath(t *testing.T) {
	type Inner struct {
		Num int `json:"num"`
	}
	type Outer struct {
		Inner Inner `json:"inner"`
	}
	_, err := dacite.FromMap[Outer](map[string]any{
		"inner": map[string]any{"num": "bad"},
	})
	var wte *dacite.WrongTypeError
	if !errors.As(err, &wte) {
		t.Fatalf("err = %v, want WrongTypeError", err)
	}
	if wte.FieldPath() != "inner.num" {
		t.Fatalf("FieldPath = %q, want inner.num", wte.FieldPath())
	}
}

func TestFromMapMissingValue(t *testing.T) {
	type X struct {
		S string `json:"s"`
	}
	_, err := dacite.FromMap[X](map[string]any{})
	var mve *dacite.MissingValueError
	if !errors.As(err, &mve) {
		t.Fatalf("err = %v, want MissingValueError", err)
	}
	if mve.FieldPath() != "s" {
		t.Fatalf("FieldPath = %q", mve.FieldPath())
	}
}

func TestFromMapStrict(t *testing.T) {
	type X struct {
		S string `json:"s"`
	}
	_, err := dacite.FromMap[X](map[string]any{"s": "test", "i": 1}, dacite.Config{Strict: true})
	var ude *dacite.UnexpectedDataError
	if !errors.As(err, &ude) {
		t.Fatalf("err = %v, want UnexpectedDataError", err)
	}
	if len(ude.Keys) != 1 || ude.Keys[0] != "i" {
		t.Fatalf("Keys = %v, want [i]", ude.Keys)
	}
	if ude.Error() != `can not match "i" to any declared field` {
		t.Fatalf("message = %q", ude.Error())
	}
}

func TestFromMapWithPaths(t *testing.T) {
	type X struct {
		S1 string `json:"s1" default:""`
		S2 string `json:"s2" default:"default"`
	}

	// simple field renaming
	got, err := dacite.FromMap[X](
		map[string]any{"s1": "same_name", "foo": "diff_name"},
		dacite.Config{Paths: pathsFor(X{}, map[string]dacite.PathSpec{"s2": dacite.Path("foo")})},
	)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.S1 != "same_name" || got.S2 != "diff_name" {
		t.Fatalf("got %+v", got)
	}

	// extracting (and renaming) a nested field
	got, err = dacite.FromMap[X](
		map[string]any{"s1": "same_name", "foo": map[string]any{"bar": "diff_name"}},
		dacite.Config{Paths: pathsFor(X{}, map[string]dacite.PathSpec{"s2": dacite.Path("foo.bar")})},
	)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.S2 != "diff_name" {
		t.Fatalf("got %+v", got)
	}

	// missing path, default applies
	got, err = dacite.FromMap[X](
		map[string]any{"s1": "same_name", "foo": map[string]any{}},
		dacite.Config{Paths: pathsFor(X{}, map[string]dacite.PathSpec{"s2": dacite.Path("foo.bar")})},
	)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.S2 != "default" {
		t.Fatalf("S2 = %q, want default", got.S2)
	}
}

func TestFromMapWithPathsNoDefault(t *testing.T) {
	type X struct {
		S1 string `json:"s1"`
	}
	_, err := dacite.FromMap[X](
		map[string]any{"foo": map[string]any{}},
		dacite.Config{Paths: pathsFor(X{}, map[string]dacite.PathSpec{"s1": dacite.Path("foo.bar")})},
	)
	var mve *dacite.MissingValueError
	if !errors.As(err, &mve) {
		t.Fatalf("err = %v, want MissingValueError", err)
	}
}

func TestFromMapWithMultiplePaths(t *testing.T) {
	type X struct {
		A string `json:"a"`
		B int    `json:"b"`
	}
	got, err := dacite.FromMap[X](
		map[string]any{"str": "val", "int": -1},
		dacite.Config{Paths: pathsFor(X{}, map[string]dacite.PathSpec{
			"a": dacite.Path("str", "foo.bar"),
			"b": dacite.Path("baz.blat", "int"),
		})},
	)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.A != "val" || got.B != -1 {
		t.Fatalf("got %+v", got)
	}
}

func TestFromMapWithPathsAndNestedComposite(t *testing.T) {
	type X struct {
		I int `json:"i"`
	}
	type Y struct {
		S string `json:"s"`
		X X      `json:"x"`
	}
	got, err := dacite.FromMap[Y](
		map[string]any{"s_renamed": "test", "x_renamed": map[string]any{"i": 1}},
		dacite.Config{Paths: pathsFor(Y{}, map[string]dacite.PathSpec{
			"s": dacite.Path("s_renamed"),
			"x": dacite.Path("x_renamed"),
		})},
	)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.S != "test" || got.X.I != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestFromMapSkipField(t *testing.T) {
	type X struct {
		I int `json:"i" default:"1"`
		J int `json:"j" default:"2"`
	}
	// J is remapped to the skip sentinel: the input key "j" is ignored and
	// the field falls back to its default.
	got, err := dacite.FromMap[X](
		map[string]any{"i": 5, "j": 99},
		dacite.Config{Paths: pathsFor(X{}, map[string]dacite.PathSpec{"j": dacite.SkipField})},
	)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.I != 5 || got.J != 2 {
		t.Fatalf("got %+v, want I=5 J=2", got)
	}
}

func TestFromMapDefaults(t *testing.T) {
	type X struct {
		S   string   `json:"s" default:"fallback"`
		N   int      `json:"n" default:"7"`
		Opt *string  `json:"opt"`
		L   []string `json:"l"`
	}
	got, err := dacite.FromMap[X](map[string]any{}, dacite.Config{
		DefaultFactories: map[reflect.Type]func() any{
			reflect.TypeOf([]string(nil)): func() any { return []string{} },
		},
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.S != "fallback" || got.N != 7 {
		t.Fatalf("got %+v", got)
	}
	if got.Opt != nil {
		t.Fatalf("Opt = %v, want nil", got.Opt)
	}
	if got.L == nil || len(got.L) != 0 {
		t.Fatalf("L = %#v, want fresh empty slice", got.L)
	}
}

func TestFromMapDefaultFactoryIsFreshPerConversion(t *testing.T) {
	type X struct {
		L []string `json:"l"`
	}
	cfg := dacite.Config{
		DefaultFactories: map[reflect.Type]func() any{
			reflect.TypeOf([]string(nil)): func() any { return []string{} },
		},
	}
	a, err := dacite.FromMap[X](map[string]any{}, cfg)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	b, err := dacite.FromMap[X](map[string]any{}, cfg)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	a.L = append(a.L, "x")
	if len(b.L) != 0 {
		t.Fatalf("factory default is shared between conversions")
	}
}

func TestFromMapPostConstructionField(t *testing.T) {
	type X struct {
		S string `json:"s"`
		P string `json:"p" dacite:",post"`
	}
	got, err := dacite.FromMap[X](map[string]any{"s": "a", "p": "b"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.P != "b" {
		t.Fatalf("P = %q, want b", got.P)
	}

	// A post field without a default is simply left unset when absent.
	got, err = dacite.FromMap[X](map[string]any{"s": "a"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.P != "" {
		t.Fatalf("P = %q, want zero", got.P)
	}
}

type rejectingInstantiator struct{}

func (rejectingInstantiator) Construct(t reflect.Type, fields map[string]any) (any, error) {
	p := reflect.New(t)
	for name, v := range fields {
		p.Elem().FieldByName(name).Set(reflect.ValueOf(v))
	}
	return p.Interface(), nil
}

func (rejectingInstantiator) AssignPostConstruction(instance any, field string, value any) error {
	return errors.New("instance is immutable")
}

func TestFromMapImmutableInstantiatorSurfacesError(t *testing.T) {
	type X struct {
		S string `json:"s"`
		P string `json:"p" dacite:",post"`
	}
	_, err := dacite.FromMap[X](
		map[string]any{"s": "a", "p": "b"},
		dacite.Config{Instantiator: rejectingInstantiator{}},
	)
	if err == nil || err.Error() != "instance is immutable" {
		t.Fatalf("err = %v, want immutable error", err)
	}
}

func TestFromMapIgnoredField(t *testing.T) {
	type X struct {
		S string `json:"s"`
		H string `json:"-"`
	}
	got, err := dacite.FromMap[X](map[string]any{"s": "v"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.H != "" {
		t.Fatalf("H = %q, want zero", got.H)
	}
}

func TestFromMapAlreadyTypedValueIsUntouched(t *testing.T) {
	type Inner struct {
		Num int `json:"num"`
	}
	type Outer struct {
		In Inner `json:"in"`
	}
	in := Inner{Num: 9}
	got, err := dacite.FromMap[Outer](map[string]any{"in": in})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.In != in {
		t.Fatalf("got %+v, want %+v", got.In, in)
	}
}

func TestFromMapAlreadyTypedPointerIsUntouched(t *testing.T) {
	type Inner struct {
		Num int `json:"num"`
	}
	type X struct {
		S  *string `json:"s"`
		In *Inner  `json:"in"`
	}
	s := "typed"
	in := &Inner{Num: 4}
	got, err := dacite.FromMap[X](map[string]any{"s": &s, "in": in})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got.S != &s {
		t.Fatalf("S = %v, want the original pointer", got.S)
	}
	if got.In != in {
		t.Fatalf("In = %v, want the original pointer", got.In)
	}
}

func TestFromMapTargetMustBeStruct(t *testing.T) {
	_, err := dacite.FromMap[int](map[string]any{})
	if err == nil {
		t.Fatalf("expected error for non-struct target")
	}
}
