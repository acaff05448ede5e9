package dacite

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Error is the root of the conversion error taxonomy. Every failure produced
// by this package implements it; hook, cast-constructor, and numeric-parse
// failures are caller-owned and propagate without entering the taxonomy.
type Error interface {
	error
	daciteError()
}

// FieldError is an Error that locates the failure inside nested composites
// via a dotted field path. Nested failures prepend their field name while
// unwinding, so the path reads from the top-level type down.
type FieldError interface {
	Error
	FieldPath() string
}

type fieldError struct{ path string }

func (e *fieldError) daciteError()      {}
func (e *fieldError) FieldPath() string { return e.path }

func (e *fieldError) updatePath(prefix string) {
	if e.path == "" {
		e.path = prefix
		return
	}
	e.path = prefix + "." + e.path
}

type pathUpdater interface{ updatePath(string) }

// prependFieldPath pushes a field name onto the location path of err when it
// is a FieldError; other errors pass through untouched.
func prependFieldPath(err error, name string) {
	var pu pathUpdater
	if errors.As(err, &pu) {
		pu.updatePath(name)
	}
}

// WrongTypeError reports a built value whose runtime type does not
// structurally conform to the declared field type.
type WrongTypeError struct {
	fieldError
	Declared reflect.Type
	Value    any
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("wrong value type for field %q - should be %q instead of value %q of type %q",
		e.path, typeName(e.Declared), fmt.Sprint(e.Value), typeName(reflect.TypeOf(e.Value)))
}

// MissingValueError reports a required field absent from the input with no
// resolvable default.
type MissingValueError struct {
	fieldError
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value for field %q", e.path)
}

// UnexpectedDataError reports input keys unmatched by any declared field
// under strict mode. Keys are sorted for stable messages.
type UnexpectedDataError struct {
	fieldError
	Keys []string
}

func (e *UnexpectedDataError) Error() string {
	quoted := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return fmt.Sprintf("can not match %s to any declared field", strings.Join(quoted, ", "))
}

// UnionMatchError reports that no union member accepted the raw value.
type UnionMatchError struct {
	fieldError
	Members []reflect.Type
	Value   any
}

func (e *UnionMatchError) Error() string {
	return fmt.Sprintf("can not match value %q of type %q to any type of union [%s] for field %q",
		fmt.Sprint(e.Value), typeName(reflect.TypeOf(e.Value)), typeNames(e.Members), e.path)
}

// StrictUnionMatchError reports more than one accepted union candidate under
// the strict-unions policy. Candidates appear in declaration order.
type StrictUnionMatchError struct {
	fieldError
	Candidates []reflect.Type
}

func (e *StrictUnionMatchError) Error() string {
	return fmt.Sprintf("can not choose between possible Union matches for field %q: %s",
		e.path, typeNames(e.Candidates))
}

// ForwardReferenceError reports a union member name that could not be
// resolved through Config.ForwardReferences. Message wraps the underlying
// resolution failure verbatim.
type ForwardReferenceError struct {
	Message string
}

func (e *ForwardReferenceError) daciteError() {}

func (e *ForwardReferenceError) Error() string {
	return "can not resolve forward reference: " + e.Message
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func typeNames(ts []reflect.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = typeName(t)
	}
	return strings.Join(names, ", ")
}
