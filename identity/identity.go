// Package identity extracts the stable integer identity of a bill.
//
// The host assigns every bill a load ID that survives save/reload, but keeps
// it out of the bill's public contract. This package is the only place that
// reaches into the host's representation to read it; everything else works on
// the extracted integer.
package identity

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/plus3/workbench/bill"
)

// ErrIncompatible means the host's bill layout does not expose the expected
// identity field. The feature cannot work without it.
var ErrIncompatible = errors.New("identity: bill layout has no usable identity field")

// Extractor yields the stable identity of a live bill without mutating it.
type Extractor interface {
	IdentityOf(b bill.Bill) int
}

// Func adapts an accessor function, for hosts that expose the identity
// directly.
type Func func(b bill.Bill) int

func (f Func) IdentityOf(b bill.Bill) int {
	return f(b)
}

// Field reads a named integer field from the bill's underlying struct.
// Field paths are resolved once per concrete type and cached.
type Field struct {
	name  string
	mu    sync.RWMutex
	paths map[reflect.Type][]int
}

// NewField resolves the named field for every sample type up front so that
// layout changes in the host surface at startup rather than inside a lookup.
// Samples are typically typed nil pointers, e.g. (*bill.Production)(nil).
func NewField(name string, samples ...any) (*Field, error) {
	f := &Field{
		name:  name,
		paths: make(map[reflect.Type][]int, len(samples)),
	}
	for _, sample := range samples {
		typ := structType(reflect.TypeOf(sample))
		if _, err := f.resolve(typ); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MustField is NewField for package-level setup; it panics on a layout
// mismatch.
func MustField(name string, samples ...any) *Field {
	f, err := NewField(name, samples...)
	if err != nil {
		panic(err)
	}
	return f
}

// ForBills resolves the host's load ID field on every bill type it defines.
func ForBills() (*Field, error) {
	return NewField("loadID", (*bill.Production)(nil), (*bill.LegacyProduction)(nil))
}

// IdentityOf returns the bill's identity. A bill type that was not checked at
// construction is resolved on first use; if it lacks the field this panics,
// since no lookup can proceed without a key.
func (f *Field) IdentityOf(b bill.Bill) int {
	v := reflect.ValueOf(b)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	f.mu.RLock()
	path, ok := f.paths[v.Type()]
	f.mu.RUnlock()

	if !ok {
		var err error
		path, err = f.resolve(v.Type())
		if err != nil {
			panic(err)
		}
	}

	field := v.FieldByIndex(path)
	switch field.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(field.Uint())
	default:
		return int(field.Int())
	}
}

func (f *Field) resolve(typ reflect.Type) ([]int, error) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct", ErrIncompatible, typ)
	}

	field, ok := typ.FieldByName(f.name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrIncompatible, typ, f.name)
	}

	switch field.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, fmt.Errorf("%w: %s.%s is %s, not an integer", ErrIncompatible, typ, f.name, field.Type)
	}

	f.mu.Lock()
	f.paths[typ] = field.Index
	f.mu.Unlock()
	return field.Index, nil
}

func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
