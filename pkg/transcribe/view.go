package transcribe

import (
	"reflect"
	"strings"
)

// fieldView provides uniform field access over the two shapes an engine
// result shows up in: a JSON-decoded map or a typed struct from a client
// library. The shape is inspected once at the boundary; everything
// downstream only talks to this interface.
type fieldView interface {
	// Field returns the named field's value and whether it exists.
	Field(name string) (any, bool)
}

// newFieldView selects a view for the raw value, or nil when the value has
// no addressable fields at all.
func newFieldView(raw any) fieldView {
	if raw == nil {
		return nil
	}
	if m, ok := raw.(map[string]any); ok {
		return mapView(m)
	}

	v := reflect.ValueOf(raw)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		return structView{v: v}
	}
	return nil
}

// mapView reads fields from a JSON-decoded map.
type mapView map[string]any

func (m mapView) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// structView reads exported fields from a typed struct, matching the json
// tag first and the Go field name (case-insensitively) second.
type structView struct {
	v reflect.Value
}

func (s structView) Field(name string) (any, bool) {
	t := s.v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if jsonTagName(f) == name || strings.EqualFold(f.Name, name) {
			return s.v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// jsonTagName returns the field name portion of a json struct tag.
func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
