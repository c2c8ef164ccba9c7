// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package gotin

// ScalarKind is a closed enum of the scalar types an attribute column may
// hold.
type ScalarKind int

const (
	KindI64 ScalarKind = iota
	KindU64
	KindF32
	KindF64
	KindBool
	KindFixedString
)

// String returns a short label for k.
func (k ScalarKind) String() string {
	switch k {
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindFixedString:
		return "fixed_string"
	default:
		return "unknown"
	}
}

// AttributeField declares one column of the schema: a name, its scalar
// kind, and, for KindFixedString, the maximum rune length (Size is
// ignored for every other kind).
type AttributeField struct {
	Name string
	Kind ScalarKind
	Size int
}

// AttributeSchema is the ordered list of fields declared for a DT's
// per-vertex attribute table. The zero value is the empty schema.
type AttributeSchema struct {
	Fields []AttributeField
}

// ListAttributes returns the declared field names in schema order.
func (s AttributeSchema) ListAttributes() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s AttributeSchema) indexOf(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// defaultValue returns the zero value for a field's scalar kind: numeric
// 0, bool false, or an empty string.
func defaultValue(f AttributeField) any {
	switch f.Kind {
	case KindI64:
		return int64(0)
	case KindU64:
		return uint64(0)
	case KindF32:
		return float32(0)
	case KindF64:
		return float64(0)
	case KindBool:
		return false
	case KindFixedString:
		return ""
	default:
		return nil
	}
}

// coerce converts v to f's scalar kind on a best-effort basis and never
// fails: unconvertible inputs fall back to the field's default value, and
// strings longer than a FixedString's Size are truncated.
func coerce(f AttributeField, v any) any {
	switch f.Kind {
	case KindI64:
		return toInt64(v)
	case KindU64:
		n := toInt64(v)
		if n < 0 {
			return uint64(0)
		}
		return uint64(n)
	case KindF32:
		return float32(toFloat64(v))
	case KindF64:
		return toFloat64(v)
	case KindBool:
		return toBool(v)
	case KindFixedString:
		s := toStr(v)
		if r := []rune(s); f.Size > 0 && len(r) > f.Size {
			s = string(r[:f.Size])
		}
		return s
	default:
		return nil
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case uint:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case uint64:
		return float64(n)
	case uint:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toBool(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case int64:
		return n != 0
	case int:
		return n != 0
	case float64:
		return n != 0
	default:
		return false
	}
}

func toStr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// attributeStore holds one dense column per schema field, indexed by
// vertex index, plus a present mask recording which rows have ever been
// explicitly written. Row 0 (the infinite vertex) is always allocated,
// is never written, and carries only default values.
type attributeStore struct {
	schema  AttributeSchema
	columns [][]any
	present [][]bool
}

func newAttributeStore(schema AttributeSchema) *attributeStore {
	s := &attributeStore{
		schema:  schema,
		columns: make([][]any, len(schema.Fields)),
		present: make([][]bool, len(schema.Fields)),
	}
	s.growTo(1)
	return s
}

// growTo ensures every column has at least n rows, filling new rows with
// the field's default value.
func (s *attributeStore) growTo(n int) {
	for fi, f := range s.schema.Fields {
		for len(s.columns[fi]) < n {
			s.columns[fi] = append(s.columns[fi], defaultValue(f))
			s.present[fi] = append(s.present[fi], false)
		}
	}
}

// setRow writes the named fields of row i, coercing each value to its
// column's scalar kind. Unknown field names are silently ignored; fields
// not present in values retain their previous value.
func (s *attributeStore) setRow(i int, values map[string]any) {
	s.growTo(i + 1)
	for name, v := range values {
		fi, ok := s.schema.indexOf(name)
		if !ok {
			continue
		}
		s.columns[fi][i] = coerce(s.schema.Fields[fi], v)
		s.present[fi][i] = true
	}
}

// getRow returns the full attribute row for vertex i as a name->value
// map, in schema order semantics (map iteration order aside).
func (s *attributeStore) getRow(i int) map[string]any {
	row := make(map[string]any, len(s.schema.Fields))
	for fi, f := range s.schema.Fields {
		if i < len(s.columns[fi]) {
			row[f.Name] = s.columns[fi][i]
		} else {
			row[f.Name] = defaultValue(f)
		}
	}
	return row
}

// defaultRow returns a full row of per-field default values.
func (s *attributeStore) defaultRow() map[string]any {
	row := make(map[string]any, len(s.schema.Fields))
	for _, f := range s.schema.Fields {
		row[f.Name] = defaultValue(f)
	}
	return row
}

// column returns the dense column for name, including the row-0
// sentinel, or false if name is not part of the schema.
func (s *attributeStore) column(name string) ([]any, bool) {
	fi, ok := s.schema.indexOf(name)
	if !ok {
		return nil, false
	}
	return s.columns[fi], true
}

// ListAttributes returns the declared attribute field names in schema
// order.
func (d *DT) ListAttributes() []string {
	return d.attrs.schema.ListAttributes()
}

// SetAttributesSchema declares the attribute schema for this DT after
// construction. The schema can only be set while it is still empty and
// before the first insertion; afterwards it is immutable and the call
// fails with InvalidInput.
func (d *DT) SetAttributesSchema(schema AttributeSchema) error {
	if len(d.attrs.schema.Fields) > 0 {
		return newErrorf("SetAttributesSchema", InvalidInput, "attribute schema is already declared")
	}
	if len(d.mesh.Vertices) > 1 {
		return newErrorf("SetAttributesSchema", InvalidInput, "attribute schema cannot change after the first insertion")
	}
	d.attrs = newAttributeStore(schema)
	return nil
}

// Attributes returns one attribute row per allocated vertex slot,
// indexed by vertex index. Row 0 (the infinite vertex) and tombstoned
// rows read as default values.
func (d *DT) Attributes() []map[string]any {
	out := make([]map[string]any, len(d.mesh.Vertices))
	for i := range out {
		if i == 0 || d.mesh.Vertices[i].Removed {
			out[i] = d.attrs.defaultRow()
			continue
		}
		out[i] = d.attrs.getRow(i)
	}
	return out
}

// GetAttributesSchema returns the declared schema: the one passed to
// NewDT, or the one set later by SetAttributesSchema.
func (d *DT) GetAttributesSchema() AttributeSchema {
	return d.attrs.schema
}

// SetVertexAttributes writes the named fields of vertex i's attribute
// row. Unknown field names are silently ignored; fields absent from
// values keep their previous value. It fails with InfiniteVertex for i
// == 0 and OutOfRange for any other invalid index.
func (d *DT) SetVertexAttributes(i int, values map[string]any) error {
	if err := d.checkFiniteVertex("SetVertexAttributes", i); err != nil {
		return err
	}
	d.attrs.setRow(i, values)
	return nil
}

// GetVertexAttributes returns the attribute row for vertex i. It fails
// with InfiniteVertex for i == 0, and OutOfRange for any other invalid
// or removed index.
func (d *DT) GetVertexAttributes(i int) (map[string]any, error) {
	if err := d.checkFiniteVertex("GetVertexAttributes", i); err != nil {
		return nil, err
	}
	if d.mesh.IsVertexRemoved(i) {
		return nil, newErrorf("GetVertexAttributes", OutOfRange, "vertex %d is removed", i)
	}
	return d.attrs.getRow(i), nil
}

// Attribute returns the entire dense column for name (row 0 is a
// sentinel default value). It fails with OutOfRange if name is not part
// of the schema.
func (d *DT) Attribute(name string) ([]any, error) {
	col, ok := d.attrs.column(name)
	if !ok {
		return nil, newErrorf("Attribute", OutOfRange, "unknown attribute field %q", name)
	}
	out := make([]any, len(col))
	copy(out, col)
	return out, nil
}
