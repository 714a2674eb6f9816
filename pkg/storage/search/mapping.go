package search

import "sort"

// Mapping is the flattened field mapping of an index: full field paths to
// their backend field types. Fields of nested and object sub-mappings are
// addressed with dot-separated paths.
type Mapping struct {
	fieldTypes map[string]string
}

// NewMapping creates a Mapping from a field-path to field-type table.
func NewMapping(fieldTypes map[string]string) Mapping {
	return Mapping{fieldTypes: fieldTypes}
}

// FieldType returns the backend type of the field with the given path.
func (m Mapping) FieldType(path string) (string, bool) {
	t, ok := m.fieldTypes[path]
	return t, ok
}

// Fields returns all field paths of the mapping in lexical order.
func (m Mapping) Fields() []string {
	fields := make([]string, 0, len(m.fieldTypes))
	for field := range m.fieldTypes {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// parseMapping flattens a raw mappings body of the form
// `{"properties": {"name": {"type": "keyword"}, "address": {"properties": ...}}}`
// into full field paths. Sub-mappings without an explicit type are treated
// as objects and contribute only their children.
func parseMapping(raw map[string]any) Mapping {
	fieldTypes := make(map[string]string)
	flattenProperties("", raw, fieldTypes)
	return Mapping{fieldTypes: fieldTypes}
}

func flattenProperties(prefix string, mapping map[string]any, out map[string]string) {
	properties, ok := mapping["properties"].(map[string]any)
	if !ok {
		return
	}
	for name, value := range properties {
		field, ok := value.(map[string]any)
		if !ok {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if fieldType, ok := field["type"].(string); ok {
			out[path] = fieldType
		}
		flattenProperties(path, field, out)
	}
}
