package tool

import (
	"reflect"
	"sort"
	"strings"
)

// GenerateSchema builds a JSON schema from a Go type via reflection.
// Exported struct fields become properties named after their json tags;
// non-pointer fields without omitempty are required.
func GenerateSchema(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{Type: "object"}
	}
	switch t.Kind() {
	case reflect.Struct:
		schema := &Schema{Type: "object"}
		properties := map[string]*Schema{}
		var required []string

		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fieldName, omitEmpty, skip := parseJSONTag(field)
			if skip {
				continue
			}
			properties[fieldName] = generateFieldSchema(field.Type)
			if field.Type.Kind() != reflect.Ptr && !omitEmpty {
				required = append(required, fieldName)
			}
		}

		schema.Properties = properties
		if len(required) > 0 {
			schema.Required = required
		}
		return schema
	case reflect.Ptr:
		return GenerateSchema(t.Elem())
	default:
		return generateFieldSchema(t)
	}
}

// Strictify rewrites a schema in place to satisfy the OpenAI strict
// structured-output contract: every declared property of an object becomes
// required and undeclared properties are forbidden. Applies recursively to
// nested objects and array elements. Returns the schema for chaining.
func Strictify(s *Schema) *Schema {
	if s == nil {
		return nil
	}
	if s.Type == "object" && s.Properties != nil {
		required := make([]string, 0, len(s.Properties))
		for name, prop := range s.Properties {
			required = append(required, name)
			Strictify(prop)
		}
		sort.Strings(required)
		s.Required = required
		s.AdditionalProperties = false
	}
	Strictify(s.Items)
	return s
}

func parseJSONTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = field.Name
	if tag != "" {
		if commaIdx := strings.Index(tag, ","); commaIdx != -1 {
			if tag[:commaIdx] != "" {
				name = tag[:commaIdx]
			}
			omitEmpty = strings.Contains(tag[commaIdx:], "omitempty")
		} else {
			name = tag
		}
	}
	return name, omitEmpty, false
}

func generateFieldSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &Schema{
			Type:  "array",
			Items: generateFieldSchema(t.Elem()),
		}
	case reflect.Map:
		return &Schema{
			Type:                 "object",
			AdditionalProperties: generateFieldSchema(t.Elem()),
		}
	case reflect.Ptr:
		return generateFieldSchema(t.Elem())
	case reflect.Struct:
		return GenerateSchema(t)
	default:
		return &Schema{Type: "object"}
	}
}
