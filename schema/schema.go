package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/viant/tagly/format"
)

// schemaForTypeInternal returns a JSON schema representation for a given reflect.Type.
// The inSlice flag is used to determine if we are processing an element inside a slice.
func schemaForTypeInternal(t reflect.Type, inSlice bool) map[string]interface{} {
	schema := make(map[string]interface{})

	// time.Time is rendered as an ISO 8601 string.
	if t == reflect.TypeOf(time.Time{}) {
		schema["type"] = "string"
		schema["format"] = "date-time"
		return schema
	}

	if t.Kind() == reflect.Ptr {
		schema = schemaForTypeInternal(t.Elem(), inSlice)
		if !inSlice {
			schema["nullable"] = true
		}
		return schema
	}

	switch t.Kind() {
	case reflect.Bool:
		schema["type"] = "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		schema["type"] = "integer"
	case reflect.Float32, reflect.Float64:
		schema["type"] = "number"
	case reflect.String:
		schema["type"] = "string"
	case reflect.Slice, reflect.Array:
		schema["type"] = "array"
		schema["items"] = schemaForTypeInternal(t.Elem(), true)
	case reflect.Map:
		schema["type"] = "object"
		schema["additionalProperties"] = schemaForTypeInternal(t.Elem(), false)
	case reflect.Struct:
		schema["type"] = "object"
		properties, required := structToProperties(t)
		schema["properties"] = properties
		if len(required) > 0 {
			schema["required"] = required
		}
	default:
		schema["type"] = "string"
	}
	return schema
}

func schemaForType(t reflect.Type) map[string]interface{} {
	return schemaForTypeInternal(t, false)
}

// structToProperties converts a struct type into JSON schema properties and required fields.
func structToProperties(t reflect.Type) (map[string]interface{}, []string) {
	properties := make(map[string]interface{})
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, _ := format.Parse(field.Tag, "json", "format")
		if tag == nil {
			tag = &format.Tag{}
		}
		if tag.Ignore {
			continue
		}

		fieldName := field.Name
		if tag.Name != "" {
			fieldName = tag.Name
		}

		fieldSchema := schemaForType(field.Type)
		if tag.DateFormat != "" {
			fieldSchema["format"] = tag.DateFormat
		}
		if description, ok := field.Tag.Lookup("description"); ok && description != "" {
			fieldSchema["description"] = description
		}
		properties[fieldName] = fieldSchema
		if field.Type.Kind() != reflect.Ptr && !tag.Omitempty {
			required = append(required, fieldName)
		}
	}
	return properties, required
}

// For returns the tool input schema of a struct (or pointer to struct) value.
func For(v any) (map[string]interface{}, error) {
	if v == nil {
		return EmptyObject(), nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct type, got %s", t.Kind())
	}
	properties, required := structToProperties(t)
	ret := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		ret["required"] = required
	}
	return ret, nil
}

// EmptyObject returns the schema of a tool that takes no arguments.
func EmptyObject() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

// Normalize returns a non-empty object schema for raw, defaulting to EmptyObject.
// An object schema without properties gets an empty properties map.
func Normalize(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
		data, _ := json.Marshal(EmptyObject())
		return data
	}
	var object map[string]interface{}
	if err := json.Unmarshal(raw, &object); err != nil || object["type"] != "object" {
		return raw
	}
	if _, ok := object["properties"]; ok {
		return raw
	}
	object["properties"] = map[string]interface{}{}
	data, err := json.Marshal(object)
	if err != nil {
		return raw
	}
	return data
}
