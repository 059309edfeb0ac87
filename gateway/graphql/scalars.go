package graphql

import "encoding/json"

// JSONValue implements the JSON scalar: an opaque bag of backend-provided
// properties passed through to the client without reshaping.
type JSONValue struct {
	value any
}

// NewJSONValue wraps a decoded JSON value. A nil value serializes as {}
// so the scalar can be non-null in the schema.
func NewJSONValue(v any) JSONValue {
	if v == nil {
		v = map[string]any{}
	}
	return JSONValue{value: v}
}

// Value returns the wrapped value.
func (v JSONValue) Value() any {
	return v.value
}

// ImplementsGraphQLType marks the type as the JSON scalar.
func (JSONValue) ImplementsGraphQLType(name string) bool {
	return name == "JSON"
}

// UnmarshalGraphQL accepts any literal or variable value as-is.
func (v *JSONValue) UnmarshalGraphQL(input any) error {
	v.value = input
	return nil
}

// MarshalJSON serializes the wrapped value verbatim.
func (v JSONValue) MarshalJSON() ([]byte, error) {
	if v.value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v.value)
}
