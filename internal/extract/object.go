package extract

import (
	"encoding/json"
	"fmt"
)

// Object is a decoded JSON object.
type Object map[string]any

// Has reports whether key is present, whatever its value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Decode re-encodes the object and decodes it into v.
func (o Object) Decode(v any) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode object: %w", err)
	}
	return nil
}

// String returns the value at key when it is a string.
func (o Object) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// Float returns the value at key when it is a number.
func (o Object) Float(key string) (float64, bool) {
	f, ok := o[key].(float64)
	return f, ok
}
