//go:build unit || e2e

package testutil

// Field sets a map field to value; a nil value removes the field entirely,
// which is how required-field validation cases are built.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
