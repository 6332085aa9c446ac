// Package attrs reads values back out of slog-style key/value slices
// ([key1, value1, key2, value2, ...]).
package attrs

// Lookup returns the first value stored under key when it has type T.
// A trailing key without a value is ignored.
func Lookup[T any](kv []any, key string) (T, bool) {
	var zero T
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); !ok || k != key {
			continue
		}
		v, ok := kv[i+1].(T)
		return v, ok
	}
	return zero, false
}

// String is Lookup for string values, returning "" when absent.
func String(kv []any, key string) string {
	v, _ := Lookup[string](kv, key)
	return v
}
