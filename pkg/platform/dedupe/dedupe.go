// Package dedupe removes repeated values from slices while keeping order.
package dedupe

// Stable returns values with later repeats dropped. The first occurrence
// keeps its position. A nil or empty input is returned as is.
//
//	Stable([]int{3, 1, 3, 2, 1}) // []int{3, 1, 2}
func Stable[T comparable](values []T) []T {
	if len(values) == 0 {
		return values
	}
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// StableFunc is Stable keyed by key(v), for values that are not comparable
// or that should collapse on a derived key.
func StableFunc[T any, K comparable](values []T, key func(T) K) []T {
	if len(values) == 0 {
		return values
	}
	seen := make(map[K]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
