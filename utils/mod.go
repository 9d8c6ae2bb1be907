package utils

// FindIndex returns the index of the first occurrence of item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// AppendUnique appends the items not yet in slice, in order, while len(slice) < limit.
func AppendUnique[T comparable](slice []T, limit int, items ...T) []T {
	for _, item := range items {
		if len(slice) >= limit {
			break
		}
		if FindIndex(slice, item) < 0 {
			slice = append(slice, item)
		}
	}
	return slice
}
