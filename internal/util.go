package internal

// ReconstructPath walks parent links from node back to the root (the node
// whose parent is negative) and returns the values along the way in
// root-to-node order, excluding the root itself.
func ReconstructPath[T any](
	node int,
	parent func(id int) int,
	value func(id int) T,
) []T {
	path := make([]T, 0)
	for current := node; parent(current) >= 0; current = parent(current) {
		path = append(path, value(current))
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
