package internal

// ReconstructPath walks parent links from goal back to the node whose key is
// start and returns the keys in start to goal order. It gives up with
// ok == false when the chain ends, or runs longer than limit links, before
// reaching start.
func ReconstructPath[NodeType any, Key comparable](
	goal NodeType,
	start Key,
	key func(NodeType) Key,
	parent func(NodeType) (NodeType, bool),
	limit int,
) (path []Key, ok bool) {
	current := goal
	path = []Key{key(current)}
	for key(current) != start {
		if len(path) > limit {
			return nil, false
		}
		previousNode, exists := parent(current)
		if !exists {
			return nil, false
		}
		path = append(path, key(previousNode))
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}
