package ownership

// CountNodes sums the node and all of its descendants. Always terminates: the
// builder truncates cycles into leaves, so the tree is finite.
func CountNodes(node *Node) int {
	if node == nil {
		return 0
	}
	count := 1
	for _, child := range node.Children {
		count += CountNodes(child)
	}
	return count
}
