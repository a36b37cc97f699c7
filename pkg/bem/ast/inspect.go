package ast

// Inspect traverses the tree rooted at n in pre-order, calling fn for every
// node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Object:
		for _, p := range n.Children {
			Inspect(p, fn)
		}
	case *Array:
		for _, c := range n.Children {
			Inspect(c, fn)
		}
	case *Property:
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	}
}
