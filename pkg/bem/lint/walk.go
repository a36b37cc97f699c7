package lint

import "mercator-hq/blocklint/pkg/bem/ast"

// PropertyFunc is called for every property of every object, in document order.
type PropertyFunc func(prop *ast.Property, ctx Context) []Problem

// ObjectFunc is called once per object before any of its properties.
type ObjectFunc func(obj *ast.Object) []Problem

// Walk traverses root depth-first in pre-order and returns the problems
// reported by the callbacks in visitation order. A nil root yields nil.
func Walk(root ast.Node, onProperty PropertyFunc, onObject ObjectFunc) []Problem {
	if root == nil {
		return nil
	}
	w := &walker{onProperty: onProperty, onObject: onObject}
	w.walk(root, Context{})
	return w.problems
}

type walker struct {
	onProperty PropertyFunc
	onObject   ObjectFunc
	problems   []Problem
}

func (w *walker) walk(n ast.Node, ctx Context) {
	switch n := n.(type) {
	case *ast.Array:
		for _, child := range n.Children {
			w.walk(child, ctx)
		}
	case *ast.Object:
		if w.onObject != nil {
			w.problems = append(w.problems, w.onObject(n)...)
		}
		ctx = enterObject(ctx, n)
		for _, prop := range n.Children {
			if s, ok := prop.StringValue(); ok && s == "warning" {
				ctx.InsideWarning = true
			}
			if w.onProperty != nil {
				w.problems = append(w.problems, w.onProperty(prop, ctx)...)
			}
			w.walk(prop.Value, ctx)
		}
	}
}
