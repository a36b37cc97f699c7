package lint

import "mercator-hq/blocklint/pkg/bem/ast"

// Context is threaded by value through the walk. Changes made while visiting
// an object reach later siblings and all descendants, never earlier siblings.
type Context struct {
	// InsideWarning is set once a property whose value is "warning" has been
	// seen in this object or any ancestor.
	InsideWarning bool

	// Mods is the "mods" property of the object being visited, or nil.
	Mods *ast.Property

	// GridColumns is the m-columns of the closest enclosing grid.
	GridColumns    float64
	HasGridColumns bool

	// Object owns the property being visited.
	Object *ast.Object
}

var sizeScale = []string{"xxxs", "xxs", "xs", "s", "m", "l", "xl", "xxl", "xxxl", "xxxxl"}

var marketingBlocks = map[string]bool{
	"commercial": true,
	"offer":      true,
}

// enterObject derives the context for the properties of obj from the
// context inherited by obj.
func enterObject(parent Context, obj *ast.Object) Context {
	ctx := parent
	ctx.Object = obj
	ctx.Mods = obj.Get("mods")

	if hasStringValue(obj, "grid") {
		if cols, ok := ast.NumberOf(modNode(ctx.Mods, "m-columns")); ok {
			ctx.GridColumns = cols
			ctx.HasGridColumns = true
		}
	}
	return ctx
}

// Size returns mods.size of the current object.
func (c Context) Size() (string, bool) {
	return modString(c.Mods, "size")
}

// modNode returns the value of the modifier key inside a mods-like property.
// Anything other than an object value yields nil.
func modNode(mods *ast.Property, key string) ast.Node {
	obj, ok := mods.ObjectValue()
	if !ok {
		return nil
	}
	p := obj.Get(key)
	if p == nil {
		return nil
	}
	return p.Value
}

func modString(mods *ast.Property, key string) (string, bool) {
	n := modNode(mods, key)
	if n == nil {
		return "", false
	}
	s, ok := ast.StringOf(n)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// nextSize returns the size one step above size on the scale.
func nextSize(size string) (string, bool) {
	for i, s := range sizeScale {
		if s == size {
			if i+1 < len(sizeScale) {
				return sizeScale[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

func hasStringValue(obj *ast.Object, value string) bool {
	for _, p := range obj.Children {
		if s, ok := p.StringValue(); ok && s == value {
			return true
		}
	}
	return false
}

// containsMarketingBlock reports whether any object under n has a block
// property naming a marketing block.
func containsMarketingBlock(n ast.Node) bool {
	found := false
	ast.Inspect(n, func(n ast.Node) bool {
		if found {
			return false
		}
		if obj, ok := n.(*ast.Object); ok {
			if name, ok := obj.Get("block").StringValue(); ok && marketingBlocks[name] {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
