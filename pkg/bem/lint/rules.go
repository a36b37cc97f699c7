package lint

import (
	"regexp"

	"mercator-hq/blocklint/pkg/bem/ast"
)

// PropertyRule checks one property. Rules may read and update log; a shape
// the rule does not expect makes it return nothing.
type PropertyRule func(prop *ast.Property, ctx Context, log *RuleLog) []Problem

// ObjectRule checks one object.
type ObjectRule func(obj *ast.Object) []Problem

var uppercasePattern = regexp.MustCompile(`^[A-Z]+$`)

// propertyRules lists the property rules in evaluation order. The order is
// observable: later rules see log updates made by earlier ones.
func propertyRules() []PropertyRule {
	return []PropertyRule{
		uppercaseNames,
		insideWarning(warningTextSizes),
		insideWarning(warningButtonSize),
		insideWarning(warningButtonPosition),
		insideWarning(warningPlaceholderSize),
		textSeveralH1,
		textH2Position,
		textH3Position,
		gridMarketingBlocks,
	}
}

func objectRules() []ObjectRule {
	return []ObjectRule{
		blockNameRequired,
	}
}

func insideWarning(rule PropertyRule) PropertyRule {
	return func(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
		if !ctx.InsideWarning {
			return nil
		}
		return rule(prop, ctx, log)
	}
}

func blockNameRequired(obj *ast.Object) []Problem {
	if obj.Has("block") {
		return nil
	}
	return []Problem{{Key: BlockNameIsRequired, Loc: obj.Location}}
}

func uppercaseNames(prop *ast.Property, _ Context, _ *RuleLog) []Problem {
	if !uppercasePattern.MatchString(prop.KeyName()) {
		return nil
	}
	return []Problem{{Key: UppercaseNamesIsForbidden, Loc: prop.Key.Location}}
}

// valueIs reports whether the property value is the string literal s.
func valueIs(prop *ast.Property, s string) bool {
	v, ok := prop.StringValue()
	return ok && v == s
}

func warningTextSizes(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	if !valueIs(prop, "text") {
		return nil
	}
	size, ok := ctx.Size()
	if !ok {
		return nil
	}
	if log.TextSize == "" {
		log.TextSize = size
		log.TextSizeLoc = ctx.Object.Location
	}
	if size != log.TextSize {
		return []Problem{{Key: WarningTextSizes, Loc: log.TextSizeLoc}}
	}
	return nil
}

func warningButtonSize(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	size, hasSize := ctx.Size()

	if (valueIs(prop, "text") || valueIs(prop, "placeholder")) && log.ButtonSize == "" && hasSize {
		if next, ok := nextSize(size); ok {
			log.ButtonSize = next
		}
	}

	if valueIs(prop, "button") && log.ButtonSize != "" && hasSize && size != log.ButtonSize {
		return []Problem{{Key: WarningButtonSize, Loc: ctx.Object.Location}}
	}
	return nil
}

func warningButtonPosition(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	if valueIs(prop, "button") {
		loc := ctx.Object.Location
		log.ButtonPosition = &loc
	}
	if valueIs(prop, "placeholder") && log.ButtonPosition != nil {
		return []Problem{{Key: WarningButtonPosition, Loc: *log.ButtonPosition}}
	}
	return nil
}

var placeholderSizes = map[string]bool{"s": true, "m": true, "l": true}

func warningPlaceholderSize(prop *ast.Property, ctx Context, _ *RuleLog) []Problem {
	if !valueIs(prop, "placeholder") {
		return nil
	}
	if size, ok := ctx.Size(); ok && !placeholderSizes[size] {
		return []Problem{{Key: WarningPlaceholderSize, Loc: ctx.Object.Location}}
	}
	return nil
}

// headingType returns mods.type of a text block.
func headingType(prop *ast.Property, ctx Context) string {
	if !valueIs(prop, "text") {
		return ""
	}
	t, _ := modString(ctx.Mods, "type")
	return t
}

func textSeveralH1(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	if headingType(prop, ctx) != "h1" {
		return nil
	}
	if log.H1Seen {
		return []Problem{{Key: TextSeveralH1, Loc: ctx.Object.Location}}
	}
	log.H1Seen = true
	return nil
}

func textH2Position(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	switch headingType(prop, ctx) {
	case "h2":
		if log.H2Loc == nil {
			loc := ctx.Object.Location
			log.H2Loc = &loc
		}
	case "h1":
		if log.H2Loc != nil {
			loc := *log.H2Loc
			log.H2Loc = nil
			return []Problem{{Key: TextInvalidH2Position, Loc: loc}}
		}
	}
	return nil
}

func textH3Position(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	switch headingType(prop, ctx) {
	case "h3":
		if log.H3Loc == nil {
			loc := ctx.Object.Location
			log.H3Loc = &loc
		}
	case "h1", "h2":
		if log.H3Loc != nil {
			loc := *log.H3Loc
			log.H3Loc = nil
			return []Problem{{Key: TextInvalidH3Position, Loc: loc}}
		}
	}
	return nil
}

func gridMarketingBlocks(prop *ast.Property, ctx Context, log *RuleLog) []Problem {
	if !valueIs(prop, "fraction") || !ctx.HasGridColumns || ctx.GridColumns <= 0 {
		return nil
	}

	content := ctx.Object.Get("content")
	if content == nil || !containsMarketingBlock(content.Value) {
		return nil
	}

	cols, ok := ast.NumberOf(modNode(ctx.Object.Get("elemMods"), "m-col"))
	if !ok {
		cols, ok = ast.NumberOf(modNode(ctx.Mods, "m-col"))
	}
	if !ok {
		return nil
	}

	log.MarketingColumns += cols
	if log.MarketingColumns/ctx.GridColumns > 0.5 {
		log.MarketingColumns = 0
		return []Problem{{Key: GridTooMuchMarketingBlocks, Loc: ctx.Object.Location}}
	}
	return nil
}
