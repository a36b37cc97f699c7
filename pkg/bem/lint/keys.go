package lint

import "mercator-hq/blocklint/pkg/bem/ast"

// RuleKey identifies a validation rule. The values are stable: they appear in
// configuration files and in published diagnostics.
type RuleKey string

const (
	UppercaseNamesIsForbidden RuleKey = "uppercaseNamesIsForbidden"
	BlockNameIsRequired       RuleKey = "blockNameIsRequired"

	WarningTextSizes       RuleKey = "WARNING_TEXT_SIZES_SHOULD_BE_EQUAL"
	WarningButtonSize      RuleKey = "WARNING_INVALID_BUTTON_SIZE"
	WarningButtonPosition  RuleKey = "WARNING_INVALID_BUTTON_POSITION"
	WarningPlaceholderSize RuleKey = "WARNING_INVALID_PLACEHOLDER_SIZE"

	TextSeveralH1         RuleKey = "TEXT_SEVERAL_H1"
	TextInvalidH2Position RuleKey = "TEXT_INVALID_H2_POSITION"
	TextInvalidH3Position RuleKey = "TEXT_INVALID_H3_POSITION"

	GridTooMuchMarketingBlocks RuleKey = "GRID_TOO_MUCH_MARKETING_BLOCKS"
)

var allKeys = []RuleKey{
	UppercaseNamesIsForbidden,
	BlockNameIsRequired,
	WarningTextSizes,
	WarningButtonSize,
	WarningButtonPosition,
	WarningPlaceholderSize,
	TextSeveralH1,
	TextInvalidH2Position,
	TextInvalidH3Position,
	GridTooMuchMarketingBlocks,
}

// Keys returns every rule key in catalogue order.
func Keys() []RuleKey {
	out := make([]RuleKey, len(allKeys))
	copy(out, allKeys)
	return out
}

// IsValid reports whether k names a known rule.
func (k RuleKey) IsValid() bool {
	for _, known := range allKeys {
		if k == known {
			return true
		}
	}
	return false
}

func (k RuleKey) String() string { return string(k) }

// Problem is a raw rule violation: which rule fired and where.
type Problem struct {
	Key RuleKey
	Loc ast.Location
}
