package lint

import "mercator-hq/blocklint/pkg/bem/ast"

// RuleLog carries state between property visits of a single run. It is
// never reset between blocks: two warning blocks in one document share the
// reference text size, the recorded button and so on. This bleed across
// blocks is kept deliberately for compatibility.
//
// Two more heading decisions are deliberate:
//
//   - H2Loc and H3Loc hold only the first pending heading. Later h2 or h3
//     headings are not recorded while one is pending.
//   - A pending heading is cleared once its diagnostic fires, so a second
//     out-of-order h1 needs a new h2 (or h3) before it reports again.
type RuleLog struct {
	TextSize    string
	TextSizeLoc ast.Location

	ButtonSize     string
	ButtonPosition *ast.Location

	H1Seen bool
	H2Loc  *ast.Location // first pending h2, cleared when reported
	H3Loc  *ast.Location // first pending h3, cleared when reported

	MarketingColumns float64
}

// NewRuleLog returns an empty log.
func NewRuleLog() *RuleLog {
	return &RuleLog{}
}
