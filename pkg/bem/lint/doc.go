// Package lint implements the block rule engine.
//
// Walk visits a parsed document depth-first. Every object is reported to an
// ObjectFunc before its properties, and every property to a PropertyFunc
// together with a Context describing where it sits: whether a "warning"
// block encloses it, the "mods" of its object and the column count of the
// closest grid. A Linter plugs its rules into those callbacks and shares one
// RuleLog across the whole run so that rules can compare a node with nodes
// seen earlier (heading order, button placement, text sizes, marketing
// columns).
//
// A Linter has no mutable state of its own; every call to Lint or LintNode
// allocates a fresh RuleLog, so documents can be linted in parallel.
package lint
