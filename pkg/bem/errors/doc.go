// Package errors provides located error types for reading block documents
// and lint configuration.
//
// # Error Types
//
// ErrorTypeSyntax: malformed JSON
//
// ErrorTypeIO: file access errors and size limits
//
// ErrorTypeConfig: invalid entries in the lint.severity configuration,
// collected in an ErrorList with a "did you mean" suggestion
//
// # Error Format
//
//	[syntax] Expected ',' or '}' after property value
//	  --> page.json:3:5
//	  |
//	   2 |   "block": "page"
//	-> 3 |   "mods": {}
//	     |   ^
//	  |
//
// Syntax errors never become diagnostics: a document that does not parse has
// no diagnostics. The errors are still available to callers that want to tell
// the user why nothing was reported.
package errors
