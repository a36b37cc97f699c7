// Package diagnostic turns lint problems into published diagnostics with a
// severity, a localized message, a source name and a line/character range.
package diagnostic
