// Blocklint checks JSON block documents against structural and stylistic
// rules and reports positioned diagnostics.
//
// Usage:
//
//	# Lint a single document
//	blocklint lint --file page.json
//
//	# Lint every .json file under a directory, four at a time
//	blocklint lint --dir pages/ --jobs 4
//
//	# Re-lint on every save and publish language server notifications
//	blocklint lint --dir pages/ --watch --format lsp
//
//	# List the rules and their configured severity
//	blocklint rules
//
//	# Show recorded runs
//	blocklint history list --limit 20
package main

func main() {
	Execute()
}
