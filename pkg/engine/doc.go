// Package engine runs one validation of one document: the enable gate,
// parsing, the rule walk, diagnostic assembly, and the logging, metrics,
// tracing and history around it.
//
//	eng := engine.New(&cfg.Lint, engine.Options{Logger: logger, Metrics: collector})
//	result := eng.Lint(ctx, "file:///page.json", text)
//	for _, d := range result.Diagnostics {
//		fmt.Println(d.Range.Start.Line, d.Message)
//	}
package engine
