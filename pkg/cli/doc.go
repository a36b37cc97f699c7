/*
Package cli provides the output and error handling of the blocklint command.

Reporters write lint results in one of three formats:

	reporter, err := cli.NewReporter(cli.FormatText, os.Stdout, cli.ReporterOptions{
		Color: cli.UseColor(os.Stdout, cli.ColorAuto),
	})
	if err != nil {
		return err
	}
	for _, result := range results {
		reporter.Report(ctx, result)
	}
	reporter.Close()
	if reporter.Summary().Failed(strict) {
		return cli.NewCommandError("lint", cli.ErrProblemsFound)
	}

The lsp format writes textDocument/publishDiagnostics notifications with
Content-Length framing, so an editor extension can pipe blocklint output
straight into its client.

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
