package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/blocklint/pkg/cli"
	"mercator-hq/blocklint/pkg/history"
)

var historyFlags struct {
	db        string
	file      string
	since     time.Duration
	failed    bool
	limit     int
	format    string
	olderThan int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded lint runs",
	Long: `Inspect and prune the lint run history kept in SQLite.

Runs are recorded when history.enabled is set. The database path defaults to
history.path and can be overridden with --db.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Long: `List recorded runs, newest first.

Examples:
  # Last 20 runs
  blocklint history list --limit 20

  # Runs of one document during the last day
  blocklint history list --file pages/index.json --since 24h

  # Runs that failed to parse, as JSON
  blocklint history list --failed --format json`,
	RunE: listHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs",
	Long: `Delete runs older than a number of days.

Without --older-than the configured history.retention_days is used; a value
of zero keeps every run.

Examples:
  blocklint history prune
  blocklint history prune --older-than 7`,
	RunE: pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.PersistentFlags().StringVar(&historyFlags.db, "db", "", "history database (default: history.path)")

	historyListCmd.Flags().StringVar(&historyFlags.file, "file", "", "only runs of this document")
	historyListCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only runs started within this duration")
	historyListCmd.Flags().BoolVar(&historyFlags.failed, "failed", false, "only runs that failed to parse")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", history.DefaultListLimit, "maximum number of runs")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")

	historyPruneCmd.Flags().IntVar(&historyFlags.olderThan, "older-than", -1, "delete runs older than this many days")
}

func openHistory() (*history.Store, int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, 0, err
	}
	logger, err := newLogger(cfg, rootCmd.ErrOrStderr())
	if err != nil {
		return nil, 0, err
	}

	path := cfg.History.Path
	if historyFlags.db != "" {
		path = historyFlags.db
	}
	storeCfg := history.DefaultStoreConfig(path)
	storeCfg.Logger = logger
	store, err := history.Open(storeCfg)
	if err != nil {
		return nil, 0, err
	}
	return store, cfg.History.RetentionDays, nil
}

func listHistory(cmd *cobra.Command, args []string) error {
	if historyFlags.format != "text" && historyFlags.format != "json" {
		return cli.NewCommandError("history list", fmt.Errorf("unknown output format %q (valid: text, json)", historyFlags.format))
	}

	store, _, err := openHistory()
	if err != nil {
		return cli.NewCommandError("history list", err)
	}
	defer store.Close()

	filter := history.Filter{
		File:       historyFlags.file,
		FailedOnly: historyFlags.failed,
		Limit:      historyFlags.limit,
	}
	if historyFlags.since > 0 {
		since := time.Now().Add(-historyFlags.since)
		filter.Since = &since
	}

	runs, err := store.List(commandContext(cmd), filter)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}

	out := cmd.OutOrStdout()
	if historyFlags.format == "json" {
		enc := json.NewEncoder(out)
		for _, run := range runs {
			if err := enc.Encode(run); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tFILE\tDIAGNOSTICS\tDURATION\tRULES")
	for _, run := range runs {
		rules := formatRuleCounts(run.RuleCounts)
		if run.ParseError != "" {
			rules = "parse error: " + run.ParseError
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.File,
			run.Diagnostics,
			run.Duration.Round(time.Microsecond),
			rules,
		)
	}
	return tw.Flush()
}

// formatRuleCounts renders counts as "rule=n" pairs sorted by rule.
func formatRuleCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	store, retention, err := openHistory()
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}
	defer store.Close()

	if historyFlags.olderThan >= 0 {
		retention = historyFlags.olderThan
	}
	if retention == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "retention disabled, nothing pruned")
		return nil
	}

	deleted, err := history.NewPruner(store, retention).Prune(commandContext(cmd))
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d runs older than %d days\n", deleted, retention)
	return nil
}
