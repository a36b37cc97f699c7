// Package history keeps a record of lint runs in SQLite.
//
// Each run stores its id, the linted file, start time, duration, the
// number of diagnostics, a per-rule breakdown and any parse failure.
// Runs older than history.retention_days are removed by a Pruner, which a
// Scheduler can run on the history.prune_schedule cron expression:
//
//	store, err := history.Open(history.DefaultStoreConfig("data/blocklint.db"))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	scheduler := history.NewScheduler(history.NewPruner(store, 30), "0 3 * * *")
//	if err := scheduler.Start(ctx); err != nil {
//		return err
//	}
//
// The driver is the cgo-free modernc.org/sqlite.
package history
