// Package metrics keeps statistics about a single probe run.
//
// Every HTTP attempt is recorded with its outcome label, latency and status
// code (zero when no response arrived). Attempts that consumed part of the
// retry budget are counted separately as trials. A Snapshot summarizes the run:
//   - Attempt and trial counts
//   - Outcome counts per label
//   - HTTP status code distribution
//   - Latency average and percentiles (P50, P95, P99)
//   - Elapsed time and the final verdict
//
// Example usage:
//
//	m := metrics.NewMetrics()
//	m.RecordAttempt("connection_failure", 12*time.Millisecond, 0)
//	m.RecordTrial()
//	m.RecordAttempt("reachable", 8*time.Millisecond, 200)
//	m.SetReachable(true)
//
//	logger.Info("Probe summary", slog.Any("summary", m.Snapshot()))
package metrics
