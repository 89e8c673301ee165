package metrics

import (
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"
)

// maxLatencies bounds the latency window kept for percentile calculation.
const maxLatencies = 1000

type Metrics struct {
	mutex       sync.RWMutex
	attempts    int64
	trials      int64
	outcomes    map[string]int64
	statusCodes map[int]int64
	latencies   []time.Duration
	reachable   bool
	startTime   time.Time
}

type Snapshot struct {
	Attempts    int64            `json:"attempts"`
	Trials      int64            `json:"trials"`
	Reachable   bool             `json:"reachable"`
	Outcomes    map[string]int64 `json:"outcomes"`
	StatusCodes map[int]int64    `json:"status_codes"`
	AvgLatency  time.Duration    `json:"avg_latency"`
	P50Latency  time.Duration    `json:"p50_latency"`
	P95Latency  time.Duration    `json:"p95_latency"`
	P99Latency  time.Duration    `json:"p99_latency"`
	Elapsed     time.Duration    `json:"elapsed"`
}

// RecordAttempt records one HTTP attempt. statusCode is zero when the
// request failed before a response was received.
func (m *Metrics) RecordAttempt(outcome string, duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.attempts++
	m.outcomes[outcome]++

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > maxLatencies {
		m.latencies = m.latencies[1:]
	}

	if statusCode != 0 {
		m.statusCodes[statusCode]++
	}
}

// RecordTrial counts an attempt against the retry budget.
func (m *Metrics) RecordTrial() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.trials++
}

func (m *Metrics) SetReachable(reachable bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reachable = reachable
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Attempts:    m.attempts,
		Trials:      m.trials,
		Reachable:   m.reachable,
		Outcomes:    make(map[string]int64, len(m.outcomes)),
		StatusCodes: make(map[int]int64, len(m.statusCodes)),
		Elapsed:     time.Since(m.startTime),
	}

	for outcome, n := range m.outcomes {
		snap.Outcomes[outcome] = n
	}
	for code, n := range m.statusCodes {
		snap.StatusCodes[code] = n
	}

	if len(m.latencies) > 0 {
		sorted := make([]time.Duration, len(m.latencies))
		copy(sorted, m.latencies)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.AvgLatency = average(sorted)
		snap.P50Latency = percentile(sorted, 0.50)
		snap.P95Latency = percentile(sorted, 0.95)
		snap.P99Latency = percentile(sorted, 0.99)
	}

	return snap
}

// LogValue renders the snapshot as a flat slog group.
func (s Snapshot) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Bool("reachable", s.Reachable),
		slog.Int64("attempts", s.Attempts),
		slog.Int64("trials", s.Trials),
		slog.Duration("elapsed", s.Elapsed),
		slog.Duration("avg_latency", s.AvgLatency),
		slog.Duration("p95_latency", s.P95Latency),
	}

	outcomes := make([]string, 0, len(s.Outcomes))
	for outcome := range s.Outcomes {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)
	for _, outcome := range outcomes {
		attrs = append(attrs, slog.Int64("outcome."+outcome, s.Outcomes[outcome]))
	}

	codes := make([]int, 0, len(s.StatusCodes))
	for code := range s.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		attrs = append(attrs, slog.Int64("status."+strconv.Itoa(code), s.StatusCodes[code]))
	}

	return slog.GroupValue(attrs...)
}

func NewMetrics() *Metrics {
	return &Metrics{
		outcomes:    make(map[string]int64),
		statusCodes: make(map[int]int64),
		startTime:   time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
