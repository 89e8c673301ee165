package actions

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-githubactions"

	"github.com/angeloszaimis/ping-url/internal/metrics"
)

const (
	OutputReachable = "reachable"
	OutputAttempts  = "attempts"
	OutputTrials    = "trials"
)

// Reporter writes probe results through the workflow command files.
type Reporter struct {
	action *githubactions.Action
	logger *slog.Logger
}

func NewReporter(action *githubactions.Action, logger *slog.Logger) *Reporter {
	return &Reporter{
		action: action,
		logger: logger,
	}
}

// InWorkflow reports whether the process runs as a GitHub Actions step.
func (r *Reporter) InWorkflow() bool {
	return r.action.Getenv("GITHUB_ACTIONS") == "true"
}

// Report publishes the verdict for url. Each channel is skipped when the
// runner did not provide it.
func (r *Reporter) Report(url string, snap metrics.Snapshot) {
	if r.action.Getenv("GITHUB_OUTPUT") != "" {
		r.action.SetOutput(OutputReachable, strconv.FormatBool(snap.Reachable))
		r.action.SetOutput(OutputAttempts, strconv.FormatInt(snap.Attempts, 10))
		r.action.SetOutput(OutputTrials, strconv.FormatInt(snap.Trials, 10))
		r.logger.Debug("Published step outputs", slog.Bool("reachable", snap.Reachable))
	}

	if r.action.Getenv("GITHUB_STEP_SUMMARY") != "" {
		r.action.AddStepSummary(summary(url, snap))
	}

	if r.InWorkflow() && !snap.Reachable {
		r.action.Errorf("Website %s is not reachable after %d trials", url, snap.Trials)
	}
}

func summary(url string, snap metrics.Snapshot) string {
	verdict := ":x: not reachable"
	if snap.Reachable {
		verdict = ":white_check_mark: reachable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Ping %s\n\n", url)
	b.WriteString("| Verdict | Attempts | Trials | Avg latency | Elapsed |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %d | %d | %s | %s |\n",
		verdict, snap.Attempts, snap.Trials, snap.AvgLatency, snap.Elapsed.Round(time.Millisecond))

	return b.String()
}
