// Package actions publishes the probe verdict to GitHub Actions: step
// outputs, a job summary and an error annotation when the target was not
// reachable. Outside of a workflow run it does nothing.
package actions
