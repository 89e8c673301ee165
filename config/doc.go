// Package config loads the probe configuration from INPUT_* environment
// variables, an optional ping-url.yaml file and command-line flags, then
// validates it before anything else runs.
package config
