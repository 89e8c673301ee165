// Package prober implements the reachability probe: a bounded retry loop
// around a single HTTP GET.
//
// A probe succeeds as soon as the target answers with exactly 200 OK. Every
// other outcome (a connection failure, a malformed URL, or a non-200 status)
// consumes one trial and is followed by a fixed delay. Errors that fit none of
// these kinds end the probe immediately and are returned to the caller.
//
// Usage:
//
//	p := prober.New(prober.Config{
//		URL:       "http://localhost:8080/health",
//		Delay:     5 * time.Second,
//		MaxTrials: 10,
//		Timeout:   10 * time.Second,
//	}, logger)
//
//	reachable, err := p.Probe(ctx)
package prober
