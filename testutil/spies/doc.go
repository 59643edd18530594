// Package spies records what code under test reports to its logger, metrics collector and tracer.
// All spies are safe for concurrent use.
package spies
