// Package stats provides percentile and summary statistics over
// float64 samples. All functions are pure: inputs are never mutated
// and sorting happens on a private copy.
package stats
