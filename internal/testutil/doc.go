// Package testutil provides small helpers shared by tests: canned guards,
// recording handlers and a compact way to declare throwaway units.
package testutil
