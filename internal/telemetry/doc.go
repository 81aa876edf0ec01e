// Package telemetry writes structured events as JSON lines to
// <dir>/events.jsonl when enabled.
//
// Events never carry raw user text or tool payloads: only sizes, counts,
// durations, error kinds and the turn ID.
package telemetry
