// Package status reports the health of the bridge and its printers.
//
// One endpoint aggregates database reachability, object storage presence
// and per-machine printer reachability. Printer checks are passive: a TCP
// dial or device presence test, never a print.
package status
