// Package reconcile compares two sources of truth about USB printers:
// the machine registry and the devices actually attached to the bus.
//
// Plan builds a read-only report with the actions needed to bring the
// registry in line (register attached-but-unknown printers, disable
// registered-but-vanished ones). Nothing mutates until Apply runs the
// plan explicitly; the CLI and HTTP surfaces expose the plan first so
// the operator sees what would change.
package reconcile
