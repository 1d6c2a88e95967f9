package reconcile

import "brother-bridge/brotherql"

// Result represents the reconciliation output for a single printer,
// keyed by its usb:// target address.
type Result struct {
	// Key is the printer's target address.
	Key string `json:"key"`

	// Product is the USB product string, when the device reported one.
	Product string `json:"product,omitempty"`

	// Registered indicates the printer exists in the machine registry.
	Registered bool `json:"registered"`

	// Attached indicates the printer is present on the USB bus.
	Attached bool `json:"attached"`

	// MachineID is set for registered printers.
	MachineID string `json:"machine_id,omitempty"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionRegister adds an attached but unregistered printer to the
	// registry, disabled, so an operator finishes the configuration.
	ActionRegister ActionType = "register"

	// ActionFlagVanished disables a registered USB machine whose device
	// is no longer attached.
	ActionFlagVanished ActionType = "flag_vanished"
)

// Action represents a planned mutation. Plans are read-only; nothing
// happens until Apply is called with the plan.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the printer target address.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// MachineID is the affected registry entry, for flag actions.
	MachineID string `json:"machine_id,omitempty"`

	// Printer carries the discovered device for register actions.
	Printer *brotherql.USBPrinter `json:"-"`
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	// Results contains per-printer reconciliation data.
	Results []Result `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// TotalPrinters is the number of unique USB printers seen across
	// the registry and the bus.
	TotalPrinters int `json:"total_printers"`

	// Unregistered counts attached printers missing from the registry.
	Unregistered int `json:"unregistered"`

	// Vanished counts registered printers missing from the bus.
	Vanished int `json:"vanished"`
}
