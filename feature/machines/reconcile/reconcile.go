package reconcile

import (
	"context"
	"fmt"
	"strings"

	"brother-bridge/brotherql"
	"brother-bridge/feature/machines/models"
)

// Registry is the slice of the machine service the planner needs.
type Registry interface {
	List(ctx context.Context) ([]models.Machine, error)
	Create(ctx context.Context, req models.MachineRequest) (*models.Machine, error)
	Update(ctx context.Context, idOrSlug string, req models.MachineRequest) (*models.Machine, error)
}

// Planner compares the machine registry against the USB bus.
type Planner struct {
	registry Registry
	discover func() ([]brotherql.USBPrinter, error)
}

// NewPlanner creates a planner. discover defaults to the USB bus scan.
func NewPlanner(registry Registry, discover func() ([]brotherql.USBPrinter, error)) *Planner {
	if discover == nil {
		discover = brotherql.DiscoverUSB
	}
	return &Planner{registry: registry, discover: discover}
}

// Plan lists registered machines and attached printers and builds the
// reconcile plan. It mutates nothing.
func (p *Planner) Plan(ctx context.Context) (*Plan, error) {
	registered, err := p.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	attached, err := p.discover()
	if err != nil {
		return nil, fmt.Errorf("USB discovery failed: %w", err)
	}

	return BuildPlan(registered, attached), nil
}

// BuildPlan correlates registry entries with attached printers. Machines
// with non-USB targets are outside discovery's reach and are skipped.
func BuildPlan(registered []models.Machine, attached []brotherql.USBPrinter) *Plan {
	plan := &Plan{}

	type regEntry struct {
		machine models.Machine
		target  brotherql.Target
		matched bool
	}

	var usbMachines []*regEntry
	for _, m := range registered {
		t, err := brotherql.ParseTarget(m.Target)
		if err != nil || t.Scheme != "usb" {
			continue
		}
		usbMachines = append(usbMachines, &regEntry{machine: m, target: t})
	}

	for i := range attached {
		printer := attached[i]
		result := Result{
			Key:      printer.Target(),
			Product:  printer.Product,
			Attached: true,
		}

		for _, entry := range usbMachines {
			if !matches(entry.target, printer) {
				continue
			}
			entry.matched = true
			result.Registered = true
			result.MachineID = entry.machine.ID
			break
		}

		if !result.Registered {
			plan.Summary.Unregistered++
			plan.Actions = append(plan.Actions, Action{
				Type:    ActionRegister,
				Key:     result.Key,
				Reason:  "attached printer is not in the registry",
				Printer: &printer,
			})
		}

		plan.Results = append(plan.Results, result)
	}

	for _, entry := range usbMachines {
		if entry.matched {
			continue
		}
		plan.Summary.Vanished++
		plan.Results = append(plan.Results, Result{
			Key:        entry.machine.Target,
			Registered: true,
			Attached:   false,
			MachineID:  entry.machine.ID,
		})
		if entry.machine.Enabled {
			plan.Actions = append(plan.Actions, Action{
				Type:      ActionFlagVanished,
				Key:       entry.machine.Target,
				Reason:    "registered printer is not attached",
				MachineID: entry.machine.ID,
			})
		}
	}

	plan.Summary.TotalPrinters = len(plan.Results)
	return plan
}

// Apply executes the plan's actions: unregistered printers are added
// disabled, vanished machines are disabled. Returns the number of
// actions applied.
func (p *Planner) Apply(ctx context.Context, plan *Plan) (int, error) {
	applied := 0
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionRegister:
			if action.Printer == nil {
				continue
			}
			req := models.MachineRequest{
				Name: registerName(*action.Printer),
				Settings: map[string]any{
					"model":   guessModel(action.Printer.Product),
					"target":  action.Printer.Target(),
					"enabled": false,
				},
			}
			if _, err := p.registry.Create(ctx, req); err != nil {
				return applied, fmt.Errorf("failed to register %s: %w", action.Key, err)
			}

		case ActionFlagVanished:
			req := models.MachineRequest{
				Settings: map[string]any{"enabled": false},
			}
			if _, err := p.registry.Update(ctx, action.MachineID, req); err != nil {
				return applied, fmt.Errorf("failed to disable %s: %w", action.Key, err)
			}

		default:
			continue
		}
		applied++
	}
	return applied, nil
}

func matches(t brotherql.Target, p brotherql.USBPrinter) bool {
	if t.VendorID != p.VendorID || t.ProductID != p.ProductID {
		return false
	}
	if t.Serial != "" && p.Serial != "" && t.Serial != p.Serial {
		return false
	}
	return true
}

// guessModel maps a USB product string onto a supported model name.
// Falls back to the schema default when the device name is unknown.
func guessModel(product string) string {
	upper := strings.ToUpper(product)
	for _, name := range brotherql.Models() {
		if strings.Contains(upper, name) {
			return name
		}
	}
	return "PT-P750W"
}

func registerName(p brotherql.USBPrinter) string {
	name := p.Product
	if name == "" {
		name = fmt.Sprintf("Brother %04x:%04x", p.VendorID, p.ProductID)
	}
	if p.Serial != "" {
		name += " " + p.Serial
	}
	return name
}
