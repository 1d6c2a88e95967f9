package checks

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"brother-bridge/brotherql"
)

// DiscoverFunc enumerates attached USB printers. Split out so checks can
// run without a USB stack.
type DiscoverFunc func() ([]brotherql.USBPrinter, error)

// Printer verifies a machine's target is reachable without printing:
// a TCP dial for network printers, device presence for USB and file
// targets. It does not claim the device, so a busy printer still passes.
func Printer(ctx context.Context, target string, discover DiscoverFunc) error {
	t, err := brotherql.ParseTarget(target)
	if err != nil {
		return err
	}

	switch t.Scheme {
	case "tcp":
		d := net.Dialer{Timeout: 5 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", t.Host, t.Port))
		if err != nil {
			return fmt.Errorf("printer unreachable: %w", err)
		}
		return conn.Close()

	case "file":
		if _, err := os.Stat(t.Path); err != nil {
			return fmt.Errorf("device not present: %w", err)
		}
		return nil

	case "usb":
		if discover == nil {
			discover = brotherql.DiscoverUSB
		}
		printers, err := discover()
		if err != nil {
			return err
		}
		for _, p := range printers {
			if p.VendorID != t.VendorID || p.ProductID != t.ProductID {
				continue
			}
			if t.Serial == "" || p.Serial == t.Serial {
				return nil
			}
		}
		return fmt.Errorf("USB printer %s not attached", t)

	default:
		return fmt.Errorf("unsupported scheme %q", t.Scheme)
	}
}
