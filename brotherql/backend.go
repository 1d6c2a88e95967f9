package brotherql

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Backend delivers a raster command stream to a printer.
type Backend interface {
	// Send transfers the complete command stream. It blocks until the
	// printer has accepted the data (and, where the transport allows,
	// until the job status has been read back).
	Send(ctx context.Context, data []byte) error

	// Close releases the underlying connection or device handle.
	Close() error
}

// Target is a parsed printer address.
type Target struct {
	// Scheme is "tcp", "usb" or "file".
	Scheme string

	// Host and Port for tcp targets.
	Host string
	Port int

	// VendorID, ProductID and Serial for usb targets.
	VendorID  uint16
	ProductID uint16
	Serial    string

	// Path for file targets (e.g. /dev/usb/lp0).
	Path string
}

// DefaultPort is the raw printing port Brother network printers listen on.
const DefaultPort = 9100

// ParseTarget parses a printer address of one of the forms
//
//	tcp://192.168.1.50[:9100]
//	usb://04f9:209b[/000M6Z401370]
//	file:///dev/usb/lp0
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid printer target %q: %w", raw, err)
	}

	switch u.Scheme {
	case "tcp":
		if u.Hostname() == "" {
			return Target{}, fmt.Errorf("invalid printer target %q: missing host", raw)
		}
		port := DefaultPort
		if p := u.Port(); p != "" {
			port, err = strconv.Atoi(p)
			if err != nil || port <= 0 || port > 65535 {
				return Target{}, fmt.Errorf("invalid printer target %q: bad port", raw)
			}
		}
		return Target{Scheme: "tcp", Host: u.Hostname(), Port: port}, nil

	case "usb":
		ids := strings.SplitN(u.Host, ":", 2)
		if len(ids) != 2 {
			return Target{}, fmt.Errorf("invalid printer target %q: expected usb://vid:pid", raw)
		}
		vid, err := strconv.ParseUint(ids[0], 16, 16)
		if err != nil {
			return Target{}, fmt.Errorf("invalid printer target %q: bad vendor id", raw)
		}
		pid, err := strconv.ParseUint(ids[1], 16, 16)
		if err != nil {
			return Target{}, fmt.Errorf("invalid printer target %q: bad product id", raw)
		}
		serial := strings.TrimPrefix(u.Path, "/")
		return Target{Scheme: "usb", VendorID: uint16(vid), ProductID: uint16(pid), Serial: serial}, nil

	case "file":
		if u.Path == "" {
			return Target{}, fmt.Errorf("invalid printer target %q: missing path", raw)
		}
		return Target{Scheme: "file", Path: u.Path}, nil

	default:
		return Target{}, fmt.Errorf("invalid printer target %q: unsupported scheme %q", raw, u.Scheme)
	}
}

// String renders the target back into its address form.
func (t Target) String() string {
	switch t.Scheme {
	case "tcp":
		return fmt.Sprintf("tcp://%s:%d", t.Host, t.Port)
	case "usb":
		s := fmt.Sprintf("usb://%04x:%04x", t.VendorID, t.ProductID)
		if t.Serial != "" {
			s += "/" + t.Serial
		}
		return s
	case "file":
		return "file://" + t.Path
	default:
		return ""
	}
}

// OpenBackend parses the target address and opens the matching transport.
func OpenBackend(ctx context.Context, target string) (Backend, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	switch t.Scheme {
	case "tcp":
		return openNetwork(ctx, t)
	case "usb":
		return openUSB(t)
	case "file":
		return openFile(t)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", t.Scheme)
	}
}
