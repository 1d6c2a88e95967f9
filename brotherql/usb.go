package brotherql

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

// BrotherVendorID is the USB vendor id shared by all Brother printers.
const BrotherVendorID = 0x04F9

// usbBackend sends jobs to a printer attached over USB.
type usbBackend struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	intf  *gousb.Interface
	done  func()
	outEp *gousb.OutEndpoint
}

func openUSB(t Target) (*usbBackend, error) {
	ctx := gousb.NewContext()

	dev, err := findDevice(ctx, t)
	if err != nil {
		ctx.Close()
		return nil, err
	}

	// The kernel usblp driver usually claims the printer interface.
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("failed to detach kernel driver: %w", err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("failed to claim printer interface: %w", err)
	}

	outEp, err := findOutEndpoint(intf)
	if err != nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, err
	}

	return &usbBackend{ctx: ctx, dev: dev, intf: intf, done: done, outEp: outEp}, nil
}

func findDevice(ctx *gousb.Context, t Target) (*gousb.Device, error) {
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(t.VendorID) && desc.Product == gousb.ID(t.ProductID)
	})
	if err != nil && len(devs) == 0 {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	var match *gousb.Device
	for _, dev := range devs {
		if match != nil {
			dev.Close()
			continue
		}
		if t.Serial != "" {
			serial, _ := dev.SerialNumber()
			if serial != t.Serial {
				dev.Close()
				continue
			}
		}
		match = dev
	}

	if match == nil {
		return nil, fmt.Errorf("USB printer %s not found", t)
	}
	return match, nil
}

func findOutEndpoint(intf *gousb.Interface) (*gousb.OutEndpoint, error) {
	for _, ep := range intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionOut {
			return intf.OutEndpoint(ep.Number)
		}
	}
	return nil, fmt.Errorf("printer interface has no OUT endpoint")
}

func (b *usbBackend) Send(ctx context.Context, data []byte) error {
	stream := data
	for len(stream) > 0 {
		n, err := b.outEp.WriteContext(ctx, stream)
		if err != nil {
			return fmt.Errorf("failed to send print data over USB: %w", err)
		}
		stream = stream[n:]
	}
	return nil
}

func (b *usbBackend) Close() error {
	b.done()
	err := b.dev.Close()
	if cerr := b.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}

// USBPrinter describes a Brother printer found on the USB bus.
type USBPrinter struct {
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
	Serial    string `json:"serial,omitempty"`
	Product   string `json:"product,omitempty"`
}

// Target returns the printer address for the discovered device.
func (p USBPrinter) Target() string {
	t := Target{Scheme: "usb", VendorID: p.VendorID, ProductID: p.ProductID, Serial: p.Serial}
	return t.String()
}

// DiscoverUSB enumerates Brother devices attached to the USB bus.
func DiscoverUSB() ([]USBPrinter, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(BrotherVendorID)
	})
	if err != nil && len(devs) == 0 {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	var printers []USBPrinter
	for _, dev := range devs {
		desc := dev.Desc
		serial, _ := dev.SerialNumber()
		product, _ := dev.Product()
		printers = append(printers, USBPrinter{
			VendorID:  uint16(desc.Vendor),
			ProductID: uint16(desc.Product),
			Serial:    serial,
			Product:   product,
		})
		dev.Close()
	}
	return printers, nil
}
