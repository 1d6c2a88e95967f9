// Package machines owns the printer machine registry.
//
// A machine is one configured label printer: a Brother model, the label
// media loaded in it, its address (network, USB or device node) and the
// conversion settings (rotation, threshold, auto-cut, quality,
// compression). The package exposes CRUD over HTTP plus a settings schema
// endpoint the host platform uses to render its configuration form.
//
// The settings stored here map one-to-one onto the printer-control
// options; BuildOptions performs that mapping and is the single place
// where a machine record turns into a conversion request.
package machines
