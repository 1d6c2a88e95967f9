package machines

import "brother-bridge/brotherql"

// Setting describes one user-facing machine setting: what the host
// platform needs to render a settings form without knowing the driver.
type Setting struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // string, int, bool or choice
	Choices     []string `json:"choices,omitempty"`
	Default     any      `json:"default"`
}

// Schema returns the settings a machine accepts. Choices for model and
// media come straight from the printer-control tables so the form can
// never offer something the driver would reject.
func Schema() []Setting {
	return []Setting{
		{
			Key:         "model",
			Label:       "Printer Model",
			Description: "Brother printer model",
			Type:        "choice",
			Choices:     brotherql.Models(),
			Default:     "PT-P750W",
		},
		{
			Key:         "media",
			Label:       "Label Media",
			Description: "Label media loaded in the printer",
			Type:        "choice",
			Choices:     brotherql.Labels(),
			Default:     "12",
		},
		{
			Key:         "target",
			Label:       "Printer Address",
			Description: "tcp://host[:port], usb://vid:pid[/serial] or file:///dev/usb/lp0",
			Type:        "string",
			Default:     "",
		},
		{
			Key:         "rotation",
			Label:       "Rotation",
			Description: "Clockwise rotation applied to the label image before printing",
			Type:        "choice",
			Choices:     []string{"0", "90", "180", "270"},
			Default:     "0",
		},
		{
			Key:         "auto_cut",
			Label:       "Auto Cut",
			Description: "Cut each label after printing (cutter models only)",
			Type:        "bool",
			Default:     true,
		},
		{
			Key:         "high_quality",
			Label:       "High Quality",
			Description: "Prefer print quality over speed (600 dpi where supported)",
			Type:        "bool",
			Default:     true,
		},
		{
			Key:         "compress",
			Label:       "Compression",
			Description: "Compress raster data before transfer (forced on for PT-P750W/PT-P900W)",
			Type:        "bool",
			Default:     false,
		},
		{
			Key:         "threshold",
			Label:       "Threshold",
			Description: "Luminance cutoff (0-255) for monochrome conversion",
			Type:        "int",
			Default:     int(brotherql.DefaultThreshold),
		},
		{
			Key:         "enabled",
			Label:       "Enabled",
			Description: "Accept print jobs on this machine",
			Type:        "bool",
			Default:     true,
		},
	}
}
