package brotherql

import (
	"fmt"
	"sort"
)

// Model describes the raster capabilities of one printer model.
// The values mirror the tables shipped with the reference Brother
// raster implementations; the printer rejects jobs that do not match.
type Model struct {
	// Name is the model identifier as printed on the device (e.g. "QL-820NWB").
	Name string

	// RasterBytes is the number of bytes in one raster row.
	// QL narrow models use 90 (720 pins), wide QL models 162 (1296 pins),
	// PT models 16 or 70 depending on the head.
	RasterBytes int

	// MinLengthDots and MaxLengthDots bound the printable length of a job.
	MinLengthDots int
	MaxLengthDots int

	// Compression reports whether the model accepts TIFF packbits
	// compressed raster data.
	Compression bool

	// ModeSetting reports whether the model requires the explicit
	// switch-to-raster command before a job.
	ModeSetting bool

	// Cutting reports whether the model has an automatic cutter.
	Cutting bool

	// ExpandedMode reports whether the model understands the expanded
	// mode command (cut-at-end, 600 dpi flags).
	ExpandedMode bool

	// HighQuality reports whether the model supports 600 dpi printing.
	HighQuality bool

	// PTRaster selects the PT raster row framing ('G' with a two byte
	// length) instead of the QL framing ('g', 0x00, one byte length).
	PTRaster bool
}

// Pins returns the total number of print head pins.
func (m Model) Pins() int {
	return m.RasterBytes * 8
}

// models is keyed by name. Populated in init from the table below.
var models = map[string]Model{}

// allModels lists every supported printer, roughly in release order.
var allModels = []Model{
	{Name: "QL-500", RasterBytes: 90, MinLengthDots: 295, MaxLengthDots: 11811, ModeSetting: true},
	{Name: "QL-550", RasterBytes: 90, MinLengthDots: 295, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-560", RasterBytes: 90, MinLengthDots: 295, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-570", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-580N", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-600", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-650TD", RasterBytes: 90, MinLengthDots: 295, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-700", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-710W", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-720NW", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true},
	{Name: "QL-800", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true, ExpandedMode: true},
	{Name: "QL-810W", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true, ExpandedMode: true},
	{Name: "QL-820NWB", RasterBytes: 90, MinLengthDots: 150, MaxLengthDots: 11811, ModeSetting: true, Cutting: true, ExpandedMode: true},
	{Name: "QL-1050", RasterBytes: 162, MinLengthDots: 295, MaxLengthDots: 35433, ModeSetting: true, Cutting: true},
	{Name: "QL-1060N", RasterBytes: 162, MinLengthDots: 295, MaxLengthDots: 35433, ModeSetting: true, Cutting: true},
	{Name: "QL-1100", RasterBytes: 162, MinLengthDots: 301, MaxLengthDots: 35434, ModeSetting: true, Cutting: true, ExpandedMode: true},
	{Name: "QL-1110NWB", RasterBytes: 162, MinLengthDots: 301, MaxLengthDots: 35434, ModeSetting: true, Cutting: true, ExpandedMode: true},
	{Name: "QL-1115NWB", RasterBytes: 162, MinLengthDots: 301, MaxLengthDots: 35434, ModeSetting: true, Cutting: true, ExpandedMode: true},
	{Name: "PT-P750W", RasterBytes: 16, MinLengthDots: 31, MaxLengthDots: 14172, Compression: true, Cutting: true, PTRaster: true},
	{Name: "PT-P900W", RasterBytes: 70, MinLengthDots: 57, MaxLengthDots: 28346, Compression: true, Cutting: true, ExpandedMode: true, HighQuality: true, PTRaster: true},
	{Name: "PT-P950NW", RasterBytes: 70, MinLengthDots: 57, MaxLengthDots: 28346, Compression: true, Cutting: true, ExpandedMode: true, HighQuality: true, PTRaster: true},
}

func init() {
	for _, m := range allModels {
		models[m.Name] = m
	}
}

// Models returns all supported model names, sorted.
func Models() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelByName looks up a printer model by its exact name.
func ModelByName(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return Model{}, fmt.Errorf("unsupported printer model %q", name)
	}
	return m, nil
}
