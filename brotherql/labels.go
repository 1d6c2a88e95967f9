package brotherql

import (
	"fmt"
	"sort"
)

// LabelKind distinguishes the physical label stock families.
type LabelKind string

const (
	// KindEndless is continuous tape cut to the job length.
	KindEndless LabelKind = "endless"
	// KindDieCut is pre-cut rectangular labels of a fixed size.
	KindDieCut LabelKind = "die-cut"
	// KindRound is pre-cut round labels.
	KindRound LabelKind = "round"
)

// Label describes one label media type as reported by the printer.
type Label struct {
	// ID is the media identifier used in settings (e.g. "62" or "29x90").
	ID string

	// Name is a human readable description.
	Name string

	Kind LabelKind

	// TapeWidthMM and TapeLengthMM are the physical dimensions reported
	// in the media command. Length is zero for endless tape.
	TapeWidthMM  int
	TapeLengthMM int

	// DotsPrintable is the width of the printable area in dots. Label
	// images must match this width exactly (after rotation).
	DotsPrintable int

	// DotsLength is the fixed print length for die-cut media, zero for
	// endless tape.
	DotsLength int

	// OffsetDots shifts the raster data away from the right edge of the
	// head so the printable area lines up with the tape.
	OffsetDots int

	// FeedMarginDots is fed before and after the job on endless tape.
	FeedMarginDots int
}

var labels = map[string]Label{}

var allLabels = []Label{
	{ID: "12", Name: "12mm endless", Kind: KindEndless, TapeWidthMM: 12, DotsPrintable: 106, OffsetDots: 29, FeedMarginDots: 35},
	{ID: "29", Name: "29mm endless", Kind: KindEndless, TapeWidthMM: 29, DotsPrintable: 306, OffsetDots: 6, FeedMarginDots: 35},
	{ID: "38", Name: "38mm endless", Kind: KindEndless, TapeWidthMM: 38, DotsPrintable: 413, OffsetDots: 12, FeedMarginDots: 35},
	{ID: "50", Name: "50mm endless", Kind: KindEndless, TapeWidthMM: 50, DotsPrintable: 554, OffsetDots: 12, FeedMarginDots: 35},
	{ID: "54", Name: "54mm endless", Kind: KindEndless, TapeWidthMM: 54, DotsPrintable: 590, OffsetDots: 0, FeedMarginDots: 35},
	{ID: "62", Name: "62mm endless", Kind: KindEndless, TapeWidthMM: 62, DotsPrintable: 696, OffsetDots: 12, FeedMarginDots: 35},
	{ID: "62red", Name: "62mm endless (black/red/white)", Kind: KindEndless, TapeWidthMM: 62, DotsPrintable: 696, OffsetDots: 12, FeedMarginDots: 35},
	{ID: "102", Name: "102mm endless", Kind: KindEndless, TapeWidthMM: 102, DotsPrintable: 1164, OffsetDots: 12, FeedMarginDots: 35},
	{ID: "17x54", Name: "17mm x 54mm die-cut", Kind: KindDieCut, TapeWidthMM: 17, TapeLengthMM: 54, DotsPrintable: 165, DotsLength: 566, OffsetDots: 0},
	{ID: "17x87", Name: "17mm x 87mm die-cut", Kind: KindDieCut, TapeWidthMM: 17, TapeLengthMM: 87, DotsPrintable: 165, DotsLength: 956, OffsetDots: 0},
	{ID: "23x23", Name: "23mm x 23mm die-cut", Kind: KindDieCut, TapeWidthMM: 23, TapeLengthMM: 23, DotsPrintable: 202, DotsLength: 202, OffsetDots: 42},
	{ID: "29x42", Name: "29mm x 42mm die-cut", Kind: KindDieCut, TapeWidthMM: 29, TapeLengthMM: 42, DotsPrintable: 306, DotsLength: 425, OffsetDots: 6},
	{ID: "29x90", Name: "29mm x 90mm die-cut", Kind: KindDieCut, TapeWidthMM: 29, TapeLengthMM: 90, DotsPrintable: 306, DotsLength: 991, OffsetDots: 6},
	{ID: "39x90", Name: "38mm x 90mm die-cut", Kind: KindDieCut, TapeWidthMM: 38, TapeLengthMM: 90, DotsPrintable: 413, DotsLength: 991, OffsetDots: 12},
	{ID: "39x48", Name: "39mm x 48mm die-cut", Kind: KindDieCut, TapeWidthMM: 39, TapeLengthMM: 48, DotsPrintable: 425, DotsLength: 495, OffsetDots: 6},
	{ID: "52x29", Name: "52mm x 29mm die-cut", Kind: KindDieCut, TapeWidthMM: 52, TapeLengthMM: 29, DotsPrintable: 578, DotsLength: 271, OffsetDots: 0},
	{ID: "62x29", Name: "62mm x 29mm die-cut", Kind: KindDieCut, TapeWidthMM: 62, TapeLengthMM: 29, DotsPrintable: 696, DotsLength: 271, OffsetDots: 12},
	{ID: "62x100", Name: "62mm x 100mm die-cut", Kind: KindDieCut, TapeWidthMM: 62, TapeLengthMM: 100, DotsPrintable: 696, DotsLength: 1109, OffsetDots: 12},
	{ID: "102x51", Name: "102mm x 51mm die-cut", Kind: KindDieCut, TapeWidthMM: 102, TapeLengthMM: 51, DotsPrintable: 1164, DotsLength: 526, OffsetDots: 12},
	{ID: "102x152", Name: "102mm x 152mm die-cut", Kind: KindDieCut, TapeWidthMM: 102, TapeLengthMM: 152, DotsPrintable: 1164, DotsLength: 1660, OffsetDots: 12},
	{ID: "d12", Name: "12mm round die-cut", Kind: KindRound, TapeWidthMM: 12, TapeLengthMM: 12, DotsPrintable: 94, DotsLength: 94, OffsetDots: 113},
	{ID: "d24", Name: "24mm round die-cut", Kind: KindRound, TapeWidthMM: 24, TapeLengthMM: 24, DotsPrintable: 236, DotsLength: 236, OffsetDots: 42},
	{ID: "d58", Name: "58mm round die-cut", Kind: KindRound, TapeWidthMM: 58, TapeLengthMM: 58, DotsPrintable: 618, DotsLength: 618, OffsetDots: 51},
}

func init() {
	for _, l := range allLabels {
		labels[l.ID] = l
	}
}

// Labels returns all supported media identifiers, sorted.
func Labels() []string {
	ids := make([]string, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllLabels returns the full media table in declaration order.
func AllLabels() []Label {
	out := make([]Label, len(allLabels))
	copy(out, allLabels)
	return out
}

// LabelByID looks up a label media type by its identifier.
func LabelByID(id string) (Label, error) {
	l, ok := labels[id]
	if !ok {
		return Label{}, fmt.Errorf("unsupported label media %q", id)
	}
	return l, nil
}

// mediaTypeByte returns the media type field of the media command.
func (l Label) mediaTypeByte() byte {
	if l.Kind == KindEndless {
		return 0x0A
	}
	return 0x0B
}
