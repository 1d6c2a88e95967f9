package brotherql

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DefaultThreshold is the luminance cutoff offered as the settings
// default, roughly 70% of full luminance. Pixels darker than the cutoff
// print black.
const DefaultThreshold = 0xB2

// ConvertOptions controls the image to raster conversion. Model and
// Label are mandatory; everything else maps 1:1 onto a machine setting.
type ConvertOptions struct {
	Model Model
	Label Label

	// Rotate turns the image clockwise before rasterization.
	// Valid values are 0, 90, 180 and 270.
	Rotate int

	// Threshold is the luminance cutoff for monochrome conversion,
	// honored as given. Zero turns every pixel white.
	Threshold uint8

	// AutoCut cuts each label after printing (cutter models only).
	AutoCut bool

	// HighQuality selects 600 dpi printing on models that support it,
	// and the "prefer quality" flag in the media command otherwise.
	HighQuality bool

	// Compress enables TIFF packbits raster compression. Forced on for
	// PT-P750W and PT-P900W which reject uncompressed jobs, ignored on
	// models without compression support.
	Compress bool
}

// compressionForced lists models that only accept compressed raster data.
var compressionForced = map[string]bool{
	"PT-P750W": true,
	"PT-P900W": true,
}

// Convert renders a label image into the printer's raster command stream.
// The image must match the printable area of the label media exactly
// (width, and for die-cut media also length) after rotation is applied.
func Convert(img image.Image, opts ConvertOptions) ([]byte, error) {
	if opts.Model.Name == "" {
		return nil, fmt.Errorf("printer model not set")
	}
	if opts.Label.ID == "" {
		return nil, fmt.Errorf("label media not set")
	}

	switch opts.Rotate {
	case 0, 90, 180, 270:
	default:
		return nil, fmt.Errorf("invalid rotation %d: must be 0, 90, 180 or 270", opts.Rotate)
	}

	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("label image is empty")
	}

	mono := monochrome(rotate(img, opts.Rotate), opts.Threshold)

	width := mono.Bounds().Dx()
	height := mono.Bounds().Dy()

	if width != opts.Label.DotsPrintable {
		return nil, fmt.Errorf("image width %d does not match printable width %d of media %q",
			width, opts.Label.DotsPrintable, opts.Label.ID)
	}
	if opts.Label.DotsLength > 0 && height != opts.Label.DotsLength {
		return nil, fmt.Errorf("image length %d does not match length %d of die-cut media %q",
			height, opts.Label.DotsLength, opts.Label.ID)
	}
	if height < opts.Model.MinLengthDots || height > opts.Model.MaxLengthDots {
		return nil, fmt.Errorf("print length %d dots outside supported range %d-%d of model %s",
			height, opts.Model.MinLengthDots, opts.Model.MaxLengthDots, opts.Model.Name)
	}
	if width > opts.Model.Pins() {
		return nil, fmt.Errorf("media %q is wider than the %d pin head of model %s",
			opts.Label.ID, opts.Model.Pins(), opts.Model.Name)
	}

	compress := opts.Compress || compressionForced[opts.Model.Name]
	if !opts.Model.Compression {
		compress = false
	}

	var buf bytes.Buffer

	// Invalidate clears any partially transferred job in the printer.
	buf.Write(make([]byte, 200))
	// Initialize.
	buf.Write([]byte{0x1B, 0x40})
	// Status information request.
	buf.Write([]byte{0x1B, 0x69, 0x53})

	if opts.Model.ModeSetting {
		// Switch to raster command mode.
		buf.Write([]byte{0x1B, 0x69, 0x61, 0x01})
	}

	writeMediaCommand(&buf, opts, height)

	if opts.Model.Cutting {
		autocut := byte(0x00)
		if opts.AutoCut {
			autocut = 0x40
		}
		buf.Write([]byte{0x1B, 0x69, 0x4D, autocut})
		if opts.AutoCut {
			// Cut after every label.
			buf.Write([]byte{0x1B, 0x69, 0x41, 0x01})
		}
	}

	if opts.Model.ExpandedMode {
		flags := byte(0x08) // cut at end
		if opts.HighQuality && opts.Model.HighQuality {
			flags |= 0x40 // 600 dpi
		}
		buf.Write([]byte{0x1B, 0x69, 0x4B, flags})
	}

	feed := 0
	if opts.Label.Kind == KindEndless {
		feed = opts.Label.FeedMarginDots
	}
	buf.Write([]byte{0x1B, 0x69, 0x64, byte(feed & 0xFF), byte(feed >> 8)})

	if opts.Model.Compression {
		mode := byte(0x00)
		if compress {
			mode = 0x02
		}
		buf.Write([]byte{0x4D, mode})
	}

	writeRasterRows(&buf, mono, opts, compress)

	// Print with feeding.
	buf.WriteByte(0x1A)

	return buf.Bytes(), nil
}

// writeMediaCommand emits the print information command (ESC i z).
func writeMediaCommand(buf *bytes.Buffer, opts ConvertOptions, rasterLines int) {
	// Valid-field flags: recovery, media type, media width.
	flags := byte(0x80 | 0x02 | 0x04)
	if opts.Label.Kind != KindEndless {
		flags |= 0x08 // media length valid
	}
	if opts.HighQuality {
		flags |= 0x40 // prefer print quality
	}

	buf.Write([]byte{
		0x1B, 0x69, 0x7A,
		flags,
		opts.Label.mediaTypeByte(),
		byte(opts.Label.TapeWidthMM),
		byte(opts.Label.TapeLengthMM),
		byte(rasterLines & 0xFF),
		byte((rasterLines >> 8) & 0xFF),
		byte((rasterLines >> 16) & 0xFF),
		byte((rasterLines >> 24) & 0xFF),
		0x00, // first page
		0x00,
	})
}

// writeRasterRows packs the monochrome image into raster rows. The print
// head addresses pins right to left, so rows are mirrored horizontally.
func writeRasterRows(buf *bytes.Buffer, mono *image.Gray, opts ConvertOptions, compress bool) {
	bounds := mono.Bounds()
	width := bounds.Dx()

	// QL heads are wider than the tape; the media table carries the
	// offset from the edge. PT heads match the tape system, so the
	// image is centered instead.
	offset := opts.Label.OffsetDots
	if opts.Model.PTRaster {
		offset = (opts.Model.Pins() - width) / 2
	}
	if offset+width > opts.Model.Pins() {
		offset = opts.Model.Pins() - width
	}

	row := make([]byte, opts.Model.RasterBytes)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mono.GrayAt(x, y).Y != 0 {
				continue // white
			}
			pin := offset + (width - 1 - (x - bounds.Min.X))
			row[pin/8] |= 0x80 >> (pin % 8)
		}

		data := row
		if compress {
			data = packBits(row)
		}

		if opts.Model.PTRaster {
			buf.Write([]byte{0x47, byte(len(data) & 0xFF), byte(len(data) >> 8)})
		} else {
			buf.Write([]byte{0x67, 0x00, byte(len(data))})
		}
		buf.Write(data)
	}
}

// rotate turns the image clockwise by the given multiple of 90 degrees.
func rotate(img image.Image, degrees int) image.Image {
	if degrees == 0 {
		return img
	}

	src := img.Bounds()
	w, h := src.Dx(), src.Dy()

	var dst *image.RGBA
	var aff f64.Aff3
	switch degrees {
	case 90:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		aff = f64.Aff3{0, -1, float64(h), 1, 0, 0}
	case 180:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		aff = f64.Aff3{-1, 0, float64(w), 0, -1, float64(h)}
	case 270:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		aff = f64.Aff3{0, 1, 0, -1, 0, float64(w)}
	}

	xdraw.NearestNeighbor.Transform(dst, aff, img, src, xdraw.Src, nil)
	return dst
}

// monochrome converts to black and white using a luminance threshold.
// White output is 0xFF, black is 0x00.
func monochrome(img image.Image, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if c.Y < threshold {
				out.SetGray(x, y, color.Gray{Y: 0x00})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return out
}
