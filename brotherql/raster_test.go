package brotherql_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"brother-bridge/brotherql"

	"github.com/stretchr/testify/assert"
)

// labelImage builds a white image of the given size with a black square
// in the top-left corner.
func labelImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 0xFF})
		}
	}
	for y := 0; y < 10 && y < h; y++ {
		for x := 0; x < 10 && x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 0x00})
		}
	}
	return img
}

func TestConvert(t *testing.T) {
	model, err := brotherql.ModelByName("QL-820NWB")
	assert.NoError(t, err)
	label, err := brotherql.LabelByID("62")
	assert.NoError(t, err)

	img := labelImage(label.DotsPrintable, 300)

	data, err := brotherql.Convert(img, brotherql.ConvertOptions{
		Model:     model,
		Label:     label,
		Threshold: brotherql.DefaultThreshold,
		AutoCut:   true,
	})
	assert.NoError(t, err)

	// Starts with the 200 byte invalidate block followed by initialize.
	assert.True(t, len(data) > 202)
	assert.Equal(t, make([]byte, 200), data[:200])
	assert.Equal(t, []byte{0x1B, 0x40}, data[200:202])

	// Contains the media command with 62mm endless media and the
	// raster line count.
	media := []byte{0x1B, 0x69, 0x7A, 0x86, 0x0A, 62, 0, 0x2C, 0x01, 0x00, 0x00, 0x00, 0x00}
	assert.True(t, bytes.Contains(data, media), "media command not found")

	// Auto-cut enabled plus cut-every-1.
	assert.True(t, bytes.Contains(data, []byte{0x1B, 0x69, 0x4D, 0x40}))
	assert.True(t, bytes.Contains(data, []byte{0x1B, 0x69, 0x41, 0x01}))

	// One raster row per image line, uncompressed QL framing.
	assert.Equal(t, 300, bytes.Count(data, []byte{0x67, 0x00, byte(model.RasterBytes)}))

	// Ends with print-with-feeding.
	assert.Equal(t, byte(0x1A), data[len(data)-1])
}

func TestConvertRotation(t *testing.T) {
	model, _ := brotherql.ModelByName("QL-700")
	label, _ := brotherql.LabelByID("29")

	// Landscape image that only fits after a 90 degree rotation.
	img := labelImage(200, label.DotsPrintable)

	_, err := brotherql.Convert(img, brotherql.ConvertOptions{Model: model, Label: label})
	assert.Error(t, err)

	data, err := brotherql.Convert(img, brotherql.ConvertOptions{Model: model, Label: label, Rotate: 90})
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = brotherql.Convert(img, brotherql.ConvertOptions{Model: model, Label: label, Rotate: 45})
	assert.ErrorContains(t, err, "invalid rotation")
}

func TestConvertDieCutLength(t *testing.T) {
	model, _ := brotherql.ModelByName("QL-700")
	label, _ := brotherql.LabelByID("62x29")

	_, err := brotherql.Convert(labelImage(label.DotsPrintable, 100), brotherql.ConvertOptions{Model: model, Label: label})
	assert.ErrorContains(t, err, "does not match length")

	data, err := brotherql.Convert(labelImage(label.DotsPrintable, label.DotsLength), brotherql.ConvertOptions{Model: model, Label: label})
	assert.NoError(t, err)

	// Die-cut media command carries the length field and its valid flag.
	media := []byte{0x1B, 0x69, 0x7A, 0x8E, 0x0B, 62, 29}
	assert.True(t, bytes.Contains(data, media), "die-cut media command not found")
}

func TestConvertCompressionForced(t *testing.T) {
	model, _ := brotherql.ModelByName("PT-P750W")
	label, _ := brotherql.LabelByID("12")

	// Compression not requested, but the model requires it.
	data, err := brotherql.Convert(labelImage(label.DotsPrintable, 200), brotherql.ConvertOptions{
		Model: model,
		Label: label,
	})
	assert.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{0x4D, 0x02}), "compression mode not enabled")

	// PT raster framing uses 'G' with a two byte length.
	assert.True(t, bytes.Contains(data, []byte{0x47}))
	assert.False(t, bytes.Contains(data, []byte{0x67, 0x00, byte(model.RasterBytes)}))
}

func TestConvertThresholdHonored(t *testing.T) {
	model, _ := brotherql.ModelByName("QL-820NWB")
	label, _ := brotherql.LabelByID("62")

	gray := image.NewGray(image.Rect(0, 0, label.DotsPrintable, 300))
	white := image.NewGray(image.Rect(0, 0, label.DotsPrintable, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < label.DotsPrintable; x++ {
			gray.SetGray(x, y, color.Gray{Y: 100})
			white.SetGray(x, y, color.Gray{Y: 0xFF})
		}
	}

	// A zero cutoff leaves every pixel white; the stream must match a
	// blank label byte for byte, not turn the gray area black.
	got, err := brotherql.Convert(gray, brotherql.ConvertOptions{Model: model, Label: label})
	assert.NoError(t, err)
	blank, err := brotherql.Convert(white, brotherql.ConvertOptions{Model: model, Label: label, Threshold: brotherql.DefaultThreshold})
	assert.NoError(t, err)
	assert.Equal(t, blank, got)

	// With the default cutoff the same gray prints black.
	dark, err := brotherql.Convert(gray, brotherql.ConvertOptions{Model: model, Label: label, Threshold: brotherql.DefaultThreshold})
	assert.NoError(t, err)
	assert.NotEqual(t, blank, dark)
}

func TestConvertValidation(t *testing.T) {
	model, _ := brotherql.ModelByName("QL-700")
	label, _ := brotherql.LabelByID("62")

	tests := []struct {
		name string
		img  image.Image
		opts brotherql.ConvertOptions
		want string
	}{
		{"NoModel", labelImage(696, 300), brotherql.ConvertOptions{Label: label}, "model not set"},
		{"NoLabel", labelImage(696, 300), brotherql.ConvertOptions{Model: model}, "media not set"},
		{"NilImage", nil, brotherql.ConvertOptions{Model: model, Label: label}, "empty"},
		{"WrongWidth", labelImage(100, 300), brotherql.ConvertOptions{Model: model, Label: label}, "printable width"},
		{"TooShort", labelImage(696, 10), brotherql.ConvertOptions{Model: model, Label: label}, "outside supported range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := brotherql.Convert(tt.img, tt.opts)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
