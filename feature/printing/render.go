package printing

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	_ "image/jpeg"
	_ "image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DecodeImage reads a PNG or JPEG label image from the request body.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode label image: %w", err)
	}
	return img, nil
}

const renderMargin = 4

// RenderTest composes the built-in test label: machine name, a QR code
// carrying the name, and a Code128 barcode when the media is wide enough.
// Elements that do not fit the requested dimensions are skipped, so the
// same layout works from 12mm tape up to 102mm shipping labels.
func RenderTest(name string, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Border, so a misaligned print is visible at a glance.
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.Black)
		img.Set(x, h-1, color.Black)
	}
	for y := 0; y < h; y++ {
		img.Set(0, y, color.Black)
		img.Set(w-1, y, color.Black)
	}

	top := renderMargin
	if w > len(name)*7+2*renderMargin {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(renderMargin, renderMargin+13),
		}
		d.DrawString(name)
		top += 13 + renderMargin
	}

	if size := min(w-2*renderMargin, h-top-renderMargin); size >= 21 {
		if qr, err := qrcode.New(name, qrcode.Medium); err == nil {
			qr.DisableBorder = true
			qrImg := qr.Image(size)
			offset := image.Pt((w-size)/2, top)
			draw.Draw(img, qrImg.Bounds().Add(offset), qrImg, image.Point{}, draw.Over)
			top += size + renderMargin
		}
	}

	if bottom := h - top - renderMargin; bottom >= 30 {
		if bc, err := code128.Encode(name); err == nil {
			scaled, err := barcode.Scale(bc, w-2*renderMargin, bottom)
			if err == nil {
				offset := image.Pt(renderMargin, top)
				draw.Draw(img, scaled.Bounds().Add(offset), scaled, image.Point{}, draw.Over)
			}
		}
	}

	return img
}
