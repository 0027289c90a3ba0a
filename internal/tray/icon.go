package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

var (
	iconRunning = platformIcon(renderIcon(color.RGBA{R: 0x43, G: 0xBF, B: 0x6D, A: 0xFF}))
	iconStopped = platformIcon(renderIcon(color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}))
)

// renderIcon draws a filled disc with a transparent centre dot as a PNG.
func renderIcon(fill color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	c := float64(iconSize-1) / 2
	outer := c * c
	inner := (c / 3) * (c / 3)

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d := dx*dx + dy*dy
			if d <= outer && d > inner {
				img.SetRGBA(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
