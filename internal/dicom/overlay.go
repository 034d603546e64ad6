package dicom

import (
	"image"
	"image/color"

	"github.com/suyashkumar/dicom/pkg/frame"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// frameImage converts a 16-bit frame to an 8-bit grayscale image.
func frameImage(nativeFrame *frame.NativeFrame[uint16], width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(nativeFrame.RawData[y*width+x] >> 8)})
		}
	}
	return img
}

// drawTextOnFrame16 stamps text, scaled to roughly a third of the image
// width, in the middle of the frame with a black outline.
func drawTextOnFrame16(nativeFrame *frame.NativeFrame[uint16], width, height int, text string) {
	face := basicfont.Face7x13
	baseWidth := font.MeasureString(face, text).Ceil()
	baseHeight := 13
	if baseWidth == 0 {
		return
	}

	textImg := image.NewRGBA(image.Rect(0, 0, baseWidth, baseHeight))
	drawer := &font.Drawer{
		Dst:  textImg,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{Y: fixed.I(11)},
	}
	drawer.DrawString(text)

	scale := float64(width) * 0.3 / float64(baseWidth)
	if scale < 1 {
		scale = 1
	}
	scaledW := int(float64(baseWidth) * scale)
	scaledH := int(float64(baseHeight) * scale)
	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), textImg, textImg.Bounds(), draw.Over, nil)

	originX := (width - scaledW) / 2
	originY := (height - scaledH) / 2
	outline := max(1, scaledH/10)

	set := func(x, y int, v uint16) {
		if x >= 0 && x < width && y >= 0 && y < height {
			nativeFrame.RawData[y*width+x] = v
		}
	}

	for sy := 0; sy < scaledH; sy++ {
		for sx := 0; sx < scaledW; sx++ {
			if _, _, _, a := scaled.At(sx, sy).RGBA(); a == 0 {
				continue
			}
			for dy := -outline; dy <= outline; dy++ {
				for dx := -outline; dx <= outline; dx++ {
					set(originX+sx+dx, originY+sy+dy, 0)
				}
			}
		}
	}

	for sy := 0; sy < scaledH; sy++ {
		for sx := 0; sx < scaledW; sx++ {
			r, g, b, a := scaled.At(sx, sy).RGBA()
			if a == 0 {
				continue
			}
			set(originX+sx, originY+sy, uint16((r+g+b)/3))
		}
	}
}
