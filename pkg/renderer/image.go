package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Image is a linear radiance buffer stored row-major with row 0 at the top
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the pixel in column x of row, counting rows from the top
func (img *Image) At(x, row int) core.Vec3 {
	return img.Pixels[row*img.Width+x]
}

// Row returns the pixels of one row, counting from the top
func (img *Image) Row(row int) []core.Vec3 {
	start := row * img.Width
	return img.Pixels[start : start+img.Width]
}

// ToRGBA converts the buffer to 8-bit color with gamma 2 and clamping
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for row := 0; row < img.Height; row++ {
		for x := 0; x < img.Width; x++ {
			rgba.SetRGBA(x, row, vec3ToColor(img.At(x, row)))
		}
	}
	return rgba
}

func vec3ToColor(colorVec core.Vec3) color.RGBA {
	if !colorVec.IsFinite() {
		colorVec = core.Vec3{}
	}
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
