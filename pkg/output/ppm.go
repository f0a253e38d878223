package output

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// channelByte maps a linear channel value to 0..255 with gamma 2.
// Values above one saturate; negative and NaN values are black.
func channelByte(c float64) int {
	switch {
	case !(c > 0):
		return 0
	case c >= 1:
		return 255
	}
	return int(math.Floor(math.Sqrt(c) * 255.99))
}

// WritePPM encodes img as an ASCII "P3" portable pixmap, top row first
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)

	header := "P3\n" + strconv.Itoa(img.Width) + " " + strconv.Itoa(img.Height) + "\n255\n"
	if _, err := bw.WriteString(header); err != nil {
		return err
	}

	line := make([]byte, 0, 16)
	for _, pixel := range img.Pixels {
		line = appendPixel(line[:0], pixel)
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func appendPixel(line []byte, pixel core.Vec3) []byte {
	line = strconv.AppendInt(line, int64(channelByte(pixel.X)), 10)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(channelByte(pixel.Y)), 10)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(channelByte(pixel.Z)), 10)
	return append(line, '\n')
}
