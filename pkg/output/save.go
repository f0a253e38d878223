package output

import (
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/klauspost/compress/gzip"
)

const (
	// ErrTypeOutputFormat is the error type of unsupported output file names
	ErrTypeOutputFormat = "output_format"
	// ErrTypeOutputWrite is the error type of failed image writes
	ErrTypeOutputWrite = "output_write"
)

// Format identifies an image encoding
type Format string

const (
	FormatPPM   Format = "ppm"
	FormatPPMGz Format = "ppm.gz"
	FormatPNG   Format = "png"
)

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".ppm.gz"):
		return FormatPPMGz, nil
	case strings.HasSuffix(lower, ".ppm"):
		return FormatPPM, nil
	case strings.HasSuffix(lower, ".png"):
		return FormatPNG, nil
	default:
		return "", errors.New("unsupported output format").
			WithType(ErrTypeOutputFormat).
			WithTag("path", path)
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)

	case FormatPPMGz:
		gz := gzip.NewWriter(w)
		if err := WritePPM(gz, img); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()

	case FormatPNG:
		return png.Encode(w, img.ToRGBA())

	default:
		return errors.New("unsupported output format").
			WithType(ErrTypeOutputFormat).
			WithTag("format", string(format))
	}
}

// Save writes img to path, choosing the encoding from the extension
func Save(path string, img *renderer.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.New("creating output file failed").
			WithType(ErrTypeOutputWrite).
			WithTag("path", path).
			Wrap(err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return errors.New("encoding image failed").
			WithType(ErrTypeOutputWrite).
			WithTag("path", path).
			WithTag("format", string(format)).
			Wrap(err)
	}

	if err := file.Close(); err != nil {
		return errors.New("closing output file failed").
			WithType(ErrTypeOutputWrite).
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
