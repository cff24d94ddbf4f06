package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/vango-dev/elementview/internal/errors"
)

// Format selects the export backend.
type Format string

const (
	Auto   Format = "auto"
	Raster Format = "raster"
	Vector Format = "vector"
)

// ParseFormat validates a format name. The empty string means Auto.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", Auto:
		return Auto, nil
	case Raster, Vector:
		return Format(s), nil
	}
	return "", errors.New("E302").WithDetailf("unknown format %q", s)
}

// Resolve maps Auto to Raster.
func (f Format) Resolve() Format {
	if f == Auto || f == "" {
		return Raster
	}
	return f
}

// Target is an offscreen export surface.
type Target interface {
	// Format is the resolved backend.
	Format() Format

	// Width and Height are the logical size.
	Width() int
	Height() int

	// PixelRatio is the density multiplier.
	PixelRatio() float64

	// ContentType is the MIME type Encode produces.
	ContentType() string

	// Extension is the file extension for Encode's output, with the dot.
	Extension() string

	// Encode writes the target.
	Encode(w io.Writer) error
}

// New allocates a target of the resolved format. Negative sizes are
// clamped to zero and a non-positive ratio means 1.
func New(format Format, width, height int, ratio float64) (Target, error) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	switch format.Resolve() {
	case Raster:
		return NewRaster(width, height, ratio), nil
	case Vector:
		return NewVector(width, height, ratio), nil
	}
	return nil, errors.New("E302").WithDetailf("unknown format %q", format)
}

// RasterTarget is a pixel-backed target.
type RasterTarget struct {
	width, height int
	ratio         float64
	dc            *gg.Context
}

// NewRaster allocates a raster target of width x height logical pixels.
func NewRaster(width, height int, ratio float64) *RasterTarget {
	pw := int(math.Ceil(float64(width) * ratio))
	ph := int(math.Ceil(float64(height) * ratio))
	dc := gg.NewContext(pw, ph)
	dc.Scale(ratio, ratio)
	return &RasterTarget{width: width, height: height, ratio: ratio, dc: dc}
}

// Format implements Target.
func (t *RasterTarget) Format() Format { return Raster }

// Width implements Target.
func (t *RasterTarget) Width() int { return t.width }

// Height implements Target.
func (t *RasterTarget) Height() int { return t.height }

// PixelRatio implements Target.
func (t *RasterTarget) PixelRatio() float64 { return t.ratio }

// ContentType implements Target.
func (t *RasterTarget) ContentType() string { return "image/png" }

// Extension implements Target.
func (t *RasterTarget) Extension() string { return ".png" }

// Context returns the drawing context, scaled to logical units.
func (t *RasterTarget) Context() *gg.Context {
	return t.dc
}

// PixelSize returns the backing image size.
func (t *RasterTarget) PixelSize() (int, int) {
	return t.dc.Width(), t.dc.Height()
}

// Image returns the backing image at full density.
func (t *RasterTarget) Image() image.Image {
	return t.dc.Image()
}

// Logical returns the image resampled to the logical size.
func (t *RasterTarget) Logical() image.Image {
	src := t.dc.Image()
	if t.ratio == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// Encode implements Target with PNG output.
func (t *RasterTarget) Encode(w io.Writer) error {
	if t.width == 0 || t.height == 0 {
		return errors.New("E300").WithDetailf("cannot encode an empty %dx%d raster", t.width, t.height)
	}
	if err := t.dc.EncodePNG(w); err != nil {
		return errors.New("E300").Wrap(err)
	}
	return nil
}

// VectorTarget is a resolution-independent SVG target.
type VectorTarget struct {
	width, height int
	ratio         float64
	buf           bytes.Buffer
	canvas        *svg.SVG
	ended         bool
}

// NewVector allocates an SVG document of width x height.
func NewVector(width, height int, ratio float64) *VectorTarget {
	t := &VectorTarget{width: width, height: height, ratio: ratio}
	t.canvas = svg.New(&t.buf)
	t.canvas.Start(width, height, fmt.Sprintf(`data-pixel-ratio="%g"`, ratio))
	return t
}

// Format implements Target.
func (t *VectorTarget) Format() Format { return Vector }

// Width implements Target.
func (t *VectorTarget) Width() int { return t.width }

// Height implements Target.
func (t *VectorTarget) Height() int { return t.height }

// PixelRatio implements Target.
func (t *VectorTarget) PixelRatio() float64 { return t.ratio }

// ContentType implements Target.
func (t *VectorTarget) ContentType() string { return "image/svg+xml" }

// Extension implements Target.
func (t *VectorTarget) Extension() string { return ".svg" }

// Canvas returns the SVG writer. Drawing after Encode has no effect on
// the encoded output.
func (t *VectorTarget) Canvas() *svg.SVG {
	return t.canvas
}

// Encode implements Target. The document is closed on the first call.
func (t *VectorTarget) Encode(w io.Writer) error {
	if !t.ended {
		t.canvas.End()
		t.ended = true
	}
	if _, err := w.Write(t.buf.Bytes()); err != nil {
		return errors.New("E300").Wrap(err)
	}
	return nil
}
