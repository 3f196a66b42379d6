// Package render rasterizes normalized strokes into PNG images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/verte-zerg/scribble/internal/model"
)

var (
	Background    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	StrokeColor   = color.RGBA{R: 0x1f, G: 0x3a, B: 0x93, A: 0xff}
	TemplateColor = color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}
	LabelColor    = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
)

// Options controls the output image.
type Options struct {
	Width       int
	Height      int
	StrokeWidth float64
	// Template is drawn underneath the stroke when set.
	Template *model.Template
	Label    string
}

// DefaultOptions matches the 400x300 writing surface.
func DefaultOptions() Options {
	return Options{Width: 400, Height: 300, StrokeWidth: 4}
}

// Render draws normalized points onto a new image.
func Render(points []model.Point, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	c := canvas{dst: img, w: float64(opts.Width), h: float64(opts.Height)}
	if opts.Template != nil {
		c.polyline(opts.Template.Points, opts.StrokeWidth*2, TemplateColor)
	}
	c.polyline(points, opts.StrokeWidth, StrokeColor)
	if opts.Label != "" {
		drawLabel(img, opts.Label)
	}
	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

type canvas struct {
	dst  *image.RGBA
	w, h float64
}

func (c canvas) project(p model.Point) (float32, float32) {
	return float32(p.X * c.w), float32(p.Y * c.h)
}

// polyline fills each segment and each joint separately so overlaps never cancel.
func (c canvas) polyline(points []model.Point, width float64, col color.Color) {
	src := image.NewUniform(col)
	half := float32(width / 2)
	for i, p := range points {
		x, y := c.project(p)
		c.fill(src, dot(x, y, half))
		if i == 0 {
			continue
		}
		px, py := c.project(points[i-1])
		if quad, ok := segment(px, py, x, y, half); ok {
			c.fill(src, quad)
		}
	}
}

func (c canvas) fill(src image.Image, poly [][2]float32) {
	b := c.dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(poly[0][0], poly[0][1])
	for _, v := range poly[1:] {
		r.LineTo(v[0], v[1])
	}
	r.ClosePath()
	r.Draw(c.dst, b, src, image.Point{})
}

func segment(x0, y0, x1, y1, half float32) ([][2]float32, bool) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return nil, false
	}
	nx, ny := -dy/length*half, dx/length*half
	return [][2]float32{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, true
}

// dot approximates a round joint with an octagon.
func dot(x, y, r float32) [][2]float32 {
	poly := make([][2]float32, 8)
	for i := range poly {
		a := float64(i) * math.Pi / 4
		poly[i] = [2]float32{x + r*float32(math.Cos(a)), y + r*float32(math.Sin(a))}
	}
	return poly
}

func drawLabel(img *image.RGBA, label string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: face,
		Dot:  fixed.P(6, img.Bounds().Dy()-face.Descent-4),
	}
	d.DrawString(label)
}
