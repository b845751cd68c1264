// Package preview rasterises holes and path segments into an overlay image.
package preview

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/segment"
	"tubesheet-planner/pkg/colorutil"
	"tubesheet-planner/pkg/geometry"
)

// MaxDimension caps the width and height of a rendered image in pixels.
const MaxDimension = 8192

// Options configures how a path is rendered.
type Options struct {
	Scale       float64    // Pixels per sheet unit
	Padding     int        // Border around the holes in pixels
	HoleRadius  int        // Hole circle radius in pixels
	LineWidth   int        // Segment line width in pixels
	LineColor   color.RGBA // Normal side A segments
	ShowLabels  bool       // Draw sequence numbers at segment midpoints
	LabelEvery  int        // Label every Nth segment (1 = all)
	Background  color.RGBA
	HoleColor   color.RGBA
	HideJumps   bool // Skip segments that leave the serpentine direction
	HighlightID string
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		Scale:      4,
		Padding:    24,
		HoleRadius: 3,
		LineWidth:  2,
		LineColor:  colorutil.Cyan,
		ShowLabels: true,
		LabelEvery: 1,
		Background: colorutil.White,
		HoleColor:  colorutil.Black,
	}
}

// tagColor returns the color a segment is drawn with.
func (o Options) tagColor(tag segment.Tag) color.RGBA {
	switch tag {
	case segment.TagCompleted:
		return colorutil.Gray
	case segment.TagCurrent:
		return colorutil.Yellow
	case segment.TagCrossSide:
		return colorutil.Magenta
	case segment.TagCrossColumn:
		return colorutil.Orange
	case segment.TagColumnReturn:
		return colorutil.Teal
	case segment.TagBSideNormal:
		return colorutil.Green
	default:
		return o.LineColor
	}
}

// viewport maps sheet coordinates to image pixels.
type viewport struct {
	bounds  geometry.Rect
	scale   float64
	padding int
}

func newViewport(points []geometry.Point2D, opts Options) viewport {
	v := viewport{bounds: geometry.BoundingBox(points), scale: opts.Scale, padding: opts.Padding}
	if v.scale <= 0 {
		v.scale = 1
	}
	limit := float64(MaxDimension - 2*opts.Padding - 2)
	if longest := math.Max(v.bounds.Width, v.bounds.Height); longest*v.scale > limit && longest > 0 {
		v.scale = limit / longest
	}
	return v
}

func (v viewport) size() (int, int) {
	w := int(math.Ceil(v.bounds.Width*v.scale)) + 2*v.padding + 1
	h := int(math.Ceil(v.bounds.Height*v.scale)) + 2*v.padding + 1
	return w, h
}

func (v viewport) apply(p geometry.Point2D) (float64, float64) {
	return (p.X-v.bounds.X)*v.scale + float64(v.padding),
		(p.Y-v.bounds.Y)*v.scale + float64(v.padding)
}

// Render draws holes and segments. Segments are drawn in sequence order so
// later ones end up on top; holes are drawn last.
func Render(positions hole.Positions, segments []segment.PathSegment, opts Options) *image.RGBA {
	sorted := positions.Sorted()
	points := make([]geometry.Point2D, len(sorted))
	for i, gp := range sorted {
		points[i] = gp.Center
	}

	v := newViewport(points, opts)
	w, h := v.size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), opts.Background)

	for _, s := range segments {
		if opts.HideJumps && !s.SnakeDirection {
			continue
		}
		x1, y1 := v.apply(s.Start.Center)
		x2, y2 := v.apply(s.End.Center)
		drawThickLine(img, x1, y1, x2, y2, opts.LineWidth, opts.tagColor(s.Tag()))
	}

	for _, gp := range sorted {
		x, y := v.apply(gp.Center)
		fill, ring := opts.Background, opts.HoleColor
		r := opts.HoleRadius
		if gp.ID == opts.HighlightID {
			fill, ring = colorutil.Magenta, colorutil.Darken(colorutil.Magenta, 0.5)
			r += 2
		}
		drawHole(img, int(math.Round(x)), int(math.Round(y)), r, fill, ring)
	}

	if opts.ShowLabels {
		every := opts.LabelEvery
		if every < 1 {
			every = 1
		}
		for _, s := range segments {
			if s.Sequence%every != 0 && s.Sequence != 1 {
				continue
			}
			x1, y1 := v.apply(s.Start.Center)
			x2, y2 := v.apply(s.End.Center)
			drawLabel(img, (x1+x2)/2, (y1+y2)/2, strconv.Itoa(s.Sequence), colorutil.Darken(opts.tagColor(s.Tag()), 0.4))
		}
	}

	return img
}

// drawLabel writes text with its baseline starting at (x, y).
func drawLabel(img *image.RGBA, x, y float64, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x)+2, int(y)-2),
	}
	d.DrawString(text)
}

// fillRect fills r with c.
func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawHole fills a disc of radius r with fill and rims it with a one pixel
// ring. Pixels outside img are skipped.
func drawHole(img *image.RGBA, cx, cy, r int, fill, ring color.RGBA) {
	if r < 1 {
		r = 1
	}
	outer := r * r
	inner := (r - 1) * (r - 1)
	area := image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(img.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			switch {
			case d > outer:
			case d > inner:
				img.SetRGBA(x, y, ring)
			default:
				img.SetRGBA(x, y, fill)
			}
		}
	}
}

// drawThickLine draws a line with given thickness as parallel Bresenham lines.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2 float64, thickness int, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}
	if thickness < 1 {
		thickness = 1
	}

	// Perpendicular unit vector
	px := -dy / length
	py := dx / length

	half := float64(thickness-1) / 2
	for t := -half; t <= half; t += 1.0 {
		drawLine(img,
			int(math.Round(x1+px*t)), int(math.Round(y1+py*t)),
			int(math.Round(x2+px*t)), int(math.Round(y2+py*t)), c)
	}
}

// drawLine draws a line using Bresenham's algorithm.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	bounds := img.Bounds()
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
