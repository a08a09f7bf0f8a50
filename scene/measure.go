package scene

import "github.com/GriffinCanCode/iconoglott/dsl"

const (
	fallbackExtent  = 40.0
	charWidthRatio  = 0.6
	lineHeightRatio = 1.2
)

// Measure reports a shape's structural extent. Text measurement is an
// estimate from character count and font size; no font metrics are
// consulted, so output stays deterministic across platforms.
func Measure(shape *dsl.Shape) (w, h float64) {
	switch props := shape.Props.(type) {
	case *dsl.RectProps:
		if props.Size != nil {
			return props.Size.X, props.Size.Y
		}
	case *dsl.CircleProps:
		if props.Radius != nil {
			return *props.Radius * 2, *props.Radius * 2
		}
	case *dsl.EllipseProps:
		if props.Radius != nil {
			return props.Radius.X * 2, props.Radius.Y * 2
		}
		if props.Size != nil {
			return props.Size.X, props.Size.Y
		}
	case *dsl.LineProps:
		if props.From != nil && props.To != nil {
			return abs(props.To.X - props.From.X), abs(props.To.Y - props.From.Y)
		}
	case *dsl.PolygonProps:
		if len(props.Points) > 0 {
			return pointsExtent(props.Points)
		}
	case *dsl.TextProps:
		size := shape.Style.FontSize
		return float64(len(props.Content)) * size * charWidthRatio, size * lineHeightRatio
	case *dsl.ImageProps:
		if props.Size != nil {
			return props.Size.X, props.Size.Y
		}
	case *dsl.LayoutProps:
		return measureLayout(shape, props)
	case *dsl.GroupProps:
		return measureGroup(shape)
	}
	return fallbackExtent, fallbackExtent
}

// measureLayout sums child extents along the primary axis (plus gaps)
// and takes the maximum on the cross axis.
func measureLayout(shape *dsl.Shape, props *dsl.LayoutProps) (w, h float64) {
	var sum, max float64
	for _, child := range shape.Children {
		cw, ch := Measure(child)
		if props.Direction == "horizontal" {
			sum += cw
			if ch > max {
				max = ch
			}
		} else {
			sum += ch
			if cw > max {
				max = cw
			}
		}
	}
	if n := len(shape.Children); n > 1 {
		sum += props.Gap * float64(n-1)
	}
	if props.Direction == "horizontal" {
		return sum, max
	}
	return max, sum
}

func measureGroup(shape *dsl.Shape) (w, h float64) {
	if len(shape.Children) == 0 {
		return fallbackExtent, fallbackExtent
	}
	var maxX, maxY float64
	for _, child := range shape.Children {
		cw, ch := Measure(child)
		x, y := 0.0, 0.0
		if at := child.At(); at != nil {
			x, y = at.X, at.Y
		}
		if x+cw > maxX {
			maxX = x + cw
		}
		if y+ch > maxY {
			maxY = y + ch
		}
	}
	return maxX, maxY
}

func pointsExtent(points []dsl.Point) (w, h float64) {
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX - minX, maxY - minY
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
