package visualization

import (
	"fmt"
	"math"

	"github.com/GriffinCanCode/iconoglott/dsl"
	"github.com/GriffinCanCode/iconoglott/scene"
)

const (
	nodeCornerRadius = 6.0
	nodeLabelSize    = 12.0
	edgeLabelSize    = 12.0
	arrowLength      = 8.0
	arrowHalfWidth   = 4.0
)

// writeGraph expands a graph into primitives: edges first so they sit
// under the nodes, then the node shapes with centered labels.
func (r *Renderer) writeGraph(props *dsl.GraphProps, tf string) {
	placed := scene.PlaceNodes(props)

	r.shapes.WriteString("<g" + tf + ">\n")
	for _, edge := range props.Edges {
		from := scene.FindPlaced(placed, edge.From)
		to := scene.FindPlaced(placed, edge.To)
		if from == nil || to == nil {
			continue
		}
		r.writeEdge(edge, from, to)
	}
	for _, p := range placed {
		r.writeNode(p)
	}
	r.shapes.WriteString("</g>\n")
}

func (r *Renderer) writeEdge(edge *dsl.GraphEdge, from, to *scene.PlacedNode) {
	fx, fy, tx, ty := scene.Anchors(from, to)
	stroke := escapeAttr(edge.Stroke)
	width := fmtNum(edge.StrokeWidth)

	switch edge.Style {
	case "curved":
		cx, cy := curveControl(fx, fy, tx, ty)
		r.shapes.WriteString(fmt.Sprintf(`<path d="M %s %s Q %s %s %s %s" fill="none" stroke="%s" stroke-width="%s"/>`,
			fmtNum(fx), fmtNum(fy), fmtNum(cx), fmtNum(cy), fmtNum(tx), fmtNum(ty), stroke, width))
		r.shapes.WriteString("\n")
		if edge.Arrow == "forward" || edge.Arrow == "both" {
			r.writeArrowhead(cx, cy, tx, ty, stroke)
		}
		if edge.Arrow == "backward" || edge.Arrow == "both" {
			r.writeArrowhead(cx, cy, fx, fy, stroke)
		}
	case "orthogonal":
		mx := (fx + tx) / 2
		r.shapes.WriteString(fmt.Sprintf(`<path d="M %s %s L %s %s L %s %s L %s %s" fill="none" stroke="%s" stroke-width="%s"/>`,
			fmtNum(fx), fmtNum(fy), fmtNum(mx), fmtNum(fy), fmtNum(mx), fmtNum(ty), fmtNum(tx), fmtNum(ty), stroke, width))
		r.shapes.WriteString("\n")
		if edge.Arrow == "forward" || edge.Arrow == "both" {
			r.writeArrowhead(mx, ty, tx, ty, stroke)
		}
		if edge.Arrow == "backward" || edge.Arrow == "both" {
			r.writeArrowhead(mx, fy, fx, fy, stroke)
		}
	default:
		r.shapes.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
			fmtNum(fx), fmtNum(fy), fmtNum(tx), fmtNum(ty), stroke, width))
		r.shapes.WriteString("\n")
		if edge.Arrow == "forward" || edge.Arrow == "both" {
			r.writeArrowhead(fx, fy, tx, ty, stroke)
		}
		if edge.Arrow == "backward" || edge.Arrow == "both" {
			r.writeArrowhead(tx, ty, fx, fy, stroke)
		}
	}

	if edge.Label != "" {
		r.shapes.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="%s" text-anchor="middle" fill="#666">%s</text>`,
			fmtNum((fx+tx)/2), fmtNum((fy+ty)/2-4), fmtNum(edgeLabelSize), escapeText(edge.Label)))
		r.shapes.WriteString("\n")
	}
}

// curveControl shapes the quadratic control point off the dominant
// axis so vertical edges bow sideways and horizontal edges bow
// vertically.
func curveControl(fx, fy, tx, ty float64) (cx, cy float64) {
	if math.Abs(ty-fy) >= math.Abs(tx-fx) {
		return fx, (fy + ty) / 2
	}
	return (fx + tx) / 2, fy
}

// writeArrowhead draws a solid triangle whose tip sits on (tx,ty),
// oriented along the incoming direction from (px,py).
func (r *Renderer) writeArrowhead(px, py, tx, ty float64, fill string) {
	dx, dy := tx-px, ty-py
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	ux, uy := dx/dist, dy/dist
	bx, by := tx-arrowLength*ux, ty-arrowLength*uy
	leftX, leftY := bx-arrowHalfWidth*uy, by+arrowHalfWidth*ux
	rightX, rightY := bx+arrowHalfWidth*uy, by-arrowHalfWidth*ux

	r.shapes.WriteString(fmt.Sprintf(`<polygon points="%s,%s %s,%s %s,%s" fill="%s"/>`,
		fmtNum(tx), fmtNum(ty), fmtNum(leftX), fmtNum(leftY), fmtNum(rightX), fmtNum(rightY), fill))
	r.shapes.WriteString("\n")
}

func (r *Renderer) writeNode(p *scene.PlacedNode) {
	fill := p.Node.Style.Fill
	if fill == "" {
		fill = "#fff"
	}
	stroke := p.Node.Style.Stroke
	if stroke == "" {
		stroke = "#333"
	}
	attrs := fmt.Sprintf(` fill="%s" stroke="%s"`, escapeAttr(fill), escapeAttr(stroke))

	switch p.Node.Shape {
	case "circle":
		r.shapes.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s"%s/>`,
			fmtNum(p.X), fmtNum(p.Y), fmtNum(math.Min(p.W, p.H)/2), attrs))
	case "ellipse":
		r.shapes.WriteString(fmt.Sprintf(`<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s/>`,
			fmtNum(p.X), fmtNum(p.Y), fmtNum(p.W/2), fmtNum(p.H/2), attrs))
	case "diamond":
		points := fmt.Sprintf("%s,%s %s,%s %s,%s %s,%s",
			fmtNum(p.X), fmtNum(p.Y-p.H/2),
			fmtNum(p.X+p.W/2), fmtNum(p.Y),
			fmtNum(p.X), fmtNum(p.Y+p.H/2),
			fmtNum(p.X-p.W/2), fmtNum(p.Y))
		r.shapes.WriteString(fmt.Sprintf(`<polygon points="%s"%s/>`, points, attrs))
	default:
		r.shapes.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s/>`,
			fmtNum(p.X-p.W/2), fmtNum(p.Y-p.H/2), fmtNum(p.W), fmtNum(p.H), fmtNum(nodeCornerRadius), attrs))
	}
	r.shapes.WriteString("\n")

	label := p.Node.Label
	if label == "" {
		label = p.Node.ID
	}
	if label != "" {
		r.shapes.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`,
			fmtNum(p.X), fmtNum(p.Y), fmtNum(nodeLabelSize), escapeText(label)))
		r.shapes.WriteString("\n")
	}
}
