// Package visualization renders evaluated scenes as SVG documents.
package visualization

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/iconoglott/diag"
	"github.com/GriffinCanCode/iconoglott/dsl"
	"github.com/GriffinCanCode/iconoglott/scene"
)

// Renderer turns scene state into a standalone SVG string. Rendering
// is two-pass: shape markup is produced first while gradient and
// shadow definitions accumulate in a registry, then the document is
// assembled with the defs block ahead of the shapes.
type Renderer struct {
	shapes   bytes.Buffer
	defs     bytes.Buffer
	defCount int
}

// NewRenderer returns a renderer ready for a single Render call.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the SVG document for the given state. It never
// panics: any internal failure yields a minimal fallback document and
// a render-category error.
func Render(state *scene.State) (out string, errs diag.List) {
	r := NewRenderer()
	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("render failed: %v", rec)
			errs = append(errs, diag.New(diag.RenderFailed, msg, 0, 0))
			out = FallbackDocument(msg)
		}
	}()
	out = r.render(state)
	return out, nil
}

func (r *Renderer) render(state *scene.State) string {
	r.shapes.Reset()
	r.defs.Reset()
	r.defCount = 0

	for _, shape := range state.Shapes {
		r.writeShape(shape)
	}

	var doc bytes.Buffer
	side := strconv.Itoa(state.Canvas.Width())
	doc.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`, side, side))
	doc.WriteString("\n")
	doc.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`, escapeAttr(state.Canvas.Fill)))
	doc.WriteString("\n")
	if r.defs.Len() > 0 {
		doc.WriteString("<defs>\n")
		doc.Write(r.defs.Bytes())
		doc.WriteString("</defs>\n")
	}
	doc.Write(r.shapes.Bytes())
	doc.WriteString("</svg>\n")
	return doc.String()
}

// FallbackDocument is the minimal SVG emitted when rendering itself
// breaks down. The message is escaped so the document stays valid.
func FallbackDocument(msg string) string {
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64">`)
	buf.WriteString("\n")
	buf.WriteString(`<rect width="100%" height="100%" fill="#fff"/>`)
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<text x="4" y="16" font-size="10" fill="#c00">%s</text>`, escapeText(msg)))
	buf.WriteString("\n</svg>\n")
	return buf.String()
}

func (r *Renderer) writeShape(shape *dsl.Shape) {
	attrs := r.styleAttrs(shape.Style)
	tf := transformAttr(shape.Transform)

	switch props := shape.Props.(type) {
	case *dsl.RectProps:
		r.shapes.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`,
			fmtNum(props.At.X), fmtNum(props.At.Y), fmtNum(props.Size.X), fmtNum(props.Size.Y), attrs, tf))
		r.shapes.WriteString("\n")
	case *dsl.CircleProps:
		r.shapes.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s"%s%s/>`,
			fmtNum(props.At.X), fmtNum(props.At.Y), fmtNum(*props.Radius), attrs, tf))
		r.shapes.WriteString("\n")
	case *dsl.EllipseProps:
		r.shapes.WriteString(fmt.Sprintf(`<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s%s/>`,
			fmtNum(props.At.X), fmtNum(props.At.Y), fmtNum(props.Radius.X), fmtNum(props.Radius.Y), attrs, tf))
		r.shapes.WriteString("\n")
	case *dsl.LineProps:
		stroke := shape.Style.Stroke
		if stroke == "" {
			stroke = "#000"
		}
		r.shapes.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`,
			fmtNum(props.From.X), fmtNum(props.From.Y), fmtNum(props.To.X), fmtNum(props.To.Y),
			escapeAttr(stroke), fmtNum(shape.Style.StrokeWidth), tf))
		r.shapes.WriteString("\n")
	case *dsl.PathProps:
		r.shapes.WriteString(fmt.Sprintf(`<path d="%s"%s%s/>`, escapeAttr(props.D), attrs, tf))
		r.shapes.WriteString("\n")
	case *dsl.PolygonProps:
		r.shapes.WriteString(fmt.Sprintf(`<polygon points="%s"%s%s/>`, pointList(props.Points, props.At), attrs, tf))
		r.shapes.WriteString("\n")
	case *dsl.TextProps:
		r.writeText(shape, props, attrs, tf)
	case *dsl.ImageProps:
		r.shapes.WriteString(fmt.Sprintf(`<image x="%s" y="%s" width="%s" height="%s" href="%s"%s/>`,
			fmtNum(props.At.X), fmtNum(props.At.Y), fmtNum(props.Size.X), fmtNum(props.Size.Y),
			escapeAttr(props.Href), tf))
		r.shapes.WriteString("\n")
	case *dsl.GroupProps, *dsl.LayoutProps:
		r.shapes.WriteString("<g" + tf + ">\n")
		for _, child := range shape.Children {
			r.writeShape(child)
		}
		r.shapes.WriteString("</g>\n")
	case *dsl.GraphProps:
		r.writeGraph(props, tf)
	}
}

func (r *Renderer) writeText(shape *dsl.Shape, props *dsl.TextProps, attrs, tf string) {
	var extra strings.Builder
	extra.WriteString(fmt.Sprintf(` font-size="%s"`, fmtNum(shape.Style.FontSize)))
	if shape.Style.Font != "" {
		extra.WriteString(fmt.Sprintf(` font-family="%s"`, escapeAttr(shape.Style.Font)))
	}
	switch shape.Style.FontWeight {
	case "bold":
		extra.WriteString(` font-weight="bold"`)
	case "italic":
		extra.WriteString(` font-style="italic"`)
	}
	if anchor := shape.Style.TextAnchor; anchor != "start" {
		extra.WriteString(fmt.Sprintf(` text-anchor="%s"`, anchor))
	}
	r.shapes.WriteString(fmt.Sprintf(`<text x="%s" y="%s"%s%s%s>%s</text>`,
		fmtNum(props.At.X), fmtNum(props.At.Y), extra.String(), attrs, tf, escapeText(props.Content)))
	r.shapes.WriteString("\n")
}

// styleAttrs renders the style as attribute text, registering any
// gradient or shadow definition and pointing the attribute at its id.
func (r *Renderer) styleAttrs(style *dsl.Style) string {
	var b strings.Builder

	if style.Gradient != nil {
		id := r.registerGradient(style.Gradient)
		b.WriteString(fmt.Sprintf(` fill="url(#%s)"`, id))
	} else if style.Fill != "" {
		b.WriteString(fmt.Sprintf(` fill="%s"`, escapeAttr(style.Fill)))
	}
	if style.Stroke != "" {
		b.WriteString(fmt.Sprintf(` stroke="%s"`, escapeAttr(style.Stroke)))
		if style.StrokeWidth != 1 {
			b.WriteString(fmt.Sprintf(` stroke-width="%s"`, fmtNum(style.StrokeWidth)))
		}
	}
	if style.Opacity < 1 {
		b.WriteString(fmt.Sprintf(` opacity="%s"`, fmtNum(style.Opacity)))
	}
	if style.Corner > 0 {
		b.WriteString(fmt.Sprintf(` rx="%s"`, fmtNum(style.Corner)))
	}
	if style.Shadow != nil {
		id := r.registerShadow(style.Shadow)
		b.WriteString(fmt.Sprintf(` filter="url(#%s)"`, id))
	}
	return b.String()
}

func (r *Renderer) nextDefID() string {
	r.defCount++
	return "d" + strconv.Itoa(r.defCount)
}

// registerGradient appends a gradient definition and returns its id.
// Linear endpoints are derived from the angle so that 90 degrees runs
// top to bottom.
func (r *Renderer) registerGradient(g *dsl.GradientDef) string {
	id := r.nextDefID()
	if g.Kind == "radial" {
		r.defs.WriteString(fmt.Sprintf(`<radialGradient id="%s">`, id))
	} else {
		rad := (g.Angle - 90) * math.Pi / 180
		x2 := 50 + 50*math.Cos(rad)
		y2 := 50 + 50*math.Sin(rad)
		r.defs.WriteString(fmt.Sprintf(`<linearGradient id="%s" x1="%.1f%%" y1="%.1f%%" x2="%.1f%%" y2="%.1f%%">`,
			id, 100-x2, 100-y2, x2, y2))
	}
	r.defs.WriteString(fmt.Sprintf(`<stop offset="0%%" stop-color="%s"/>`, escapeAttr(g.From)))
	r.defs.WriteString(fmt.Sprintf(`<stop offset="100%%" stop-color="%s"/>`, escapeAttr(g.To)))
	if g.Kind == "radial" {
		r.defs.WriteString("</radialGradient>\n")
	} else {
		r.defs.WriteString("</linearGradient>\n")
	}
	return id
}

func (r *Renderer) registerShadow(s *dsl.ShadowDef) string {
	id := r.nextDefID()
	r.defs.WriteString(fmt.Sprintf(`<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`, id))
	r.defs.WriteString(fmt.Sprintf(`<feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-color="%s"/>`,
		fmtNum(s.DX), fmtNum(s.DY), fmtNum(s.Blur/2), escapeAttr(s.Color)))
	r.defs.WriteString("</filter>\n")
	return id
}

// transformAttr joins translate, rotate, scale in that fixed order.
// Rotation pivots on the origin point when one was given.
func transformAttr(tf dsl.Transform) string {
	if tf.IsZero() {
		return ""
	}
	var parts []string
	if tf.Translate != nil {
		parts = append(parts, fmt.Sprintf("translate(%s,%s)", fmtNum(tf.Translate.X), fmtNum(tf.Translate.Y)))
	}
	if tf.Rotate != 0 {
		if tf.Origin != nil {
			parts = append(parts, fmt.Sprintf("rotate(%s,%s,%s)", fmtNum(tf.Rotate), fmtNum(tf.Origin.X), fmtNum(tf.Origin.Y)))
		} else {
			parts = append(parts, fmt.Sprintf("rotate(%s)", fmtNum(tf.Rotate)))
		}
	}
	if tf.Scale != nil {
		parts = append(parts, fmt.Sprintf("scale(%s,%s)", fmtNum(tf.Scale.X), fmtNum(tf.Scale.Y)))
	}
	return fmt.Sprintf(` transform="%s"`, strings.Join(parts, " "))
}

func pointList(points []dsl.Point, offset *dsl.Point) string {
	var ox, oy float64
	if offset != nil {
		ox, oy = offset.X, offset.Y
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmtNum(p.X+ox) + "," + fmtNum(p.Y+oy)
	}
	return strings.Join(parts, " ")
}

// fmtNum keeps integers verbatim and trims floats to their shortest
// exact decimal form.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	return strings.ReplaceAll(escapeText(s), `"`, "&quot;")
}
