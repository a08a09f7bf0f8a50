// Package scene evaluates a parsed AST into render-ready state:
// canvas resolution, shape defaults, layout placement, and graph
// geometry. It knows nothing about SVG.
package scene

import (
	"fmt"

	"github.com/GriffinCanCode/iconoglott/diag"
	"github.com/GriffinCanCode/iconoglott/dsl"
)

// State is the fully evaluated scene handed to the renderer.
type State struct {
	Canvas dsl.Canvas
	Shapes []*dsl.Shape
	Errors diag.List
}

// Eval walks the statement list in document order. A later canvas
// statement replaces an earlier one; variables were already resolved
// during parsing and contribute nothing here.
func Eval(sc *dsl.Scene) *State {
	state := &State{Canvas: dsl.DefaultCanvas()}
	for _, stmt := range sc.Stmts {
		switch s := stmt.(type) {
		case dsl.Canvas:
			state.Canvas = s
		case *dsl.Shape:
			state.evalShape(s)
			state.Shapes = append(state.Shapes, s)
		case *dsl.Variable:
			// bindings are a parse-time concern
		}
	}
	return state
}

func (st *State) evalShape(shape *dsl.Shape) {
	st.applyDefaults(shape)
	for _, child := range shape.Children {
		st.evalShape(child)
	}
	if props, ok := shape.Props.(*dsl.LayoutProps); ok {
		placeChildren(shape, props)
	}
}

// applyDefaults fills every omitted geometric property so the renderer
// never sees a nil position or size.
func (st *State) applyDefaults(shape *dsl.Shape) {
	switch props := shape.Props.(type) {
	case *dsl.RectProps:
		if props.At == nil {
			props.At = &dsl.Point{}
		}
		if props.Size == nil {
			props.Size = &dsl.Point{X: 100, Y: 100}
		}
	case *dsl.CircleProps:
		if props.At == nil {
			props.At = &dsl.Point{}
		}
		if props.Radius == nil {
			r := 50.0
			props.Radius = &r
		}
	case *dsl.EllipseProps:
		if props.At == nil {
			props.At = &dsl.Point{}
		}
		if props.Radius == nil {
			if props.Size != nil {
				props.Radius = &dsl.Point{X: props.Size.X / 2, Y: props.Size.Y / 2}
			} else {
				props.Radius = &dsl.Point{X: 50, Y: 30}
			}
		}
	case *dsl.LineProps:
		if props.From == nil {
			props.From = &dsl.Point{}
		}
		if props.To == nil {
			props.To = &dsl.Point{X: 100, Y: 100}
		}
	case *dsl.PathProps:
		if props.D == "" {
			st.warn(diag.EvalMissingProperty, "path has no data")
		}
	case *dsl.PolygonProps:
		if props.At == nil {
			props.At = &dsl.Point{}
		}
		if len(props.Points) == 0 {
			st.warn(diag.EvalMissingProperty, "polygon has no points")
		}
	case *dsl.TextProps:
		if props.At == nil {
			props.At = &dsl.Point{}
		}
	case *dsl.ImageProps:
		if props.At == nil {
			props.At = &dsl.Point{}
		}
		if props.Size == nil {
			props.Size = &dsl.Point{X: 100, Y: 100}
		}
		if props.Href == "" {
			st.warn(diag.EvalMissingProperty, "image has no href")
		}
	case *dsl.GraphProps:
		for _, edge := range props.Edges {
			if findNode(props.Nodes, edge.From) == nil || findNode(props.Nodes, edge.To) == nil {
				st.warn(diag.EvalInvalidShape, fmt.Sprintf("edge references unknown node: %s -> %s", edge.From, edge.To))
			}
		}
	}
}

func (st *State) warn(code diag.Code, msg string) {
	info := diag.New(code, msg, 0, 0)
	info.Severity = diag.SeverityWarning
	st.Errors = append(st.Errors, info)
}

// placeChildren positions layout children sequentially along the
// primary axis, starting at the layout origin and advancing by each
// child's measured extent plus the gap.
func placeChildren(shape *dsl.Shape, props *dsl.LayoutProps) {
	origin := dsl.Point{}
	if props.At != nil {
		origin = *props.At
	}
	cursor := origin
	for _, child := range shape.Children {
		setPosition(child, cursor)
		w, h := Measure(child)
		if props.Direction == "horizontal" {
			cursor.X += w + props.Gap
		} else {
			cursor.Y += h + props.Gap
		}
	}
}

// setPosition shifts a child by the layout cursor. An authored position
// becomes an offset within the layout; an absent one lands on the
// cursor itself. Nested layouts carry their already-placed children
// along. Shapes without a position property are translated instead.
func setPosition(shape *dsl.Shape, at dsl.Point) {
	switch props := shape.Props.(type) {
	case *dsl.RectProps:
		props.At = offset(props.At, at)
	case *dsl.CircleProps:
		props.At = offset(props.At, at)
	case *dsl.EllipseProps:
		props.At = offset(props.At, at)
	case *dsl.PolygonProps:
		props.At = offset(props.At, at)
	case *dsl.TextProps:
		props.At = offset(props.At, at)
	case *dsl.ImageProps:
		props.At = offset(props.At, at)
	case *dsl.LayoutProps:
		props.At = offset(props.At, at)
		for _, child := range shape.Children {
			setPosition(child, at)
		}
	default:
		shape.Transform.Translate = offset(shape.Transform.Translate, at)
	}
}

func offset(p *dsl.Point, by dsl.Point) *dsl.Point {
	if p == nil {
		return &dsl.Point{X: by.X, Y: by.Y}
	}
	return &dsl.Point{X: p.X + by.X, Y: p.Y + by.Y}
}

func findNode(nodes []*dsl.GraphNode, id string) *dsl.GraphNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
