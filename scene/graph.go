package scene

import (
	"math"

	"github.com/GriffinCanCode/iconoglott/dsl"
)

// Default node extent when a node declares no size of its own.
const (
	DefaultNodeWidth  = 120.0
	DefaultNodeHeight = 50.0
)

// PlacedNode is a graph node with resolved center coordinates.
type PlacedNode struct {
	Node *dsl.GraphNode
	X, Y float64
	W, H float64
}

// PlaceNodes resolves node positions for the graph's layout mode.
// Explicit coordinates always win, whatever the mode.
func PlaceNodes(props *dsl.GraphProps) []*PlacedNode {
	placed := make([]*PlacedNode, 0, len(props.Nodes))
	for _, node := range props.Nodes {
		p := &PlacedNode{Node: node, W: DefaultNodeWidth, H: DefaultNodeHeight}
		if node.Size != nil {
			p.W, p.H = node.Size.X, node.Size.Y
		}
		if node.At != nil {
			p.X, p.Y = node.At.X, node.At.Y
		}
		placed = append(placed, p)
	}

	switch props.Layout {
	case "hierarchical":
		placeHierarchical(placed, props)
	case "grid":
		placeGrid(placed, props)
	}
	return placed
}

// placeHierarchical lines nodes up along the primary axis, each
// advanced by its own extent plus the spacing. The cross axis centers
// every node on the same line.
func placeHierarchical(placed []*PlacedNode, props *dsl.GraphProps) {
	spacing := props.Spacing
	horizontal := props.Direction == "horizontal"

	var maxCross float64
	for _, p := range placed {
		cross := p.H
		if !horizontal {
			cross = p.W
		}
		if cross > maxCross {
			maxCross = cross
		}
	}
	crossCenter := spacing + maxCross/2

	cursor := spacing
	for _, p := range placed {
		if p.Node.At != nil {
			continue
		}
		if horizontal {
			p.X = cursor + p.W/2
			p.Y = crossCenter
			cursor += p.W + spacing
		} else {
			p.X = crossCenter
			p.Y = cursor + p.H/2
			cursor += p.H + spacing
		}
	}
}

// placeGrid arranges nodes into ceil(sqrt(n)) columns with a uniform
// cell pitch derived from the largest node.
func placeGrid(placed []*PlacedNode, props *dsl.GraphProps) {
	n := len(placed)
	if n == 0 {
		return
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))

	var maxW, maxH float64
	for _, p := range placed {
		if p.W > maxW {
			maxW = p.W
		}
		if p.H > maxH {
			maxH = p.H
		}
	}
	cellW := maxW + props.Spacing
	cellH := maxH + props.Spacing

	for i, p := range placed {
		if p.Node.At != nil {
			continue
		}
		col := i % cols
		row := i / cols
		p.X = props.Spacing + float64(col)*cellW + maxW/2
		p.Y = props.Spacing + float64(row)*cellH + maxH/2
	}
}

// FindPlaced looks a placed node up by id.
func FindPlaced(placed []*PlacedNode, id string) *PlacedNode {
	for _, p := range placed {
		if p.Node.ID == id {
			return p
		}
	}
	return nil
}

// Anchors picks the edge attachment points on both nodes using the
// dominant-axis rule: when the vertical delta between centers is at
// least the horizontal one, edges leave and enter through top/bottom
// faces, otherwise through left/right faces.
func Anchors(from, to *PlacedNode) (fx, fy, tx, ty float64) {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if math.Abs(dy) >= math.Abs(dx) {
		if dy >= 0 {
			return from.X, from.Y + from.H/2, to.X, to.Y - to.H/2
		}
		return from.X, from.Y - from.H/2, to.X, to.Y + to.H/2
	}
	if dx >= 0 {
		return from.X + from.W/2, from.Y, to.X - to.W/2, to.Y
	}
	return from.X - from.W/2, from.Y, to.X + to.W/2, to.Y
}
