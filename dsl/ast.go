package dsl

import "strings"

// Point is an (x, y) coordinate or dimension pair.
type Point struct {
	X, Y float64
}

// Canvas size tiers, each mapping to a square pixel dimension.
var canvasTiers = map[string]int{
	"nano": 16, "micro": 24, "tiny": 32, "small": 48, "medium": 64,
	"large": 96, "xlarge": 128, "huge": 192, "massive": 256, "giant": 512,
}

// TierNames lists all valid canvas tier names in ascending size order.
func TierNames() []string {
	return []string{"nano", "micro", "tiny", "small", "medium", "large", "xlarge", "huge", "massive", "giant"}
}

// TierSize resolves a tier name case-insensitively. "xl" is accepted as
// an alias for xlarge.
func TierSize(name string) (int, bool) {
	n := strings.ToLower(name)
	if n == "xl" {
		n = "xlarge"
	}
	px, ok := canvasTiers[n]
	return px, ok
}

// Canvas is a named size tier plus a fill color. Exactly one canvas is
// active per document; later definitions overwrite earlier ones.
type Canvas struct {
	Tier string
	Fill string
}

// DefaultCanvas returns the midpoint tier with a white fill.
func DefaultCanvas() Canvas {
	return Canvas{Tier: "medium", Fill: "#fff"}
}

// Width returns the pixel dimension of the canvas tier.
func (c Canvas) Width() int {
	if px, ok := TierSize(c.Tier); ok {
		return px
	}
	return canvasTiers["medium"]
}

// Height equals Width; all tiers are square.
func (c Canvas) Height() int { return c.Width() }

// Stmt is a top-level statement in a parsed scene.
type Stmt interface{ stmt() }

// Scene is the root of a parsed document.
type Scene struct {
	Stmts []Stmt
}

// Variable records a top-level binding. Bindings are folded into later
// statements during parsing; evaluation treats this node as a no-op.
type Variable struct {
	Name  string
	Value Token
}

func (Canvas) stmt()    {}
func (*Variable) stmt() {}
func (*Shape) stmt()    {}

// ShapeKind enumerates the closed set of shape variants.
type ShapeKind string

const (
	KindRect    ShapeKind = "rect"
	KindCircle  ShapeKind = "circle"
	KindEllipse ShapeKind = "ellipse"
	KindLine    ShapeKind = "line"
	KindPath    ShapeKind = "path"
	KindPolygon ShapeKind = "polygon"
	KindText    ShapeKind = "text"
	KindImage   ShapeKind = "image"
	KindGroup   ShapeKind = "group"
	KindLayout  ShapeKind = "layout"
	KindGraph   ShapeKind = "graph"
)

// Shape is a drawable element: a kind, kind-specific typed props, a
// style, a transform, and children (group/layout/graph kinds only). A
// shape exclusively owns its children, style, and transform.
type Shape struct {
	Kind      ShapeKind
	Props     Props
	Style     *Style
	Transform Transform
	Children  []*Shape
}

// Props is the closed, per-kind property variant. Positional inference
// ("first pair fills at, second fills size") happens once during
// parsing, before the variant is constructed.
type Props interface{ props() }

type RectProps struct {
	At   *Point
	Size *Point
}

type CircleProps struct {
	At     *Point
	Radius *float64
}

// EllipseProps carries the radius pair; a scalar radius in source is
// broadcast to both axes during parsing.
type EllipseProps struct {
	At     *Point
	Radius *Point
	Size   *Point
}

type LineProps struct {
	From *Point
	To   *Point
}

type PathProps struct {
	D string
}

type PolygonProps struct {
	At     *Point
	Points []Point
}

type TextProps struct {
	At      *Point
	Content string
}

type ImageProps struct {
	At   *Point
	Size *Point
	Href string
}

type GroupProps struct {
	Name string
}

type LayoutProps struct {
	Direction string // vertical or horizontal
	Gap       float64
	At        *Point
}

type GraphProps struct {
	Layout    string // hierarchical, grid, manual
	Direction string // vertical or horizontal
	Spacing   float64
	Nodes     []*GraphNode
	Edges     []*GraphEdge
}

func (*RectProps) props()    {}
func (*CircleProps) props()  {}
func (*EllipseProps) props() {}
func (*LineProps) props()    {}
func (*PathProps) props()    {}
func (*PolygonProps) props() {}
func (*TextProps) props()    {}
func (*ImageProps) props()   {}
func (*GroupProps) props()   {}
func (*LayoutProps) props()  {}
func (*GraphProps) props()   {}

// At returns the shape's position property, if its kind carries one.
func (s *Shape) At() *Point {
	switch p := s.Props.(type) {
	case *RectProps:
		return p.At
	case *CircleProps:
		return p.At
	case *EllipseProps:
		return p.At
	case *PolygonProps:
		return p.At
	case *TextProps:
		return p.At
	case *ImageProps:
		return p.At
	case *LayoutProps:
		return p.At
	default:
		return nil
	}
}

// GraphNode is a node definition inside a graph. IDs are unique string
// keys within their graph.
type GraphNode struct {
	ID    string
	Shape string // rect, circle, ellipse, diamond
	Label string
	At    *Point
	Size  *Point
	Style *Style
}

// GraphEdge references two node ids. The relation is non-owning: if
// either id is absent at render time, the edge is silently dropped.
type GraphEdge struct {
	From        string
	To          string
	Style       string // straight, curved, orthogonal
	Arrow       string // none, forward, backward, both
	Label       string
	Stroke      string
	StrokeWidth float64
}

// NewGraphEdge returns an edge with default styling.
func NewGraphEdge() *GraphEdge {
	return &GraphEdge{Style: "straight", Arrow: "forward", Stroke: "#333", StrokeWidth: 2}
}

// Style holds shape presentation properties with renderer defaults.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Corner      float64
	Font        string
	FontSize    float64
	FontWeight  string
	TextAnchor  string
	Shadow      *ShadowDef
	Gradient    *GradientDef
}

// NewStyle returns a style with all defaults applied.
func NewStyle() *Style {
	return &Style{
		StrokeWidth: 1,
		Opacity:     1,
		FontSize:    16,
		FontWeight:  "normal",
		TextAnchor:  "start",
	}
}

// ShadowDef is a drop-shadow filter definition.
type ShadowDef struct {
	DX    float64
	DY    float64
	Blur  float64
	Color string
}

// NewShadowDef returns the default shadow: offset (0,4), blur 8,
// semi-transparent black.
func NewShadowDef() *ShadowDef {
	return &ShadowDef{DY: 4, Blur: 8, Color: "#0004"}
}

// GradientDef is a two-stop gradient definition.
type GradientDef struct {
	Kind  string // linear or radial
	From  string
	To    string
	Angle float64 // degrees, linear only
}

// NewGradientDef returns the default gradient: linear, white to black,
// 90 degrees.
func NewGradientDef() *GradientDef {
	return &GradientDef{Kind: "linear", From: "#fff", To: "#000", Angle: 90}
}

// Transform is an optional translate/rotate/scale with a rotation pivot.
type Transform struct {
	Translate *Point
	Rotate    float64
	Scale     *Point
	Origin    *Point
}

// IsZero reports whether the transform would emit no attribute.
func (t Transform) IsZero() bool {
	return t.Translate == nil && t.Rotate == 0 && t.Scale == nil
}

// NewShape constructs a shape of the given kind with default style.
func NewShape(kind ShapeKind) *Shape {
	return &Shape{Kind: kind, Style: NewStyle()}
}
