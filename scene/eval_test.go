package scene

import (
	"testing"

	"github.com/GriffinCanCode/iconoglott/diag"
	"github.com/GriffinCanCode/iconoglott/dsl"
)

func evalSource(t *testing.T, source string) *State {
	t.Helper()
	sc, errs := dsl.ParseSource(source)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return Eval(sc)
}

func TestEval_CanvasLastWins(t *testing.T) {
	state := evalSource(t, "canvas small\ncanvas huge fill #000")

	if state.Canvas.Tier != "huge" || state.Canvas.Fill != "#000" {
		t.Errorf("unexpected canvas %+v", state.Canvas)
	}
	if state.Canvas.Width() != 192 {
		t.Errorf("expected width 192, got %v", state.Canvas.Width())
	}
}

func TestEval_DefaultCanvas(t *testing.T) {
	state := evalSource(t, "rect 0,0 10x10")

	if state.Canvas.Tier != "medium" || state.Canvas.Fill != "#fff" {
		t.Errorf("expected default canvas, got %+v", state.Canvas)
	}
}

func TestEval_RectDefaults(t *testing.T) {
	state := evalSource(t, "rect")

	props := state.Shapes[0].Props.(*dsl.RectProps)
	if props.At == nil || props.At.X != 0 || props.At.Y != 0 {
		t.Errorf("expected at (0,0), got %v", props.At)
	}
	if props.Size == nil || props.Size.X != 100 || props.Size.Y != 100 {
		t.Errorf("expected size (100,100), got %v", props.Size)
	}
}

func TestEval_CircleDefaults(t *testing.T) {
	state := evalSource(t, "circle")

	props := state.Shapes[0].Props.(*dsl.CircleProps)
	if props.Radius == nil || *props.Radius != 50 {
		t.Errorf("expected radius 50, got %v", props.Radius)
	}
}

func TestEval_EllipseRadiusFromSize(t *testing.T) {
	state := evalSource(t, "ellipse size 80x40")

	props := state.Shapes[0].Props.(*dsl.EllipseProps)
	if props.Radius == nil || props.Radius.X != 40 || props.Radius.Y != 20 {
		t.Errorf("expected radius (40,20), got %v", props.Radius)
	}
}

func TestEval_LineDefaults(t *testing.T) {
	state := evalSource(t, "line")

	props := state.Shapes[0].Props.(*dsl.LineProps)
	if props.From == nil || props.To == nil {
		t.Fatal("expected endpoints")
	}
	if props.To.X != 100 || props.To.Y != 100 {
		t.Errorf("expected to (100,100), got %v", props.To)
	}
}

func TestEval_EmptyPathWarns(t *testing.T) {
	state := evalSource(t, "path")

	if len(state.Errors) != 1 || state.Errors[0].Code != diag.EvalMissingProperty {
		t.Errorf("expected missing-property warning, got %v", state.Errors)
	}
	if state.Errors[0].Severity != diag.SeverityWarning {
		t.Errorf("expected warning severity, got %v", state.Errors[0].Severity)
	}
}

func TestEval_EdgeUnknownNode(t *testing.T) {
	state := evalSource(t, "graph\n  node \"a\"\n  edge \"a\" -> \"ghost\"")

	if len(state.Errors) != 1 || state.Errors[0].Code != diag.EvalInvalidShape {
		t.Errorf("expected invalid-shape warning, got %v", state.Errors)
	}
}

func TestEval_StackPlacement(t *testing.T) {
	state := evalSource(t, "stack gap 10 at 5,5\n  rect size 20x30\n  rect size 20x30")

	layout := state.Shapes[0]
	first := layout.Children[0].Props.(*dsl.RectProps)
	second := layout.Children[1].Props.(*dsl.RectProps)

	if first.At.X != 5 || first.At.Y != 5 {
		t.Errorf("expected first child at (5,5), got %v", first.At)
	}
	// vertical stack: advance by measured height plus gap
	if second.At.X != 5 || second.At.Y != 45 {
		t.Errorf("expected second child at (5,45), got %v", second.At)
	}
}

func TestEval_RowPlacement(t *testing.T) {
	state := evalSource(t, "row gap 8\n  rect size 20x30\n  circle 10")

	layout := state.Shapes[0]
	circle := layout.Children[1].Props.(*dsl.CircleProps)
	// horizontal row: 0 + 20 + 8
	if circle.At.X != 28 || circle.At.Y != 0 {
		t.Errorf("expected circle at (28,0), got %v", circle.At)
	}
}

func TestEval_StackOffsetsAuthoredAt(t *testing.T) {
	state := evalSource(t, "stack gap 10 at 10,10\n  rect at 5,5 size 10x10\n  rect size 10x10")

	layout := state.Shapes[0]
	first := layout.Children[0].Props.(*dsl.RectProps)
	// authored position is an offset within the layout, not a replacement
	if first.At.X != 15 || first.At.Y != 15 {
		t.Errorf("expected (15,15), got %v", first.At)
	}
	// cursor advance uses measured extent, not the authored offset
	second := layout.Children[1].Props.(*dsl.RectProps)
	if second.At.X != 10 || second.At.Y != 30 {
		t.Errorf("expected (10,30), got %v", second.At)
	}
}

func TestEval_NestedLayoutPlacement(t *testing.T) {
	state := evalSource(t, "stack gap 5\n  rect size 10x10\n  row gap 5\n    rect size 10x10\n    rect size 10x10")

	outer := state.Shapes[0]
	inner := outer.Children[1]
	innerProps := inner.Props.(*dsl.LayoutProps)
	if innerProps.At == nil || innerProps.At.Y != 15 {
		t.Errorf("expected inner row at y=15, got %v", innerProps.At)
	}
	// children shifted along with the row
	second := inner.Children[1].Props.(*dsl.RectProps)
	if second.At.X != 15 || second.At.Y != 15 {
		t.Errorf("expected (15,15), got %v", second.At)
	}
}

func TestMeasure_Text(t *testing.T) {
	sc, _ := dsl.ParseSource(`text 0,0 "hello"`)
	state := Eval(sc)

	w, h := Measure(state.Shapes[0])
	// 5 chars at default font size 16
	if w != 5*16*0.6 {
		t.Errorf("expected width 48, got %v", w)
	}
	if h != 16*1.2 {
		t.Errorf("expected height 19.2, got %v", h)
	}
}

func TestMeasure_Fallback(t *testing.T) {
	shape := dsl.NewShape(dsl.KindPath)
	shape.Props = &dsl.PathProps{D: "M 0 0"}

	w, h := Measure(shape)
	if w != 40 || h != 40 {
		t.Errorf("expected 40x40 fallback, got %vx%v", w, h)
	}
}

func TestMeasure_Layout(t *testing.T) {
	state := evalSource(t, "stack gap 10\n  rect size 20x30\n  rect size 40x10")

	w, h := Measure(state.Shapes[0])
	if w != 40 {
		t.Errorf("expected cross width 40, got %v", w)
	}
	if h != 50 {
		t.Errorf("expected stacked height 50, got %v", h)
	}
}

func TestPlaceNodes_Hierarchical(t *testing.T) {
	sc, _ := dsl.ParseSource("graph hierarchical spacing 50\n  node \"a\"\n  node \"b\"")
	state := Eval(sc)
	props := state.Shapes[0].Props.(*dsl.GraphProps)

	placed := PlaceNodes(props)
	if len(placed) != 2 {
		t.Fatalf("expected 2 placed nodes, got %d", len(placed))
	}
	a, b := placed[0], placed[1]
	if a.W != DefaultNodeWidth || a.H != DefaultNodeHeight {
		t.Errorf("expected default extent, got %vx%v", a.W, a.H)
	}
	// vertical: y advances by node height plus spacing
	if a.Y != 75 || b.Y != 175 {
		t.Errorf("expected y 75 and 175, got %v and %v", a.Y, b.Y)
	}
	if a.X != b.X {
		t.Errorf("expected shared center line, got %v and %v", a.X, b.X)
	}
}

func TestPlaceNodes_HierarchicalKeepsExplicit(t *testing.T) {
	sc, _ := dsl.ParseSource("graph hierarchical\n  node \"a\" at 300,40\n  node \"b\"")
	state := Eval(sc)
	props := state.Shapes[0].Props.(*dsl.GraphProps)

	placed := PlaceNodes(props)
	if placed[0].X != 300 || placed[0].Y != 40 {
		t.Errorf("expected explicit position kept, got (%v,%v)", placed[0].X, placed[0].Y)
	}
}

func TestPlaceNodes_Grid(t *testing.T) {
	sc, _ := dsl.ParseSource("graph grid spacing 20\n  node \"a\"\n  node \"b\"\n  node \"c\"\n  node \"d\"\n  node \"e\"")
	state := Eval(sc)
	props := state.Shapes[0].Props.(*dsl.GraphProps)

	placed := PlaceNodes(props)
	// five nodes: ceil(sqrt(5)) = 3 columns
	cellW := DefaultNodeWidth + 20
	if placed[1].X-placed[0].X != cellW {
		t.Errorf("expected column pitch %v, got %v", cellW, placed[1].X-placed[0].X)
	}
	if placed[3].Y == placed[0].Y {
		t.Error("expected fourth node on second row")
	}
	if placed[3].X != placed[0].X {
		t.Errorf("expected fourth node in first column, got %v", placed[3].X)
	}
}

func TestPlaceNodes_Manual(t *testing.T) {
	sc, _ := dsl.ParseSource("graph manual\n  node \"a\" at 10,20")
	state := Eval(sc)
	props := state.Shapes[0].Props.(*dsl.GraphProps)

	placed := PlaceNodes(props)
	if placed[0].X != 10 || placed[0].Y != 20 {
		t.Errorf("expected (10,20), got (%v,%v)", placed[0].X, placed[0].Y)
	}
}

func TestAnchors_DominantAxis(t *testing.T) {
	a := &PlacedNode{X: 100, Y: 100, W: 120, H: 50}
	b := &PlacedNode{X: 100, Y: 300, W: 120, H: 50}

	fx, fy, tx, ty := Anchors(a, b)
	if fx != 100 || fy != 125 {
		t.Errorf("expected bottom face (100,125), got (%v,%v)", fx, fy)
	}
	if tx != 100 || ty != 275 {
		t.Errorf("expected top face (100,275), got (%v,%v)", tx, ty)
	}

	c := &PlacedNode{X: 400, Y: 110, W: 120, H: 50}
	fx, fy, tx, ty = Anchors(a, c)
	if fx != 160 || fy != 100 {
		t.Errorf("expected right face (160,100), got (%v,%v)", fx, fy)
	}
	if tx != 340 || ty != 110 {
		t.Errorf("expected left face (340,110), got (%v,%v)", tx, ty)
	}
}
