package dsl

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/iconoglott/diag"
)

var (
	shapeKinds = map[string]bool{
		"rect": true, "circle": true, "ellipse": true, "line": true,
		"path": true, "polygon": true, "text": true, "image": true,
	}
	styleProps = map[string]bool{
		"fill": true, "stroke": true, "opacity": true, "corner": true,
		"shadow": true, "gradient": true,
	}
	textProps = map[string]bool{
		"font": true, "bold": true, "italic": true, "center": true, "end": true,
	}
	transformProps = map[string]bool{
		"translate": true, "rotate": true, "scale": true, "origin": true,
	}
	graphLayouts = map[string]bool{"hierarchical": true, "grid": true, "manual": true}
	nodeShapes   = map[string]bool{"rect": true, "circle": true, "ellipse": true, "diamond": true}
	edgeStyles   = map[string]bool{"straight": true, "curved": true, "orthogonal": true}
	arrowTypes   = map[string]bool{"none": true, "forward": true, "backward": true, "both": true}
)

// Parser turns a token stream into a Scene AST, collecting structured
// errors with statement-level recovery. Parsing is total: any token
// sequence yields a usable (possibly partial) AST.
type Parser struct {
	tokens []Token
	pos    int
	vars   map[string]Token
	errors diag.List
}

// NewParser creates a parser over the given token slice.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 {
		tokens = []Token{{Type: TokenEOF}}
	}
	return &Parser{tokens: tokens, vars: make(map[string]Token)}
}

// ParseSource tokenizes and parses in one step.
func ParseSource(source string) (*Scene, diag.List) {
	return NewParser(Tokenize(source)).Parse()
}

// Parse consumes the stream and returns the scene plus all errors.
func (p *Parser) Parse() (*Scene, diag.List) {
	scene := &Scene{}
	p.skipNewlines()
	for p.current().Type != TokenEOF {
		if stmt := p.parseStatement(); stmt != nil {
			scene.Stmts = append(scene.Stmts, stmt)
		}
		p.skipNewlines()
	}
	return scene, p.errors
}

// Errors returns the errors collected so far.
func (p *Parser) Errors() diag.List { return p.errors }

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) skipNewlines() {
	for p.current().Type == TokenNewline {
		p.advance()
	}
}

func (p *Parser) errorAt(code diag.Code, msg string, tok Token, action diag.Action) {
	p.errors = append(p.errors, diag.New(code, msg, tok.Line, tok.Col).WithRecovery(action))
}

// resolve substitutes variable references from the binding map. An
// unbound reference records UndefinedVar and passes the literal
// reference text through unchanged, so evaluation never blocks.
func (p *Parser) resolve(tok Token) Token {
	if tok.Type != TokenVar {
		return tok
	}
	if bound, ok := p.vars[tok.Text]; ok {
		return bound
	}
	p.errorAt(diag.ParseUndefinedVar, fmt.Sprintf("Undefined variable: %s", tok.Text), tok, diag.ActionPassThroughLiteral)
	return tok
}

func (p *Parser) parseStatement() Stmt {
	tok := p.current()

	if tok.Type == TokenVar {
		return p.parseVariable()
	}
	if tok.Type != TokenIdent {
		p.errorAt(diag.ParseUnexpectedToken, fmt.Sprintf("Expected command, got %v", tok.Type), tok, diag.ActionResumeAtNextToken)
		p.advance()
		return nil
	}

	cmd := tok.Text
	p.advance()

	switch {
	case cmd == "canvas":
		return p.parseCanvas()
	case cmd == "group":
		return p.parseGroup()
	case cmd == "stack" || cmd == "row":
		return p.parseLayout(cmd)
	case cmd == "graph":
		return p.parseGraph()
	case shapeKinds[cmd]:
		return p.parseShape(ShapeKind(cmd))
	default:
		p.errorAt(diag.ParseUnknownCommand, fmt.Sprintf("Unknown command: %s", cmd), tok, diag.ActionResumeAtNextToken)
		return nil
	}
}

func (p *Parser) parseVariable() Stmt {
	name := p.advance()
	if p.current().Type != TokenEquals {
		p.errorAt(diag.ParseMissingEquals, "Expected '=' in variable assignment", name, diag.ActionResumeAtNextToken)
		return &Variable{Name: name.Text}
	}
	p.advance()
	if t := p.current(); t.Type == TokenNewline || t.Type == TokenEOF {
		p.errorAt(diag.ParseEmptyValue, "Expected value after '='", name, diag.ActionResumeAtNextToken)
		return &Variable{Name: name.Text}
	}
	value := p.advance()
	p.vars[name.Text] = value
	return &Variable{Name: name.Text, Value: value}
}

func (p *Parser) parseCanvas() Stmt {
	canvas := DefaultCanvas()

	if t := p.current(); t.Type == TokenIdent && t.Text != "fill" {
		if _, ok := TierSize(t.Text); ok {
			canvas.Tier = strings.ToLower(t.Text)
		} else {
			info := diag.New(diag.ParseInvalidProperty, fmt.Sprintf("Invalid canvas size '%s'", t.Text), t.Line, t.Col)
			info.Context = "Valid sizes: " + strings.Join(TierNames(), ", ")
			p.errors = append(p.errors, info.WithRecovery(diag.ActionSkip))
		}
		p.advance()
	}

	for p.current().Type == TokenIdent {
		prop := p.advance().Text
		if prop != "fill" {
			continue
		}
		switch p.current().Type {
		case TokenColor, TokenVar, TokenIdent:
			canvas.Fill = p.resolve(p.advance()).Text
		default:
			p.errorAt(diag.ParseExpectedColor, "Expected color value after 'fill'", p.current(), diag.ActionSkip)
		}
	}
	return canvas
}

func (p *Parser) parseGroup() *Shape {
	shape := NewShape(KindGroup)
	props := &GroupProps{}
	if p.current().Type == TokenString {
		props.Name = p.advance().Text
	}
	shape.Props = props

	p.skipNewlines()
	if p.current().Type == TokenIndent {
		p.advance()
		p.parseBlock(shape, &propBag{})
	}
	return shape
}

func (p *Parser) parseLayout(kind string) *Shape {
	shape := NewShape(KindLayout)
	props := &LayoutProps{Direction: "vertical"}
	if kind == "row" {
		props.Direction = "horizontal"
	}

	for p.current().Type == TokenIdent {
		prop := p.advance().Text
		switch prop {
		case "vertical", "horizontal":
			props.Direction = prop
		case "gap":
			if p.current().Type == TokenNumber {
				props.Gap = p.advance().Num
			}
		case "at":
			if p.current().Type == TokenPair {
				t := p.advance()
				props.At = &Point{X: t.X, Y: t.Y}
			}
		}
	}
	shape.Props = props

	p.skipNewlines()
	if p.current().Type == TokenIndent {
		p.advance()
		p.parseBlock(shape, &propBag{})
	}
	return shape
}

// propBag collects positional and labeled shape properties before the
// closed per-kind variant is constructed.
type propBag struct {
	at, size   *Point
	from, to   *Point
	radiusPair *Point
	radius     *float64
	width      *float64
	content    *string
	d          *string
	href       *string
	points     []Point
	fill       string
}

func (p *Parser) parseShape(kind ShapeKind) *Shape {
	shape := NewShape(kind)
	bag := &propBag{}

	for {
		tok := p.current()
		if tok.Type == TokenNewline || tok.Type == TokenEOF {
			break
		}
		switch tok.Type {
		case TokenPair:
			t := p.advance()
			pt := Point{X: t.X, Y: t.Y}
			if bag.at == nil {
				bag.at = &pt
			} else if bag.size == nil {
				bag.size = &pt
			}
		case TokenNumber:
			t := p.advance()
			if kind == KindCircle && bag.radius == nil {
				bag.radius = &t.Num
			} else if bag.width == nil {
				bag.width = &t.Num
			}
		case TokenString:
			s := p.advance().Text
			bag.content = &s
		case TokenLBracket:
			if kind == KindPolygon {
				bag.points = p.parsePoints()
			} else {
				p.advance()
			}
		case TokenColor, TokenVar:
			if bag.fill == "" {
				bag.fill = p.resolve(p.advance()).Text
			} else {
				p.advance()
			}
		case TokenIdent:
			p.parseShapeKey(bag)
		default:
			p.advance()
		}
	}

	if bag.fill != "" {
		shape.Style.Fill = bag.fill
	}

	p.skipNewlines()
	if p.current().Type == TokenIndent {
		p.advance()
		p.parseBlock(shape, bag)
	}

	shape.Props = buildProps(kind, bag)
	return shape
}

// parseShapeKey handles labeled shape properties. Each label requires a
// specific following token type; when it is absent nothing is set and
// parsing continues without an error.
func (p *Parser) parseShapeKey(bag *propBag) {
	key := p.advance().Text
	switch key {
	case "at":
		if p.current().Type == TokenPair {
			t := p.advance()
			bag.at = &Point{X: t.X, Y: t.Y}
		}
	case "size":
		if p.current().Type == TokenPair {
			t := p.advance()
			bag.size = &Point{X: t.X, Y: t.Y}
		}
	case "radius":
		switch p.current().Type {
		case TokenPair:
			t := p.advance()
			bag.radiusPair = &Point{X: t.X, Y: t.Y}
		case TokenNumber:
			t := p.advance()
			bag.radius = &t.Num
		}
	case "from":
		if p.current().Type == TokenPair {
			t := p.advance()
			bag.from = &Point{X: t.X, Y: t.Y}
		}
	case "to":
		if p.current().Type == TokenPair {
			t := p.advance()
			bag.to = &Point{X: t.X, Y: t.Y}
		}
	case "d":
		if p.current().Type == TokenString {
			s := p.advance().Text
			bag.d = &s
		}
	case "points":
		if p.current().Type == TokenLBracket {
			bag.points = p.parsePoints()
		}
	case "href":
		if p.current().Type == TokenString {
			s := p.advance().Text
			bag.href = &s
		}
	}
}

// buildProps performs the one-time construction of the closed per-kind
// property variant from the inference bag.
func buildProps(kind ShapeKind, bag *propBag) Props {
	switch kind {
	case KindRect:
		return &RectProps{At: bag.at, Size: bag.size}
	case KindCircle:
		return &CircleProps{At: bag.at, Radius: bag.radius}
	case KindEllipse:
		radius := bag.radiusPair
		if radius == nil && bag.radius != nil {
			radius = &Point{X: *bag.radius, Y: *bag.radius}
		}
		return &EllipseProps{At: bag.at, Radius: radius, Size: bag.size}
	case KindLine:
		return &LineProps{From: bag.from, To: bag.to}
	case KindPath:
		d := ""
		if bag.d != nil {
			d = *bag.d
		} else if bag.content != nil {
			d = *bag.content
		}
		return &PathProps{D: d}
	case KindPolygon:
		return &PolygonProps{At: bag.at, Points: bag.points}
	case KindText:
		content := ""
		if bag.content != nil {
			content = *bag.content
		}
		return &TextProps{At: bag.at, Content: content}
	case KindImage:
		href := ""
		if bag.href != nil {
			href = *bag.href
		}
		return &ImageProps{At: bag.at, Size: bag.size, Href: href}
	default:
		return nil
	}
}

// parsePoints consumes a bracketed run of coordinate pairs. A missing
// closing bracket records MissingBracket but the collected points are
// still returned.
func (p *Parser) parsePoints() []Point {
	var points []Point
	open := p.advance() // [
	for {
		tok := p.current()
		if tok.Type == TokenRBracket || tok.Type == TokenEOF {
			break
		}
		if tok.Type == TokenPair {
			t := p.advance()
			points = append(points, Point{X: t.X, Y: t.Y})
		} else {
			p.advance()
		}
	}
	if p.current().Type == TokenRBracket {
		p.advance()
	} else {
		p.errorAt(diag.ParseMissingBracket, "Expected ']' to close points list", open, diag.ActionResumeAtNextToken)
	}
	return points
}

// parseBlock consumes an indented run of style/transform/text
// properties and nested child shapes. Unknown identifiers are skipped
// without error.
func (p *Parser) parseBlock(shape *Shape, bag *propBag) {
	for {
		tok := p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}
		p.skipNewlines()
		tok = p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}

		if tok.Type != TokenIdent {
			p.advance()
			continue
		}

		prop := tok.Text
		switch {
		case shapeKinds[prop]:
			p.advance()
			shape.Children = append(shape.Children, p.parseShape(ShapeKind(prop)))
		case prop == "group":
			p.advance()
			shape.Children = append(shape.Children, p.parseGroup())
		case prop == "stack" || prop == "row":
			p.advance()
			shape.Children = append(shape.Children, p.parseLayout(prop))
		case styleProps[prop]:
			p.advance()
			p.parseStyleProp(prop, shape.Style)
		case textProps[prop]:
			p.advance()
			p.parseTextProp(prop, shape.Style)
		case transformProps[prop]:
			p.advance()
			p.parseTransformProp(prop, &shape.Transform)
		case prop == "width" && p.peek().Type == TokenNumber:
			p.advance()
			shape.Style.StrokeWidth = p.advance().Num
		case prop == "d" && p.peek().Type == TokenString:
			p.advance()
			s := p.advance().Text
			bag.d = &s
		case prop == "points" && p.peek().Type == TokenLBracket:
			p.advance()
			bag.points = p.parsePoints()
		default:
			p.advance()
		}
	}
	if p.current().Type == TokenDedent {
		p.advance()
	}
}

func (p *Parser) parseStyleProp(prop string, style *Style) {
	switch prop {
	case "fill":
		switch p.current().Type {
		case TokenColor, TokenVar, TokenIdent:
			style.Fill = p.resolve(p.advance()).Text
		default:
			p.errorAt(diag.ParseExpectedColor, "Expected color value after 'fill'", p.current(), diag.ActionSkip)
		}
	case "stroke":
		switch p.current().Type {
		case TokenColor, TokenVar:
			style.Stroke = p.resolve(p.advance()).Text
		default:
			p.errorAt(diag.ParseExpectedColor, "Expected color value after 'stroke'", p.current(), diag.ActionSkip)
		}
		if p.current().Type == TokenNumber {
			style.StrokeWidth = p.advance().Num
		}
		if p.current().Type == TokenIdent && p.current().Text == "width" {
			p.advance()
			if p.current().Type == TokenNumber {
				style.StrokeWidth = p.advance().Num
			}
		}
	case "opacity":
		if p.current().Type == TokenNumber {
			style.Opacity = p.advance().Num
		} else {
			p.errorAt(diag.ParseExpectedNumber, "Expected number after 'opacity'", p.current(), diag.ActionSkip)
		}
	case "corner":
		if p.current().Type == TokenNumber {
			style.Corner = p.advance().Num
		} else {
			p.errorAt(diag.ParseExpectedNumber, "Expected number after 'corner'", p.current(), diag.ActionSkip)
		}
	case "shadow":
		style.Shadow = p.parseShadow()
	case "gradient":
		style.Gradient = p.parseGradient()
	}
}

func (p *Parser) parseTextProp(prop string, style *Style) {
	switch prop {
	case "font":
		if p.current().Type == TokenString {
			style.Font = p.advance().Text
		}
		if p.current().Type == TokenNumber {
			style.FontSize = p.advance().Num
		}
	case "bold":
		style.FontWeight = "bold"
	case "italic":
		style.FontWeight = "italic"
	case "center":
		style.TextAnchor = "middle"
	case "end":
		style.TextAnchor = "end"
	}
}

func (p *Parser) parseTransformProp(prop string, tf *Transform) {
	switch prop {
	case "translate":
		if p.current().Type == TokenPair {
			t := p.advance()
			tf.Translate = &Point{X: t.X, Y: t.Y}
		} else {
			p.errorAt(diag.ParseExpectedPair, "Expected pair (x,y) after 'translate'", p.current(), diag.ActionSkip)
		}
	case "rotate":
		if p.current().Type == TokenNumber {
			tf.Rotate = p.advance().Num
		} else {
			p.errorAt(diag.ParseExpectedNumber, "Expected number after 'rotate'", p.current(), diag.ActionSkip)
		}
	case "scale":
		switch p.current().Type {
		case TokenPair:
			t := p.advance()
			tf.Scale = &Point{X: t.X, Y: t.Y}
		case TokenNumber:
			t := p.advance()
			tf.Scale = &Point{X: t.Num, Y: t.Num}
		default:
			p.errorAt(diag.ParseExpectedValue, "Expected number or pair after 'scale'", p.current(), diag.ActionSkip)
		}
	case "origin":
		if p.current().Type == TokenPair {
			t := p.advance()
			tf.Origin = &Point{X: t.X, Y: t.Y}
		} else {
			p.errorAt(diag.ParseExpectedPair, "Expected pair (x,y) after 'origin'", p.current(), diag.ActionSkip)
		}
	}
}

// parseShadow never errors; omitted fields keep their defaults.
func (p *Parser) parseShadow() *ShadowDef {
	shadow := NewShadowDef()
	if p.current().Type == TokenPair {
		t := p.advance()
		shadow.DX, shadow.DY = t.X, t.Y
	}
	if p.current().Type == TokenNumber {
		shadow.Blur = p.advance().Num
	}
	if p.current().Type == TokenColor {
		shadow.Color = p.advance().Text
	}
	return shadow
}

// parseGradient consumes a run of identifier/color/number tokens. The
// first and second color literals fill start/end in encounter order
// unless labeled with from/to; a trailing number sets the angle.
func (p *Parser) parseGradient() *GradientDef {
	grad := NewGradientDef()
	seenFrom := false
	for {
		switch p.current().Type {
		case TokenIdent:
			val := p.advance().Text
			switch {
			case val == "linear" || val == "radial":
				grad.Kind = val
			case val == "from" && p.current().Type == TokenColor:
				grad.From = p.advance().Text
				seenFrom = true
			case val == "to" && p.current().Type == TokenColor:
				grad.To = p.advance().Text
			}
		case TokenColor:
			if !seenFrom {
				grad.From = p.advance().Text
				seenFrom = true
			} else {
				grad.To = p.advance().Text
			}
		case TokenNumber:
			grad.Angle = p.advance().Num
		default:
			return grad
		}
	}
}

func (p *Parser) parseGraph() Stmt {
	shape := NewShape(KindGraph)
	props := &GraphProps{Layout: "manual", Direction: "vertical", Spacing: 50}

	for p.current().Type == TokenIdent {
		prop := p.advance().Text
		switch {
		case graphLayouts[prop]:
			props.Layout = prop
		case prop == "vertical" || prop == "horizontal":
			props.Direction = prop
		case prop == "spacing":
			if p.current().Type == TokenNumber {
				props.Spacing = p.advance().Num
			}
		}
	}

	p.skipNewlines()
	if p.current().Type == TokenIndent {
		p.advance()
		p.parseGraphBlock(props)
	}
	shape.Props = props
	return shape
}

func (p *Parser) parseGraphBlock(props *GraphProps) {
	for {
		tok := p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}
		p.skipNewlines()
		tok = p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}

		if tok.Type != TokenIdent {
			p.errorAt(diag.ParseUnexpectedToken, fmt.Sprintf("Unexpected %v in graph block", tok.Type), tok, diag.ActionResumeAtNextToken)
			p.advance()
			continue
		}

		cmd := p.advance().Text
		switch cmd {
		case "node":
			props.Nodes = append(props.Nodes, p.parseGraphNode())
		case "edge":
			props.Edges = append(props.Edges, p.parseGraphEdge())
		case "layout":
			if p.current().Type == TokenIdent {
				val := p.advance().Text
				if graphLayouts[val] {
					props.Layout = val
				} else {
					info := diag.New(diag.ParseInvalidProperty, fmt.Sprintf("Invalid layout '%s'", val), p.current().Line, p.current().Col)
					info.Context = "Valid layouts: hierarchical, grid, manual"
					p.errors = append(p.errors, info.WithRecovery(diag.ActionSkip))
				}
			} else {
				p.errorAt(diag.ParseExpectedValue, "Expected layout name", p.current(), diag.ActionSkip)
			}
		case "direction":
			if p.current().Type == TokenIdent {
				val := p.advance().Text
				if val == "vertical" || val == "horizontal" {
					props.Direction = val
				} else {
					info := diag.New(diag.ParseInvalidProperty, fmt.Sprintf("Invalid direction '%s'", val), p.current().Line, p.current().Col)
					info.Context = "Use 'vertical' or 'horizontal'"
					p.errors = append(p.errors, info.WithRecovery(diag.ActionSkip))
				}
			} else {
				p.errorAt(diag.ParseExpectedValue, "Expected direction value", p.current(), diag.ActionSkip)
			}
		case "spacing":
			if p.current().Type == TokenNumber {
				props.Spacing = p.advance().Num
			} else {
				p.errorAt(diag.ParseExpectedNumber, "Expected number after 'spacing'", p.current(), diag.ActionSkip)
			}
		default:
			info := diag.New(diag.ParseInvalidProperty, fmt.Sprintf("Unknown graph property '%s'", cmd), tok.Line, tok.Col)
			info.Context = "Valid graph properties: node, edge, layout, direction, spacing"
			p.errors = append(p.errors, info.WithRecovery(diag.ActionResumeAtNextToken))
		}
	}
	if p.current().Type == TokenDedent {
		p.advance()
	}
}

func (p *Parser) parseGraphNode() *GraphNode {
	node := &GraphNode{Shape: "rect", Style: NewStyle()}

	if p.current().Type == TokenString {
		node.ID = p.advance().Text
	}

	for {
		tok := p.current()
		if tok.Type == TokenNewline || tok.Type == TokenEOF {
			break
		}
		switch tok.Type {
		case TokenPair:
			t := p.advance()
			pt := Point{X: t.X, Y: t.Y}
			if node.At == nil {
				node.At = &pt
			} else if node.Size == nil {
				node.Size = &pt
			}
		case TokenColor, TokenVar:
			node.Style.Fill = p.resolve(p.advance()).Text
		case TokenIdent:
			key := p.advance().Text
			switch key {
			case "at":
				if p.current().Type == TokenPair {
					t := p.advance()
					node.At = &Point{X: t.X, Y: t.Y}
				}
			case "size":
				if p.current().Type == TokenPair {
					t := p.advance()
					node.Size = &Point{X: t.X, Y: t.Y}
				}
			case "shape":
				if p.current().Type == TokenIdent {
					if val := p.advance().Text; nodeShapes[val] {
						node.Shape = val
					}
				}
			case "label":
				if p.current().Type == TokenString {
					node.Label = p.advance().Text
				}
			}
		default:
			p.advance()
		}
	}

	p.skipNewlines()
	if p.current().Type == TokenIndent {
		p.advance()
		p.parseNodeBlock(node)
	}
	return node
}

func (p *Parser) parseNodeBlock(node *GraphNode) {
	for {
		tok := p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}
		p.skipNewlines()
		tok = p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}

		if tok.Type != TokenIdent {
			p.advance()
			continue
		}

		prop := p.advance().Text
		switch prop {
		case "shape":
			if p.current().Type == TokenIdent {
				if val := p.advance().Text; nodeShapes[val] {
					node.Shape = val
				}
			}
		case "label":
			if p.current().Type == TokenString {
				node.Label = p.advance().Text
			}
		case "fill":
			switch p.current().Type {
			case TokenColor, TokenVar:
				node.Style.Fill = p.resolve(p.advance()).Text
			}
		case "stroke":
			switch p.current().Type {
			case TokenColor, TokenVar:
				node.Style.Stroke = p.resolve(p.advance()).Text
			}
		}
	}
	if p.current().Type == TokenDedent {
		p.advance()
	}
}

func (p *Parser) parseGraphEdge() *GraphEdge {
	edge := NewGraphEdge()

	if p.current().Type == TokenString {
		edge.From = p.advance().Text
	}
	if p.current().Type == TokenArrow {
		p.advance()
	}
	if p.current().Type == TokenString {
		edge.To = p.advance().Text
	}

	for {
		tok := p.current()
		if tok.Type == TokenNewline || tok.Type == TokenEOF {
			break
		}
		switch tok.Type {
		case TokenColor, TokenVar:
			edge.Stroke = p.resolve(p.advance()).Text
		case TokenNumber:
			edge.StrokeWidth = p.advance().Num
		case TokenIdent:
			p.parseEdgeKey(edge)
		default:
			p.advance()
		}
	}

	p.skipNewlines()
	if p.current().Type == TokenIndent {
		p.advance()
		p.parseEdgeBlock(edge)
	}
	return edge
}

func (p *Parser) parseEdgeKey(edge *GraphEdge) {
	key := p.advance().Text
	switch {
	case key == "style":
		if p.current().Type == TokenIdent {
			if val := p.advance().Text; edgeStyles[val] {
				edge.Style = val
			}
		}
	case key == "arrow":
		if p.current().Type == TokenIdent {
			if val := p.advance().Text; arrowTypes[val] {
				edge.Arrow = val
			}
		}
	case key == "label":
		if p.current().Type == TokenString {
			edge.Label = p.advance().Text
		}
	case key == "stroke":
		switch p.current().Type {
		case TokenColor, TokenVar:
			edge.Stroke = p.resolve(p.advance()).Text
		}
	case key == "width":
		if p.current().Type == TokenNumber {
			edge.StrokeWidth = p.advance().Num
		}
	case edgeStyles[key]:
		edge.Style = key
	case arrowTypes[key]:
		edge.Arrow = key
	}
}

func (p *Parser) parseEdgeBlock(edge *GraphEdge) {
	for {
		tok := p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}
		p.skipNewlines()
		tok = p.current()
		if tok.Type == TokenDedent || tok.Type == TokenEOF {
			break
		}
		if tok.Type == TokenIdent {
			p.parseEdgeKey(edge)
		} else {
			p.advance()
		}
	}
	if p.current().Type == TokenDedent {
		p.advance()
	}
}
