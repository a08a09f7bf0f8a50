// Package tools adapts the compiler for AI function calling: a
// machine-readable schema embedding the language reference, and a
// render adapter that reports failures inline instead of raising.
package tools

import (
	"fmt"

	"github.com/GriffinCanCode/iconoglott"
)

// DSLReference is the language cheat sheet embedded in tool prompts.
const DSLReference = `iconoglott: indentation-based language for SVG graphics.

canvas TIER [fill COLOR]   -- tiers: nano micro tiny small medium large
                              xlarge huge massive giant (squares 16..512)
$name = VALUE              -- variable, visible below its definition

Shapes (position pair first, then size/radius, then color):
  rect at 10,10 size 100x50 fill #f00
  circle 50,50 25
  ellipse 50,50 radius 40,20
  line from 0,0 to 100,100
  path d "M 0 0 L 10 10"
  polygon [ 0,0 10,0 5,8 ]
  text 10,20 "hello"
  image at 0,0 size 64x64 href "logo.png"

Indented blocks add styling:
  fill COLOR | stroke COLOR WIDTH | opacity N | corner N
  shadow [DX,DY] [BLUR] [COLOR] | gradient [linear|radial] FROM TO [ANGLE]
  font "NAME" SIZE | bold | italic | center | end
  translate X,Y | rotate DEG | scale N | origin X,Y

Containers:
  group "name" | stack gap N [at X,Y] | row gap N

Graphs:
  graph [hierarchical|grid|manual] [vertical|horizontal] [spacing N]
    node "id" [at X,Y] [size WxH] [shape rect|circle|ellipse|diamond] [label "..."]
    edge "from" -> "to" [straight|curved|orthogonal] [arrow none|forward|backward|both] [label "..."]
`

// Schema returns an OpenAI-style function-calling schema for the
// render tool.
func Schema() map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        "render_iconoglott",
			"description": "Render iconoglott source code to an SVG image.\n\n" + DSLReference,
			"parameters": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code": map[string]any{
						"type":        "string",
						"description": "iconoglott source code to render",
					},
				},
				"required": []string{"code"},
			},
		},
	}
}

// RenderTool renders DSL source on behalf of a model.
type RenderTool struct{}

// Run compiles the code and returns the SVG document. Any failure,
// including a panic somewhere below, comes back as an inline error
// string; this function never raises.
func (RenderTool) Run(code string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = fmt.Sprintf("Error rendering iconoglott: %v", rec)
		}
	}()
	return iconoglott.Render(code)
}
