// Package iconoglott compiles an indentation-based visual-graphics
// language into SVG. The pipeline is lexer, parser, scene evaluator,
// renderer; every stage is total and reports problems as structured
// errors instead of failing.
package iconoglott

import (
	"fmt"

	"github.com/GriffinCanCode/iconoglott/diag"
	"github.com/GriffinCanCode/iconoglott/dsl"
	"github.com/GriffinCanCode/iconoglott/scene"
	"github.com/GriffinCanCode/iconoglott/visualization"
)

// Evaluate runs the front half of the pipeline and returns the scene
// state plus all parse and evaluation errors in source order.
func Evaluate(source string) (*scene.State, diag.List) {
	sc, parseErrs := dsl.ParseSource(source)
	state := scene.Eval(sc)
	state.Errors = append(parseErrs, state.Errors...)
	return state, state.Errors
}

// Compile runs the full pipeline. The returned document is always
// well-formed SVG; errors describe everything that went wrong along
// the way.
func Compile(source string) (svg string, errs diag.List) {
	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("render failed: %v", rec)
			errs = append(errs, diag.New(diag.RenderFailed, msg, 0, 0))
			svg = visualization.FallbackDocument(msg)
		}
	}()
	state, errs := Evaluate(source)
	out, renderErrs := visualization.Render(state)
	return out, append(errs, renderErrs...)
}

// Render is the convenience form of Compile for callers that only
// want the document. It never panics.
func Render(source string) string {
	svg, _ := Compile(source)
	return svg
}
