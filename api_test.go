package iconoglott

import (
	"strings"
	"testing"

	"github.com/GriffinCanCode/iconoglott/diag"
)

func TestCompile_CanvasTier(t *testing.T) {
	svg, errs := Compile("canvas giant fill #1a1a2e")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(svg, `width="512" height="512"`) {
		t.Errorf("expected 512x512 document, got:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#1a1a2e"`) {
		t.Errorf("expected background fill, got:\n%s", svg)
	}
}

func TestCompile_RectWithBlock(t *testing.T) {
	svg, errs := Compile("rect at 10,10 size 100x50\n  fill #f00")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(svg, `<rect x="10" y="10" width="100" height="50" fill="#f00"/>`) {
		t.Errorf("expected rect element, got:\n%s", svg)
	}
}

func TestCompile_UnknownCommand(t *testing.T) {
	svg, errs := Compile("unknown_shape at 50,50")

	found := false
	for _, info := range errs {
		if info.Code == diag.ParseUnknownCommand {
			found = true
		}
	}
	if !found {
		t.Errorf("expected UnknownCommand error, got %v", errs)
	}
	if strings.Count(svg, "<rect") != 1 {
		t.Errorf("expected only the background rect, got:\n%s", svg)
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document must stay well-formed")
	}
}

func TestCompile_StackSpacing(t *testing.T) {
	source := "stack gap 10\n  rect size 50x30\n  rect size 50x30\n  rect size 50x30"
	svg, errs := Compile(source)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, y := range []string{`y="0"`, `y="40"`, `y="80"`} {
		if !strings.Contains(svg, y) {
			t.Errorf("expected rect at %s in:\n%s", y, svg)
		}
	}
}

func TestCompile_UnterminatedPolygon(t *testing.T) {
	svg, errs := Compile("polygon points [0,0 100,0")

	found := false
	for _, info := range errs {
		if info.Code == diag.ParseMissingBracket {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MissingBracket error, got %v", errs)
	}
	if !strings.Contains(svg, `<polygon points="0,0 100,0"`) {
		t.Errorf("expected collected points to render, got:\n%s", svg)
	}
}

func TestCompile_UndefinedVariable(t *testing.T) {
	svg, errs := Compile("rect $undefined")

	found := false
	for _, info := range errs {
		if info.Code == diag.ParseUndefinedVar {
			found = true
			if info.Recovery != diag.ActionPassThroughLiteral {
				t.Errorf("expected pass-through recovery, got %v", info.Recovery)
			}
		}
	}
	if !found {
		t.Errorf("expected UndefinedVar error, got %v", errs)
	}
	if !strings.Contains(svg, `fill="$undefined"`) {
		t.Errorf("expected literal pass-through fill, got:\n%s", svg)
	}
}

func TestRender_NeverEmpty(t *testing.T) {
	inputs := []string{
		"",
		"canvas",
		"]]]][[[",
		"rect rect rect",
		"\t\n  \n",
		"graph hierarchical\n  edge \"a\" -> \"b\"",
	}
	for _, input := range inputs {
		svg := Render(input)
		if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "</svg>") {
			t.Errorf("input %q: expected well-formed document, got %q", input, svg)
		}
	}
}

func TestCompile_Deterministic(t *testing.T) {
	source := "canvas large\n$c = #f00\nrect 0,0 20x20 $c\n  shadow\ncircle 40,40 10\n  gradient #0f0 #00f 45"
	first, _ := Compile(source)
	for i := 0; i < 3; i++ {
		next, _ := Compile(source)
		if next != first {
			t.Fatal("identical input must produce byte-identical output")
		}
	}
}

func TestEvaluate_ErrorOrdering(t *testing.T) {
	_, errs := Evaluate("bogus\npath")

	if len(errs) < 2 {
		t.Fatalf("expected parse and eval errors, got %v", errs)
	}
	if errs[0].Code.Category() != "parser" {
		t.Errorf("expected parse error first, got %v", errs[0])
	}
	if errs[len(errs)-1].Code.Category() != "runtime" {
		t.Errorf("expected eval error last, got %v", errs[len(errs)-1])
	}
}
